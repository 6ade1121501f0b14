package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUpload(t *testing.T) {
	m := New()

	m.RecordUpload(model.CategoryMedia, OutcomeAccepted)
	m.RecordUpload(model.CategoryMedia, OutcomeAccepted)
	m.RecordUpload(model.CategoryDocument, OutcomeInvalidContent)

	if got := testutil.ToFloat64(m.uploadOutcomes.WithLabelValues("media", OutcomeAccepted)); got != 2 {
		t.Errorf("media accepted = %v; want 2", got)
	}
	if got := testutil.ToFloat64(m.uploadOutcomes.WithLabelValues("document", OutcomeInvalidContent)); got != 1 {
		t.Errorf("document invalid_content = %v; want 1", got)
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/uploads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/"+id, nil))
	}

	if got := testutil.ToFloat64(m.requestTotal.WithLabelValues(http.MethodGet, "/uploads/{id}", "404")); got != 3 {
		t.Errorf("requests_total = %v; want 3", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("duration series = %d; want 1", n)
	}
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.RecordUpload(model.CategoryMedia, OutcomeTooLarge)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `cms_uploads_upload_outcomes_total{category="media",outcome="too_large"} 1`) {
		t.Errorf("exposition does not contain the upload counter:\n%s", body)
	}
}
