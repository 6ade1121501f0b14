package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fhuszti/cms-uploads-go/internal/mock"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

func TestGetUploadContentHandler(t *testing.T) {
	pngType := "image/png"
	pdfType := "application/pdf"

	tests := []struct {
		name            string
		out             *model.Upload
		content         []byte
		err             error
		wantStatus      int
		wantType        string
		wantDisposition string
	}{
		{
			name:            "media inline",
			out:             &model.Upload{Category: model.CategoryMedia, OriginalFilename: "logo.png", MimeType: &pngType, SizeBytes: 4},
			content:         []byte("\x89PNG"),
			wantStatus:      http.StatusOK,
			wantType:        pngType,
			wantDisposition: `inline; filename=logo.png`,
		},
		{
			name:            "document attachment",
			out:             &model.Upload{Category: model.CategoryDocument, OriginalFilename: "Annual report.pdf", MimeType: &pdfType, SizeBytes: 5},
			content:         []byte("%PDF-"),
			wantStatus:      http.StatusOK,
			wantType:        pdfType,
			wantDisposition: `attachment; filename="Annual report.pdf"`,
		},
		{
			name:            "not yet inspected",
			out:             &model.Upload{Category: model.CategoryDocument, OriginalFilename: "notes.txt"},
			content:         []byte("hello"),
			wantStatus:      http.StatusOK,
			wantType:        "application/octet-stream",
			wantDisposition: `attachment; filename=notes.txt`,
		},
		{
			name:       "not found",
			err:        upload.ErrObjectNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "storage error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.NewUUID()
			svc := &mock.UploadOpener{Out: tc.out, Content: tc.content, Err: tc.err}
			handlerFn := GetUploadContentHandler(svc)

			rec := httptest.NewRecorder()
			handlerFn(rec, withID(httptest.NewRequest(http.MethodGet, "/uploads/"+id.String()+"/content", nil), id))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}
			if got := rec.Header().Get("Content-Type"); got != tc.wantType {
				t.Errorf("Content-Type = %q; want %q", got, tc.wantType)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q; want nosniff", got)
			}
			if got := rec.Header().Get("Content-Disposition"); got != tc.wantDisposition {
				t.Errorf("Content-Disposition = %q; want %q", got, tc.wantDisposition)
			}
			if rec.Body.String() != string(tc.content) {
				t.Errorf("body = %q; want %q", rec.Body.String(), tc.content)
			}
		})
	}
}

func TestGetUploadContentHandler_MissingID(t *testing.T) {
	svc := &mock.UploadOpener{}
	rec := httptest.NewRecorder()
	GetUploadContentHandler(svc)(rec, httptest.NewRequest(http.MethodGet, "/uploads/x/content", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", rec.Code)
	}
	if svc.Called {
		t.Error("opener must not be called without an ID")
	}
}
