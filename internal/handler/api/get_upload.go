package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fhuszti/cms-uploads-go/internal/api_context"
	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
)

func GetUploadHandler(renderer port.HTTPRenderer, svc port.UploadGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		raw, etag, err := renderer.RenderGetUpload(r.Context(), svc, id)
		if err != nil {
			if errors.Is(err, upload.ErrObjectNotFound) {
				WriteError(w, http.StatusNotFound, fmt.Sprintf("upload #%s not found", id), nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not get upload details", err)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "max-age=0")
		if match := r.Header.Get("If-None-Match"); match == etag {
			w.WriteHeader(http.StatusNotModified)
			logger.Debugf(r.Context(), "✅  Returning cached upload #%s", id)
			return
		}

		RespondRawJSON(w, http.StatusOK, raw)
		logger.Debugf(r.Context(), "✅  Successfully returned details for upload #%s", id)
	}
}
