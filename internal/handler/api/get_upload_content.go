package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/fhuszti/cms-uploads-go/internal/api_context"
	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
)

// GetUploadContentHandler streams the stored bytes of an upload. The browser
// is told not to sniff: the recorded type is the one that was validated.
func GetUploadContentHandler(svc port.UploadOpener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		up, content, err := svc.OpenUpload(r.Context(), id)
		if err != nil {
			if errors.Is(err, upload.ErrObjectNotFound) {
				WriteError(w, http.StatusNotFound, fmt.Sprintf("upload #%s not found", id), nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not open upload", err)
			return
		}
		defer func() {
			if err := content.Close(); err != nil {
				logger.Warnf(r.Context(), "failed to close content of upload #%s: %v", id, err)
			}
		}()

		contentType := "application/octet-stream"
		if up.MimeType != nil && *up.MimeType != "" {
			contentType = *up.MimeType
		}
		disposition := "attachment"
		if up.Category == model.CategoryMedia {
			disposition = "inline"
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": up.OriginalFilename}))
		if up.SizeBytes > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(up.SizeBytes, 10))
		}
		w.WriteHeader(http.StatusOK)

		if _, err := io.Copy(w, content); err != nil {
			logger.Errorf(r.Context(), "❌  Failed to stream upload #%s: %v", id, err)
		}
	}
}
