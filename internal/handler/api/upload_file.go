package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/metrics"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
)

// FormFileField is the multipart field carrying the uploaded file.
const FormFileField = "file"

const (
	// multipart parts above this size spill to temporary files
	maxMultipartMemory = 8 << 20
	// room for boundaries and part headers on top of the file itself
	multipartEnvelope = 1 << 20
)

// UploadFileHandler accepts a multipart upload of at most maxBytes into
// category.
func UploadFileHandler(svc port.Uploader, recorder port.UploadRecorder, category model.Category, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tooLarge := func() {
			recorder.RecordUpload(category, metrics.OutcomeTooLarge)
			WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds the %d bytes limit", maxBytes), nil)
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartEnvelope)
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				tooLarge()
				return
			}
			WriteError(w, http.StatusBadRequest, "invalid multipart payload", err)
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				logger.Warnf(r.Context(), "failed to remove multipart temp files: %v", err)
			}
		}()

		file, header, err := r.FormFile(FormFileField)
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("multipart field %q is required", FormFileField), err)
			return
		}
		defer func() {
			if err := file.Close(); err != nil {
				logger.Warnf(r.Context(), "failed to close uploaded file %q: %v", header.Filename, err)
			}
		}()
		if header.Size > maxBytes {
			tooLarge()
			return
		}

		out, err := svc.UploadFile(r.Context(), port.UploadFileInput{
			Category: category,
			Filename: header.Filename,
			Content:  file,
			Size:     header.Size,
		})
		if err != nil {
			var typeErr *upload.FileTypeError
			switch {
			case errors.As(err, &typeErr):
				recorder.RecordUpload(category, metrics.OutcomeInvalidType)
				WriteError(w, http.StatusBadRequest, typeErr.Error(), nil)
			case errors.Is(err, upload.ErrFilenameTooLong):
				recorder.RecordUpload(category, metrics.OutcomeInvalidName)
				WriteError(w, http.StatusBadRequest, err.Error(), nil)
			case errors.Is(err, upload.ErrInvalidContent):
				recorder.RecordUpload(category, metrics.OutcomeInvalidContent)
				WriteError(w, http.StatusBadRequest, upload.ErrInvalidContent.Error(), nil)
			default:
				recorder.RecordUpload(category, metrics.OutcomeError)
				WriteError(w, http.StatusInternalServerError, "could not store upload", err)
			}
			return
		}

		recorder.RecordUpload(category, metrics.OutcomeAccepted)
		RespondJSON(w, http.StatusCreated, out)
		logger.Infof(r.Context(), "✅  Accepted %s upload #%s as %q", category, out.ID, out.ObjectKey)
	}
}
