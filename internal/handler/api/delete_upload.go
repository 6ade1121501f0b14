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

func DeleteUploadHandler(svc port.UploadDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		if err := svc.DeleteUpload(r.Context(), id); err != nil {
			if errors.Is(err, upload.ErrObjectNotFound) {
				WriteError(w, http.StatusNotFound, fmt.Sprintf("upload #%s not found", id), nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("could not delete upload #%s", id), err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		logger.Infof(r.Context(), "✅  Successfully deleted upload #%s", id)
	}
}
