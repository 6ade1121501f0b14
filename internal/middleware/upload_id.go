package middleware

import (
	"fmt"
	"net/http"

	"github.com/fhuszti/cms-uploads-go/internal/api_context"
	"github.com/fhuszti/cms-uploads-go/internal/handler/api"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	"github.com/go-chi/chi/v5"
)

// WithUploadID parses the {id} route parameter into the request context.
func WithUploadID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}
			parsedID, err := uuid.Parse(id)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid UUID", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := api_context.WithUploadID(r.Context(), parsedID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
