package port

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// HTTPRenderer mediates between HTTP handlers and the upload getter use case.
// It provides caching capabilities and returns both the JSON representation of
// the result as well as an ETag value derived from it.
type HTTPRenderer interface {
	// RenderGetUpload returns the cached JSON result and its ETag if available or
	// executes the underlying use case and caches the output otherwise.
	RenderGetUpload(ctx context.Context, getter UploadGetter, id uuid.UUID) ([]byte, string, error)
}
