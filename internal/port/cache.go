package port

import (
	"context"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// Cache provides caching capabilities for upload retrieval.
type Cache interface {
	GetUploadDetails(ctx context.Context, id uuid.UUID) ([]byte, error)
	GetEtagUploadDetails(ctx context.Context, id uuid.UUID) (string, error)
	SetUploadDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time)
	SetEtagUploadDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time)
	DeleteUploadDetails(ctx context.Context, id uuid.UUID) error
	DeleteEtagUploadDetails(ctx context.Context, id uuid.UUID) error
}
