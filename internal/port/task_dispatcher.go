package port

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous work on accepted uploads.
type TaskDispatcher interface {
	EnqueueInspectUpload(ctx context.Context, id uuid.UUID) error
}
