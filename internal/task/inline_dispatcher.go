package task

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// InlineDispatcher runs inspections synchronously inside the request. It is
// used when no Redis is configured and therefore no worker is running.
type InlineDispatcher struct {
	inspector port.UploadInspector
}

var _ port.TaskDispatcher = (*InlineDispatcher)(nil)

func NewInlineDispatcher(inspector port.UploadInspector) *InlineDispatcher {
	return &InlineDispatcher{inspector: inspector}
}

func (d *InlineDispatcher) EnqueueInspectUpload(ctx context.Context, id uuid.UUID) error {
	return d.inspector.InspectUpload(context.WithoutCancel(ctx), id)
}
