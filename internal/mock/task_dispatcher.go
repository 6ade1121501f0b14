package mock

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// Dispatcher implements task dispatching for tests.
type Dispatcher struct {
	InspectCalled bool
	InspectIDs    []uuid.UUID
	InspectErr    error
}

func (m *Dispatcher) EnqueueInspectUpload(ctx context.Context, id uuid.UUID) error {
	m.InspectCalled = true
	m.InspectIDs = append(m.InspectIDs, id)
	return m.InspectErr
}
