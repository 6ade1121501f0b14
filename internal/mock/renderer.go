package mock

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	UploadOut []byte

	// etag values
	EtagUpload string

	// captured inputs
	GotUploadID uuid.UUID

	// errors
	GetUploadErr error

	// call flags
	GetUploadCalled bool
}

func (m *HTTPRenderer) RenderGetUpload(ctx context.Context, getter port.UploadGetter, id uuid.UUID) ([]byte, string, error) {
	m.GetUploadCalled = true
	m.GotUploadID = id
	return m.UploadOut, m.EtagUpload, m.GetUploadErr
}
