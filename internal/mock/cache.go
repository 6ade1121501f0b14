package mock

import (
	"context"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	UploadOut  []byte
	ValidUntil time.Time

	// etag values
	EtagUpload string

	// errors
	GetUploadErr     error
	GetEtagUploadErr error
	DelUploadErr     error
	DelEtagUploadErr error

	// call flags
	GetUploadCalled     bool
	GetEtagUploadCalled bool
	SetUploadCalled     bool
	SetEtagUploadCalled bool
	DelUploadCalled     bool
	DelEtagUploadCalled bool
}

func (c *Cache) GetUploadDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	c.GetUploadCalled = true
	if c.GetUploadErr != nil {
		return nil, c.GetUploadErr
	}
	return c.UploadOut, nil
}

func (c *Cache) GetEtagUploadDetails(ctx context.Context, id uuid.UUID) (string, error) {
	c.GetEtagUploadCalled = true
	if c.GetEtagUploadErr != nil {
		return "", c.GetEtagUploadErr
	}
	return c.EtagUpload, nil
}

func (c *Cache) SetUploadDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	c.SetUploadCalled = true
	c.UploadOut = data
	c.ValidUntil = validUntil
}

func (c *Cache) SetEtagUploadDetails(ctx context.Context, id uuid.UUID, etag string, validUntil time.Time) {
	c.SetEtagUploadCalled = true
	c.EtagUpload = etag
}

func (c *Cache) DeleteUploadDetails(ctx context.Context, id uuid.UUID) error {
	c.DelUploadCalled = true
	return c.DelUploadErr
}

func (c *Cache) DeleteEtagUploadDetails(ctx context.Context, id uuid.UUID) error {
	c.DelEtagUploadCalled = true
	return c.DelEtagUploadErr
}
