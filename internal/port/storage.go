package port

import (
	"context"
	"io"
)

// FileInfo represents metadata about a stored file.
type FileInfo struct {
	SizeBytes   int64
	ContentType string
}

// Storage persists uploaded bytes. Keys are slash-separated paths relative to
// the storage root.
type Storage interface {
	// SaveFile writes the stream under a freshly generated name inside dir and
	// returns the resulting key. The generated name keeps ext.
	SaveFile(ctx context.Context, dir, ext string, reader io.Reader, fileSize int64) (string, error)
	GetFile(ctx context.Context, key string) (io.ReadCloser, error)
	StatFile(ctx context.Context, key string) (FileInfo, error)
	RemoveFile(ctx context.Context, key string) error
}
