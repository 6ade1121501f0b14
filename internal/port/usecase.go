package port

import (
	"context"
	"io"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// ContentValidator decides whether a stored file's bytes agree with the
// allow-list of a category. It never deletes the file.
type ContentValidator interface {
	ValidateContent(ctx context.Context, key string, category model.Category) bool
}

// Uploader runs the full acceptance pipeline for one uploaded file.
type Uploader interface {
	UploadFile(ctx context.Context, in UploadFileInput) (*model.Upload, error)
}
type UploadFileInput struct {
	Category model.Category
	Filename string
	Content  io.Reader
	Size     int64
}

// UploadGetter retrieves an upload record.
type UploadGetter interface {
	GetUpload(ctx context.Context, id uuid.UUID) (*model.Upload, error)
}

// UploadLister pages through upload records, newest first.
type UploadLister interface {
	ListUploads(ctx context.Context, in ListUploadsInput) ([]*model.Upload, error)
}
type ListUploadsInput struct {
	Category model.Category
	Limit    int
	Offset   int
}

// UploadOpener returns an upload record together with its stored content.
type UploadOpener interface {
	OpenUpload(ctx context.Context, id uuid.UUID) (*model.Upload, io.ReadCloser, error)
}

// UploadDeleter deletes an upload and its file.
type UploadDeleter interface {
	DeleteUpload(ctx context.Context, id uuid.UUID) error
}

// UploadInspector fills the MIME type and type-specific metadata of an
// accepted upload.
type UploadInspector interface {
	InspectUpload(ctx context.Context, id uuid.UUID) error
}
