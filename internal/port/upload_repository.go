package port

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// UploadRepository defines persistence operations for accepted uploads.
type UploadRepository interface {
	Create(ctx context.Context, upload *model.Upload) error
	Update(ctx context.Context, upload *model.Upload) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, category model.Category, limit, offset int) ([]*model.Upload, error)
}
