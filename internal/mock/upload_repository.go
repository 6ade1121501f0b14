package mock

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

// UploadRepository implements port.UploadRepository for tests.
type UploadRepository struct {
	// stored values
	Record  *model.Upload
	ListOut []*model.Upload

	// captured inputs
	Created *model.Upload
	Updated *model.Upload

	// errors
	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error
	ListErr   error

	// call flags
	DeleteCalled bool
}

func (r *UploadRepository) Create(ctx context.Context, u *model.Upload) error {
	r.Created = u
	return r.CreateErr
}

func (r *UploadRepository) Update(ctx context.Context, u *model.Upload) error {
	r.Updated = u
	return r.UpdateErr
}

func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	return r.Record, nil
}

func (r *UploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.DeleteCalled = true
	return r.DeleteErr
}

func (r *UploadRepository) List(ctx context.Context, category model.Category, limit, offset int) ([]*model.Upload, error) {
	return r.ListOut, r.ListErr
}
