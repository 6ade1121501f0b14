package upload

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type uploadGetterSrv struct {
	repo port.UploadRepository
}

// compile-time check: *uploadGetterSrv must satisfy port.UploadGetter
var _ port.UploadGetter = (*uploadGetterSrv)(nil)

func NewUploadGetter(repo port.UploadRepository) port.UploadGetter {
	return &uploadGetterSrv{repo: repo}
}

func (s *uploadGetterSrv) GetUpload(ctx context.Context, id uuid.UUID) (*model.Upload, error) {
	return findUpload(ctx, s.repo, id)
}

func findUpload(ctx context.Context, repo port.UploadRepository, id uuid.UUID) (*model.Upload, error) {
	upload, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return upload, nil
}
