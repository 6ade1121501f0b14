package upload

import (
	"context"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type uploadListerSrv struct {
	repo port.UploadRepository
}

// compile-time check: *uploadListerSrv must satisfy port.UploadLister
var _ port.UploadLister = (*uploadListerSrv)(nil)

func NewUploadLister(repo port.UploadRepository) port.UploadLister {
	return &uploadListerSrv{repo: repo}
}

// ListUploads returns a page of uploads, newest first. An empty category
// lists every category.
func (s *uploadListerSrv) ListUploads(ctx context.Context, in port.ListUploadsInput) ([]*model.Upload, error) {
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	offset := max(in.Offset, 0)

	uploads, err := s.repo.List(ctx, in.Category, limit, offset)
	if err != nil {
		return nil, err
	}
	if uploads == nil {
		uploads = []*model.Upload{}
	}
	return uploads, nil
}
