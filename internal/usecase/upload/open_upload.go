package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type uploadOpenerSrv struct {
	repo port.UploadRepository
	strg port.Storage
}

// compile-time check: *uploadOpenerSrv must satisfy port.UploadOpener
var _ port.UploadOpener = (*uploadOpenerSrv)(nil)

func NewUploadOpener(repo port.UploadRepository, strg port.Storage) port.UploadOpener {
	return &uploadOpenerSrv{repo: repo, strg: strg}
}

// OpenUpload returns the record and a reader over the stored bytes. The
// caller closes the reader.
func (s *uploadOpenerSrv) OpenUpload(ctx context.Context, id uuid.UUID) (*model.Upload, io.ReadCloser, error) {
	upload, err := findUpload(ctx, s.repo, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.strg.GetFile(ctx, upload.ObjectKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %q: %w", upload.ObjectKey, err)
	}
	return upload, rc, nil
}
