package upload

import (
	"context"
	"errors"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
)

type uploadDeleterSrv struct {
	repo  port.UploadRepository
	cache port.Cache
	strg  port.Storage
}

// compile-time check: *uploadDeleterSrv must satisfy port.UploadDeleter
var _ port.UploadDeleter = (*uploadDeleterSrv)(nil)

func NewUploadDeleter(repo port.UploadRepository, cache port.Cache, strg port.Storage) port.UploadDeleter {
	return &uploadDeleterSrv{repo: repo, cache: cache, strg: strg}
}

// DeleteUpload removes the file from storage, deletes the record and clears
// the cache.
func (s *uploadDeleterSrv) DeleteUpload(ctx context.Context, id uuid.UUID) error {
	upload, err := findUpload(ctx, s.repo, id)
	if err != nil {
		return err
	}

	// a file already gone must not keep the record alive
	if err := s.strg.RemoveFile(ctx, upload.ObjectKey); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return err
	}

	if err := s.repo.Delete(ctx, upload.ID); err != nil {
		return err
	}

	dropCachedDetails(ctx, s.cache, upload.ID)
	return nil
}

func dropCachedDetails(ctx context.Context, cache port.Cache, id uuid.UUID) {
	if err := cache.DeleteUploadDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cache for upload #%s: %v", id, err)
	}
	if err := cache.DeleteEtagUploadDetails(ctx, id); err != nil {
		logger.Warnf(ctx, "failed deleting cached etag for upload #%s: %v", id, err)
	}
}
