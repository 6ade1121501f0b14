package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/model"
	"github.com/fhuszti/cms-uploads-go/internal/port"
)

type uploaderSrv struct {
	repo      port.UploadRepository
	strg      port.Storage
	validator port.ContentValidator
	tasks     port.TaskDispatcher
	genID     port.UUIDGen
	now       func() time.Time
}

// compile-time check: *uploaderSrv must satisfy port.Uploader
var _ port.Uploader = (*uploaderSrv)(nil)

func NewUploader(
	repo port.UploadRepository,
	strg port.Storage,
	validator port.ContentValidator,
	tasks port.TaskDispatcher,
	genID port.UUIDGen,
) port.Uploader {
	return &uploaderSrv{
		repo:      repo,
		strg:      strg,
		validator: validator,
		tasks:     tasks,
		genID:     genID,
		now:       time.Now,
	}
}

func (s *uploaderSrv) UploadFile(ctx context.Context, in port.UploadFileInput) (*model.Upload, error) {
	if err := CheckFilename(in.Category, in.Filename); err != nil {
		return nil, err
	}
	ext := FileExtension(in.Filename)

	key, err := s.strg.SaveFile(ctx, PartitionDir(in.Category, s.now()), ext, in.Content, in.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to store %q: %w", in.Filename, err)
	}

	if !s.validator.ValidateContent(ctx, key, in.Category) {
		logger.Warnf(ctx, "rejected %q stored as %q: content does not match the %s allow-list", in.Filename, key, in.Category)
		s.discard(ctx, key)
		return nil, ErrInvalidContent
	}

	info, err := s.strg.StatFile(ctx, key)
	if err != nil {
		s.discard(ctx, key)
		return nil, fmt.Errorf("stats for file %q failed: %w", key, err)
	}

	upload := &model.Upload{
		ID:               s.genID(),
		Category:         in.Category,
		ObjectKey:        key,
		OriginalFilename: in.Filename,
		SizeBytes:        info.SizeBytes,
	}
	if err := s.repo.Create(ctx, upload); err != nil {
		s.discard(ctx, key)
		return nil, fmt.Errorf("failed to record upload %q: %w", key, err)
	}

	if err := s.tasks.EnqueueInspectUpload(ctx, upload.ID); err != nil {
		logger.Warnf(ctx, "failed to enqueue inspection for upload #%s: %v", upload.ID, err)
	}

	logger.Infof(ctx, "✅  accepted %s upload %q as %q", in.Category, in.Filename, key)
	return upload, nil
}

// discard removes a stored file that did not make it into the catalogue. It
// runs on a fresh context so a cancelled request still cleans up.
func (s *uploaderSrv) discard(ctx context.Context, key string) {
	if err := s.strg.RemoveFile(context.WithoutCancel(ctx), key); err != nil && !errors.Is(err, ErrObjectNotFound) {
		logger.Errorf(ctx, "❌  cleanup failed for file %q: %v", key, err)
	}
}
