package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/task"
	"github.com/fhuszti/cms-uploads-go/internal/usecase/upload"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	"github.com/hibiken/asynq"
)

// InspectUploadHandler runs the inspection named by an upload:inspect task.
// Errors that can never succeed on retry are wrapped with asynq.SkipRetry.
func InspectUploadHandler(ctx context.Context, p task.InspectUploadPayload, svc port.UploadInspector) error {
	id, err := uuid.Parse(p.UploadID)
	if err != nil {
		logger.Errorf(ctx, "❌  Invalid upload ID %q: %v", p.UploadID, err)
		// a malformed payload will never succeed
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := svc.InspectUpload(ctx, id); err != nil {
		if errors.Is(err, upload.ErrObjectNotFound) {
			// deleted before the worker got to it
			logger.Warnf(ctx, "⚠️  Upload #%s is gone, skipping inspection: %v", id, err)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		logger.Errorf(ctx, "❌  Failed to inspect upload #%s: %v", id, err)
		return err
	}

	logger.Infof(ctx, "✅  Successfully inspected upload #%s", id)
	return nil
}
