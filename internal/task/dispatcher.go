package task

import (
	"context"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/port"
	"github.com/fhuszti/cms-uploads-go/internal/uuid"
	"github.com/hibiken/asynq"
)

const (
	inspectMaxRetry = 3
	inspectTimeout  = 2 * time.Minute
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Dispatcher struct {
	client enqueuer
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueInspectUpload(ctx context.Context, id uuid.UUID) error {
	t, err := NewInspectUploadTask(id.String())
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(inspectMaxRetry), asynq.Timeout(inspectTimeout)); err != nil {
		return err
	}
	return nil
}
