package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const asynqQueue = "default"

// Asynq persists jobs in Redis so pending buffer releases survive a restart.
type Asynq struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	server    *asynq.Server
	mux       *asynq.ServeMux
	log       *zap.Logger
}

var _ Scheduler = (*Asynq)(nil)

func NewAsynq(opt asynq.RedisClientOpt, log *zap.Logger) *Asynq {
	return &Asynq{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		server: asynq.NewServer(opt, asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				asynqQueue: 1,
			},
		}),
		mux: asynq.NewServeMux(),
		log: log,
	}
}

func (a *Asynq) Handle(kind string, h Handler) {
	a.mux.HandleFunc(kind, func(ctx context.Context, t *asynq.Task) error {
		if err := h(ctx, t.Payload()); err != nil {
			a.log.Error("job failed", zap.String("kind", kind), zap.Error(err))
			return err
		}
		return nil
	})
}

func (a *Asynq) Schedule(ctx context.Context, kind string, payload []byte, delay time.Duration) (string, error) {
	task := asynq.NewTask(kind, payload)
	info, err := a.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(delay),
		asynq.Queue(asynqQueue),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", kind, err)
	}
	return info.ID, nil
}

func (a *Asynq) Cancel(_ context.Context, id string) error {
	err := a.inspector.DeleteTask(asynqQueue, id)
	if err == nil || errors.Is(err, asynq.ErrTaskNotFound) {
		return nil
	}
	return fmt.Errorf("delete task %s: %w", id, err)
}

// Start begins processing in the background. Handlers must be registered first.
func (a *Asynq) Start() error {
	a.log.Info("starting asynq worker")
	return a.server.Start(a.mux)
}

func (a *Asynq) Shutdown() {
	a.server.Shutdown()
	if err := a.client.Close(); err != nil {
		a.log.Warn("closing asynq client", zap.Error(err))
	}
	if err := a.inspector.Close(); err != nil {
		a.log.Warn("closing asynq inspector", zap.Error(err))
	}
}
