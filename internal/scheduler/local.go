package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
)

// Local runs jobs in-process on clock timers. Pending jobs are lost on restart;
// the Sweeper covers that for caretaker buffers.
type Local struct {
	clock clock.Clock
	log   *zap.Logger

	mu       sync.Mutex
	handlers map[string]Handler
	timers   map[string]clock.Timer
}

var _ Scheduler = (*Local)(nil)

func NewLocal(c clock.Clock, log *zap.Logger) *Local {
	return &Local{
		clock:    c,
		log:      log,
		handlers: map[string]Handler{},
		timers:   map[string]clock.Timer{},
	}
}

func (l *Local) Handle(kind string, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[kind] = h
}

func (l *Local) Schedule(_ context.Context, kind string, payload []byte, delay time.Duration) (string, error) {
	id := uuid.NewString()
	body := append([]byte(nil), payload...)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.timers[id] = l.clock.AfterFunc(delay, func() {
		l.run(id, kind, body)
	})
	return id, nil
}

func (l *Local) run(id, kind string, payload []byte) {
	l.mu.Lock()
	delete(l.timers, id)
	h := l.handlers[kind]
	l.mu.Unlock()

	if h == nil {
		l.log.Warn("no handler for job", zap.String("kind", kind), zap.String("job_id", id))
		return
	}
	if err := h(context.Background(), payload); err != nil {
		l.log.Error("job failed", zap.String("kind", kind), zap.String("job_id", id), zap.Error(err))
	}
}

func (l *Local) Cancel(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[id]; ok {
		t.Stop()
		delete(l.timers, id)
	}
	return nil
}

// Pending reports the number of jobs waiting to run.
func (l *Local) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}
