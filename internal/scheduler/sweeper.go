package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
)

// BufferReleaser moves caretakers whose buffer window has elapsed back to available.
type BufferReleaser interface {
	ReleaseExpiredBuffers(ctx context.Context, now time.Time) (int, error)
}

type Sweeper struct {
	cron     *cron.Cron
	releaser BufferReleaser
	clock    clock.Clock
	log      *zap.Logger
}

func NewSweeper(schedule string, releaser BufferReleaser, c clock.Clock, log *zap.Logger) (*Sweeper, error) {
	s := &Sweeper{
		cron:     cron.New(),
		releaser: releaser,
		clock:    c,
		log:      log,
	}
	if _, err := s.cron.AddFunc(schedule, s.Sweep); err != nil {
		return nil, fmt.Errorf("schedule buffer sweep %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) Sweep() {
	n, err := s.releaser.ReleaseExpiredBuffers(context.Background(), s.clock.Now())
	if err != nil {
		s.log.Error("buffer sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("released caretakers from buffer", zap.Int("count", n))
	}
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
