// Package store holds the process-owned state containers: catalog, carts,
// orders, care service requests and support chat. Each store serializes its
// whole collection to a state.Repository after every mutation and publishes
// an event once its lock is released.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/plant-decor/internal/clock"
	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/events"
	"github.com/BruksfildServices01/plant-decor/internal/infra/repository"
)

type Options struct {
	Repo  state.Repository
	Bus   events.Publisher
	Clock clock.Clock
	Log   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Repo == nil {
		o.Repo = repository.NewSnapshotMemoryRepository()
	}
	if o.Bus == nil {
		o.Bus = events.Nop{}
	}
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

type snapshot struct {
	repo state.Repository
	key  string
	log  *zap.Logger
}

// restore decodes the stored snapshot into v. It reports false when nothing
// has been saved yet.
func (s snapshot) restore(ctx context.Context, v any) (bool, error) {
	payload, err := s.repo.Load(ctx, s.key)
	if errors.Is(err, state.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", s.key, err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return true, nil
}

// persist is best effort: the in-memory state stays authoritative.
func (s snapshot) persist(ctx context.Context, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode snapshot", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.repo.Save(context.WithoutCancel(ctx), s.key, payload); err != nil {
		s.log.Warn("save snapshot", zap.String("key", s.key), zap.Error(err))
	}
}
