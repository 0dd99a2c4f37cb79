package repository

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
)

// SnapshotMemoryRepository keeps snapshots for the life of the process.
type SnapshotMemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

var _ state.Repository = (*SnapshotMemoryRepository)(nil)

func NewSnapshotMemoryRepository() *SnapshotMemoryRepository {
	return &SnapshotMemoryRepository{items: map[string][]byte{}}
}

func (r *SnapshotMemoryRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.items[key]
	if !ok {
		return nil, state.ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}

func (r *SnapshotMemoryRepository) Save(_ context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[key] = append([]byte(nil), payload...)
	return nil
}
