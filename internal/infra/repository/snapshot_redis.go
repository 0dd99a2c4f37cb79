package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
)

const redisSnapshotPrefix = "snapshot:"

type SnapshotRedisRepository struct {
	client *redis.Client
}

var _ state.Repository = (*SnapshotRedisRepository)(nil)

func NewSnapshotRedisRepository(client *redis.Client) *SnapshotRedisRepository {
	return &SnapshotRedisRepository{client: client}
}

func (r *SnapshotRedisRepository) Load(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, redisSnapshotPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return payload, nil
}

// Save writes without expiry; snapshots live until overwritten.
func (r *SnapshotRedisRepository) Save(ctx context.Context, key string, payload []byte) error {
	if err := r.client.Set(ctx, redisSnapshotPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
