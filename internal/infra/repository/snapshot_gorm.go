package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
	"github.com/BruksfildServices01/plant-decor/internal/models"
)

type SnapshotGormRepository struct {
	db *gorm.DB
}

func NewSnapshotGormRepository(db *gorm.DB) *SnapshotGormRepository {
	return &SnapshotGormRepository{db: db}
}

var _ state.Repository = (*SnapshotGormRepository)(nil)

func (r *SnapshotGormRepository) Load(
	ctx context.Context,
	key string,
) ([]byte, error) {

	var snap models.StateSnapshot
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap.Payload, nil
}

func (r *SnapshotGormRepository) Save(
	ctx context.Context,
	key string,
	payload []byte,
) error {

	snap := models.StateSnapshot{
		Key:       key,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
}
