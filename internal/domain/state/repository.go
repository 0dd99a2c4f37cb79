package state

import (
	"context"
	"errors"
)

// Namespaced snapshot keys, one per store.
const (
	KeyCatalog     = "plant-decor-catalog"
	KeyCart        = "plant-decor-cart"
	KeyCareService = "plant-decor-care-service"
	KeyChat        = "plant-decor-chat"
	KeyOrder       = "plant-decor-order"
)

var ErrNotFound = errors.New("state snapshot not found")

// Repository persists opaque store snapshots under a key.
type Repository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}
