package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/BruksfildServices01/plant-decor/internal/domain/state"
)

// SnapshotSQLiteRepository keeps every snapshot as a row of a single state table.
type SnapshotSQLiteRepository struct {
	db *sql.DB
}

var _ state.Repository = (*SnapshotSQLiteRepository)(nil)

// OpenSnapshotSQLite opens (or creates) the database at path. ":memory:" is accepted.
func OpenSnapshotSQLite(path string) (*SnapshotSQLiteRepository, error) {
	if path == "" {
		path = "plant-decor.db"
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	return &SnapshotSQLiteRepository{db: db}, nil
}

func (r *SnapshotSQLiteRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, nil
}

func (r *SnapshotSQLiteRepository) Save(ctx context.Context, key string, payload []byte) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		key, payload,
	); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (r *SnapshotSQLiteRepository) Close() error {
	return r.db.Close()
}
