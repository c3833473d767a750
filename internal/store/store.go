// Package store saves and restores bracket snapshots by session code.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/bracket-backend/internal/config"
	"github.com/DoyleJ11/bracket-backend/internal/engine"
)

var ErrNotFound = errors.New("snapshot not found")

type Snapshot struct {
	Version int          `json:"version"`
	State   engine.State `json:"state"`
}

type Store interface {
	Load(ctx context.Context, code string) (Snapshot, error)
	Save(ctx context.Context, code string, snap Snapshot) error
	Delete(ctx context.Context, code string) error
	Close() error
}

// Open picks a backend from cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return NewMemory(), nil
	case config.StorePostgres:
		return openGorm(postgres.Open(cfg.Store.DSN))
	case config.StoreSQLite:
		return openGorm(sqlite.Open(cfg.Store.DSN))
	case config.StoreRedis:
		return NewRedisFromURL(ctx, cfg.Redis.URL, cfg.Redis.TTL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openGorm(dialector gorm.Dialector) (Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return NewGorm(db)
}
