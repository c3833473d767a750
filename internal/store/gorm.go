package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BracketRecord struct {
	Code      string    `gorm:"primaryKey;size:16"`
	Version   int       `gorm:"not null"`
	State     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (BracketRecord) TableName() string { return "bracket_snapshots" }

// Gorm stores one row per session code, state as JSON text.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&BracketRecord{}); err != nil {
		return nil, fmt.Errorf("migrate bracket_snapshots: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Load(ctx context.Context, code string) (Snapshot, error) {
	var rec BracketRecord
	err := g.db.WithContext(ctx).Where("code = ?", code).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load %s: %w", code, err)
	}
	snap := Snapshot{Version: rec.Version}
	if err := json.Unmarshal([]byte(rec.State), &snap.State); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", code, err)
	}
	return snap, nil
}

func (g *Gorm) Save(ctx context.Context, code string, snap Snapshot) error {
	raw, err := json.Marshal(snap.State)
	if err != nil {
		return fmt.Errorf("encode %s: %w", code, err)
	}
	rec := BracketRecord{Code: code, Version: snap.Version, State: string(raw)}
	err = g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "state", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", code, err)
	}
	return nil
}

func (g *Gorm) Delete(ctx context.Context, code string) error {
	return g.db.WithContext(ctx).Delete(&BracketRecord{}, "code = ?", code).Error
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
