package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the byte store behind the session store. Each logical collection
// lives under one key as a whole serialized sequence; every save is a full
// overwrite.
type KV interface {
	// Load returns the stored value and whether the key exists.
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
}

type collectionBlob struct {
	Key       string `gorm:"primaryKey;type:varchar(64)"`
	Value     []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (collectionBlob) TableName() string { return "collection_blobs" }

// GormKV persists collection blobs in a single postgres table, one row per
// collection key.
type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) (*GormKV, error) {
	if err := db.AutoMigrate(&collectionBlob{}); err != nil {
		return nil, fmt.Errorf("migrate collection_blobs: %w", err)
	}
	return &GormKV{db: db}, nil
}

func (g *GormKV) Load(key string) ([]byte, bool, error) {
	var row collectionBlob
	err := g.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %q: %w", key, err)
	}
	return row.Value, true, nil
}

func (g *GormKV) Save(key string, value []byte) error {
	row := collectionBlob{Key: key, Value: value, UpdatedAt: time.Now()}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
