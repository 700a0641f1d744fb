package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// snapshotRow is the one-row table holding the document. The persisted
// layout is a single document regardless of backend, so the relational
// schema is deliberately just (id, doc).
type snapshotRow struct {
	ID        uint   `gorm:"primaryKey"`
	Doc       []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string { return "snapshots" }

// PostgresStore keeps the snapshot in a single jsonb row.
type PostgresStore struct {
	DB *gorm.DB
}

// NewPostgresStore migrates the snapshots table and returns the store.
func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func (p *PostgresStore) Load(ctx context.Context) ([]byte, error) {
	var row snapshotRow
	err := p.DB.WithContext(ctx).First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Doc, nil
}

func (p *PostgresStore) Save(ctx context.Context, doc []byte) error {
	row := snapshotRow{ID: 1, Doc: doc}
	return p.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}
