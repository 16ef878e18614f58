package store

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"sustainshare/internal/model"
)

// SQL persists collections in a single GORM-managed table with a JSON
// payload column.
type SQL struct {
	db *gorm.DB
}

// NewSQL builds a database-backed store.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

// Migrate creates the collections table.
func (s *SQL) Migrate() error {
	return s.db.AutoMigrate(&model.Collection{})
}

// ReadCollection decodes the named collection into out. A missing or
// unreadable row yields an empty sequence.
func (s *SQL) ReadCollection(ctx context.Context, name string, out interface{}) error {
	var collection model.Collection
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&collection).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			slog.Warn("collection read failed, treating as empty", "collection", name, "error", err)
		}
		return unmarshalRecords(nil, out)
	}
	return unmarshalRecords(collection.Data, out)
}

// WriteCollection replaces the named collection. Write failures are logged
// and swallowed; durability here is best-effort.
func (s *SQL) WriteCollection(ctx context.Context, name string, records interface{}) error {
	payload, err := marshalRecords(records)
	if err != nil {
		return err
	}
	collection := model.Collection{Name: name, Data: payload}
	if err := s.db.WithContext(ctx).Save(&collection).Error; err != nil {
		slog.Warn("collection write failed", "collection", name, "error", err)
	}
	return nil
}
