package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store is the persistence port for the journal: a key-value blob store
// holding the serialized trade list under a fixed namespace key. Each write
// replaces the blob in full.
type Store interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// Blob is a single namespaced value in the store.
type Blob struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

// SQLiteStore implements Store on a local sqlite database.
type SQLiteStore struct {
	db        *gorm.DB
	namespace string
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database, migrates the blob table, and scopes the
// store to the given namespace key.
func NewSQLiteStore(dsn, namespace string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

// Read returns the stored blob, or nil when the namespace has never been
// written.
func (s *SQLiteStore) Read(ctx context.Context) ([]byte, error) {
	var blob Blob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", s.namespace).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %q: %w", s.namespace, err)
	}
	return blob.Value, nil
}

// Write replaces the namespace blob in full.
func (s *SQLiteStore) Write(ctx context.Context, data []byte) error {
	blob := Blob{Key: s.namespace, Value: data}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", s.namespace, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
