// Package store maps each entity table to list/get/create/update/delete
// functions over gorm.
//
// A Store built without a database is "unavailable": reads return empty
// results and writes fail with ErrUnavailable.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/mataam/internal/logging"
)

// ErrUnavailable is returned by writes when no database is connected.
var ErrUnavailable = errors.New("database not available")

// Store wraps the gorm connection.
type Store struct {
	db  *gorm.DB
	log *logrus.Entry
}

// New constructs a Store. db may be nil.
func New(db *gorm.DB) *Store {
	return &Store{db: db, log: logging.For("store")}
}

// Available reports whether a database is connected.
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// reader returns a context-bound handle for reads, or false when the store is
// unavailable and the caller should return an empty result.
func (s *Store) reader(ctx context.Context, op string) (*gorm.DB, bool) {
	if !s.Available() {
		s.log.WithField("op", op).Warn("database not available")
		return nil, false
	}
	return s.db.WithContext(ctx), true
}

func (s *Store) writer(ctx context.Context, op string) (*gorm.DB, error) {
	if !s.Available() {
		s.log.WithField("op", op).Warn("database not available")
		return nil, ErrUnavailable
	}
	return s.db.WithContext(ctx), nil
}

// Patch names the columns an update replaces. Columns absent from the patch
// are left untouched.
type Patch map[string]any

// Set adds column to the patch when v is non-nil.
func Set[T any](p Patch, column string, v *T) {
	if v != nil {
		p[column] = *v
	}
}

func first[T any](db *gorm.DB, query string, args ...any) (*T, error) {
	var rows []T
	if err := db.Where(query, args...).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func updateByID[T any](db *gorm.DB, id uint, patch Patch) error {
	if len(patch) == 0 {
		return nil
	}
	var model T
	return db.Model(&model).Where("id = ?", id).Updates(map[string]any(patch)).Error
}

func deleteByID[T any](db *gorm.DB, id uint) error {
	var model T
	return db.Delete(&model, "id = ?", id).Error
}

// IsDuplicateKey reports whether err is a unique constraint violation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
