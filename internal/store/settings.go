package store

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/example/mataam/internal/models"
)

func (s *Store) GetSetting(ctx context.Context, key string) (*models.Setting, error) {
	db, ok := s.reader(ctx, "get setting")
	if !ok {
		return nil, nil
	}
	return first[models.Setting](db, "key = ?", key)
}

func (s *Store) ListSettings(ctx context.Context) ([]models.Setting, error) {
	db, ok := s.reader(ctx, "list settings")
	if !ok {
		return []models.Setting{}, nil
	}
	var settings []models.Setting
	err := db.Order("key asc").Find(&settings).Error
	return settings, err
}

// SetSetting inserts or replaces the value stored under key.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	db, err := s.writer(ctx, "set setting")
	if err != nil {
		return err
	}
	setting := models.Setting{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
