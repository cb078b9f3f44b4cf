package store

import (
	"context"

	"github.com/example/mataam/internal/models"
)

// ListCategories returns active categories by sort order.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	db, ok := s.reader(ctx, "list categories")
	if !ok {
		return []models.Category{}, nil
	}
	var items []models.Category
	err := db.Where("is_active = ?", true).Order("sort_order asc").Order("id asc").Find(&items).Error
	return items, err
}

// ListAllCategories includes deactivated categories.
func (s *Store) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	db, ok := s.reader(ctx, "list all categories")
	if !ok {
		return []models.Category{}, nil
	}
	var items []models.Category
	err := db.Order("sort_order asc").Order("id asc").Find(&items).Error
	return items, err
}

func (s *Store) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	db, ok := s.reader(ctx, "get category")
	if !ok {
		return nil, nil
	}
	return first[models.Category](db, "id = ?", id)
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	db, err := s.writer(ctx, "create category")
	if err != nil {
		return err
	}
	return db.Create(category).Error
}

func (s *Store) UpdateCategory(ctx context.Context, id uint, patch Patch) error {
	db, err := s.writer(ctx, "update category")
	if err != nil {
		return err
	}
	return updateByID[models.Category](db, id, patch)
}

func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	db, err := s.writer(ctx, "delete category")
	if err != nil {
		return err
	}
	return deleteByID[models.Category](db, id)
}
