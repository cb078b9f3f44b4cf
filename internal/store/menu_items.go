package store

import (
	"context"

	"github.com/example/mataam/internal/models"
)

// ListMenuItems returns available items by sort order, optionally restricted
// to one category.
func (s *Store) ListMenuItems(ctx context.Context, categoryID *uint) ([]models.MenuItem, error) {
	db, ok := s.reader(ctx, "list menu items")
	if !ok {
		return []models.MenuItem{}, nil
	}
	query := db.Where("is_available = ?", true)
	if categoryID != nil && *categoryID != 0 {
		query = query.Where("category_id = ?", *categoryID)
	}
	var items []models.MenuItem
	err := query.Order("sort_order asc").Order("id asc").Find(&items).Error
	return items, err
}

// ListAllMenuItems includes unavailable items.
func (s *Store) ListAllMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	db, ok := s.reader(ctx, "list all menu items")
	if !ok {
		return []models.MenuItem{}, nil
	}
	var items []models.MenuItem
	err := db.Order("category_id asc").Order("sort_order asc").Order("id asc").Find(&items).Error
	return items, err
}

func (s *Store) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	db, ok := s.reader(ctx, "get menu item")
	if !ok {
		return nil, nil
	}
	return first[models.MenuItem](db, "id = ?", id)
}

func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	db, err := s.writer(ctx, "create menu item")
	if err != nil {
		return err
	}
	return db.Create(item).Error
}

func (s *Store) UpdateMenuItem(ctx context.Context, id uint, patch Patch) error {
	db, err := s.writer(ctx, "update menu item")
	if err != nil {
		return err
	}
	return updateByID[models.MenuItem](db, id, patch)
}

func (s *Store) DeleteMenuItem(ctx context.Context, id uint) error {
	db, err := s.writer(ctx, "delete menu item")
	if err != nil {
		return err
	}
	return deleteByID[models.MenuItem](db, id)
}
