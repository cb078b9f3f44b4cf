package store

import (
	"context"

	"github.com/example/mataam/internal/models"
)

func (s *Store) ListDeliveryZones(ctx context.Context) ([]models.DeliveryZone, error) {
	db, ok := s.reader(ctx, "list delivery zones")
	if !ok {
		return []models.DeliveryZone{}, nil
	}
	var zones []models.DeliveryZone
	err := db.Where("is_active = ?", true).Order("id asc").Find(&zones).Error
	return zones, err
}

func (s *Store) ListAllDeliveryZones(ctx context.Context) ([]models.DeliveryZone, error) {
	db, ok := s.reader(ctx, "list all delivery zones")
	if !ok {
		return []models.DeliveryZone{}, nil
	}
	var zones []models.DeliveryZone
	err := db.Order("id asc").Find(&zones).Error
	return zones, err
}

func (s *Store) GetDeliveryZone(ctx context.Context, id uint) (*models.DeliveryZone, error) {
	db, ok := s.reader(ctx, "get delivery zone")
	if !ok {
		return nil, nil
	}
	return first[models.DeliveryZone](db, "id = ?", id)
}

func (s *Store) CreateDeliveryZone(ctx context.Context, zone *models.DeliveryZone) error {
	db, err := s.writer(ctx, "create delivery zone")
	if err != nil {
		return err
	}
	return db.Create(zone).Error
}

func (s *Store) UpdateDeliveryZone(ctx context.Context, id uint, patch Patch) error {
	db, err := s.writer(ctx, "update delivery zone")
	if err != nil {
		return err
	}
	return updateByID[models.DeliveryZone](db, id, patch)
}

func (s *Store) DeleteDeliveryZone(ctx context.Context, id uint) error {
	db, err := s.writer(ctx, "delete delivery zone")
	if err != nil {
		return err
	}
	return deleteByID[models.DeliveryZone](db, id)
}
