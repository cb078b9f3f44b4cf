package store

import (
	"context"

	"github.com/example/mataam/internal/models"
)

func (s *Store) CreateReservation(ctx context.Context, reservation *models.TableReservation) error {
	db, err := s.writer(ctx, "create reservation")
	if err != nil {
		return err
	}
	return db.Create(reservation).Error
}

// ListReservations returns reservations latest date first.
func (s *Store) ListReservations(ctx context.Context) ([]models.TableReservation, error) {
	db, ok := s.reader(ctx, "list reservations")
	if !ok {
		return []models.TableReservation{}, nil
	}
	var reservations []models.TableReservation
	err := db.Order("reservation_date desc").Order("id desc").Find(&reservations).Error
	return reservations, err
}

func (s *Store) GetReservation(ctx context.Context, id uint) (*models.TableReservation, error) {
	db, ok := s.reader(ctx, "get reservation")
	if !ok {
		return nil, nil
	}
	return first[models.TableReservation](db, "id = ?", id)
}

func (s *Store) UpdateReservation(ctx context.Context, id uint, patch Patch) error {
	db, err := s.writer(ctx, "update reservation")
	if err != nil {
		return err
	}
	return updateByID[models.TableReservation](db, id, patch)
}

func (s *Store) DeleteReservation(ctx context.Context, id uint) error {
	db, err := s.writer(ctx, "delete reservation")
	if err != nil {
		return err
	}
	return deleteByID[models.TableReservation](db, id)
}
