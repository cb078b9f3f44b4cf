package store

import (
	"context"

	"github.com/example/mataam/internal/models"
)

func (s *Store) CreateReview(ctx context.Context, review *models.Review) error {
	db, err := s.writer(ctx, "create review")
	if err != nil {
		return err
	}
	return db.Create(review).Error
}

func (s *Store) ListReviewsByOrder(ctx context.Context, orderID uint) ([]models.Review, error) {
	db, ok := s.reader(ctx, "list reviews by order")
	if !ok {
		return []models.Review{}, nil
	}
	var reviews []models.Review
	err := db.Where("order_id = ?", orderID).Order("id asc").Find(&reviews).Error
	return reviews, err
}

func (s *Store) ListReviews(ctx context.Context) ([]models.Review, error) {
	db, ok := s.reader(ctx, "list reviews")
	if !ok {
		return []models.Review{}, nil
	}
	var reviews []models.Review
	err := db.Order("created_at desc").Order("id desc").Find(&reviews).Error
	return reviews, err
}
