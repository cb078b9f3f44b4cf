package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/example/mataam/internal/models"
)

// GetCouponByCode looks up an active coupon by upper-cased code.
func (s *Store) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	db, ok := s.reader(ctx, "get coupon")
	if !ok {
		return nil, nil
	}
	return first[models.Coupon](db, "code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true)
}

func (s *Store) GetCoupon(ctx context.Context, id uint) (*models.Coupon, error) {
	db, ok := s.reader(ctx, "get coupon by id")
	if !ok {
		return nil, nil
	}
	return first[models.Coupon](db, "id = ?", id)
}

func (s *Store) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	db, ok := s.reader(ctx, "list coupons")
	if !ok {
		return []models.Coupon{}, nil
	}
	var coupons []models.Coupon
	err := db.Order("created_at desc").Order("id desc").Find(&coupons).Error
	return coupons, err
}

func (s *Store) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	db, err := s.writer(ctx, "create coupon")
	if err != nil {
		return err
	}
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	return db.Create(coupon).Error
}

func (s *Store) UpdateCoupon(ctx context.Context, id uint, patch Patch) error {
	db, err := s.writer(ctx, "update coupon")
	if err != nil {
		return err
	}
	if code, ok := patch["code"].(string); ok {
		patch["code"] = strings.ToUpper(strings.TrimSpace(code))
	}
	return updateByID[models.Coupon](db, id, patch)
}

func (s *Store) DeleteCoupon(ctx context.Context, id uint) error {
	db, err := s.writer(ctx, "delete coupon")
	if err != nil {
		return err
	}
	return deleteByID[models.Coupon](db, id)
}

// redeemCoupon bumps usage_count only while the coupon is active and under
// its cap. A cap of NULL or 0 means unlimited.
func redeemCoupon(tx *gorm.DB, id uint) error {
	res := tx.Model(&models.Coupon{}).
		Where("id = ? AND is_active = ?", id, true).
		Where("max_usage IS NULL OR max_usage = 0 OR usage_count < max_usage").
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCouponExhausted
	}
	return nil
}
