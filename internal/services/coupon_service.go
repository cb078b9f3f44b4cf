package services

import (
	"context"
	"time"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
)

// CouponValidation is the result of checking a code. Coupon is set only when
// Valid.
type CouponValidation struct {
	Valid  bool           `json:"valid"`
	Coupon *models.Coupon `json:"coupon,omitempty"`
}

// CouponUsable reports whether an active coupon can still be applied at now:
// it has not expired and, when capped, has uses left. A cap of 0 means none.
func CouponUsable(c *models.Coupon, now time.Time) bool {
	if c == nil || !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	if c.MaxUsage != nil && *c.MaxUsage > 0 && c.UsageCount >= *c.MaxUsage {
		return false
	}
	return true
}

// CouponService checks coupon codes. It never changes usage counts.
type CouponService struct {
	store *store.Store
	now   func() time.Time
}

func NewCouponService(st *store.Store) *CouponService {
	return &CouponService{store: st, now: time.Now}
}

// Validate looks the code up case-insensitively.
func (s *CouponService) Validate(ctx context.Context, code string) (CouponValidation, error) {
	coupon, err := s.store.GetCouponByCode(ctx, code)
	if err != nil {
		return CouponValidation{}, err
	}
	if !CouponUsable(coupon, s.now()) {
		return CouponValidation{Valid: false}, nil
	}
	return CouponValidation{Valid: true, Coupon: coupon}, nil
}
