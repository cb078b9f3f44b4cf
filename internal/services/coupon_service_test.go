package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
	"github.com/example/mataam/internal/testutil"
)

func TestCouponService_Validate(t *testing.T) {
	st := store.New(testutil.NewDB(t))
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCouponService(st)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)
	two, zero := 2, 0

	coupons := []*models.Coupon{
		{Code: "SUMMER", DiscountType: models.DiscountPercentage, DiscountValue: 15, ExpiresAt: &future, IsActive: true},
		{Code: "OLD", DiscountType: models.DiscountFixed, DiscountValue: 100, ExpiresAt: &past, IsActive: true},
		{Code: "USEDUP", DiscountType: models.DiscountFixed, DiscountValue: 100, MaxUsage: &two, UsageCount: 2, IsActive: true},
		{Code: "UNCAPPED", DiscountType: models.DiscountFixed, DiscountValue: 100, MaxUsage: &zero, UsageCount: 40, IsActive: true},
	}
	for _, c := range coupons {
		require.NoError(t, st.CreateCoupon(ctx, c))
	}

	tests := []struct {
		code  string
		valid bool
	}{
		{"summer", true},
		{"SuMmEr", true},
		{"UNCAPPED", true},
		{"OLD", false},
		{"USEDUP", false},
		{"MISSING", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			res, err := svc.Validate(ctx, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				require.NotNil(t, res.Coupon)
			} else {
				assert.Nil(t, res.Coupon)
			}
		})
	}

	stored, err := st.GetCouponByCode(ctx, "USEDUP")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsageCount, "validation never changes usage")
}

func TestCouponUsable_Inactive(t *testing.T) {
	assert.False(t, CouponUsable(&models.Coupon{IsActive: false}, time.Now()))
	assert.False(t, CouponUsable(nil, time.Now()))
}
