package handlers

import (
	"context"
	"time"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/store"
)

// CouponHandler manages discount codes.
type CouponHandler struct {
	deps Deps
}

func NewCouponHandler(d Deps) *CouponHandler {
	return &CouponHandler{deps: d}
}

func (h *CouponHandler) Register(r *rpc.Router) {
	rpc.Query(r, "coupons.list", h.list, rpc.AdminOnly())
	rpc.Query(r, "coupons.validate", h.validate, rpc.Validate("required"))
	rpc.Mutation(r, "coupons.create", h.create, rpc.AdminOnly())
	rpc.Mutation(r, "coupons.update", h.update, rpc.AdminOnly())
	rpc.Mutation(r, "coupons.delete", h.delete, rpc.AdminOnly(), rpc.Validate("required"))
}

type createCouponInput struct {
	Code           string     `json:"code" validate:"required,max=50"`
	DescriptionAr  string     `json:"description_ar"`
	DescriptionEn  string     `json:"description_en"`
	DescriptionFr  string     `json:"description_fr"`
	DiscountType   string     `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue  int64      `json:"discount_value" validate:"gte=0"`
	MinOrderAmount int64      `json:"min_order_amount" validate:"gte=0"`
	MaxUsage       *int       `json:"max_usage" validate:"omitempty,gte=0"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type updateCouponInput struct {
	ID             uint       `json:"id" validate:"required"`
	Code           *string    `json:"code" validate:"omitempty,min=1,max=50"`
	DescriptionAr  *string    `json:"description_ar"`
	DescriptionEn  *string    `json:"description_en"`
	DescriptionFr  *string    `json:"description_fr"`
	DiscountType   *string    `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue  *int64     `json:"discount_value" validate:"omitempty,gte=0"`
	MinOrderAmount *int64     `json:"min_order_amount" validate:"omitempty,gte=0"`
	MaxUsage       *int       `json:"max_usage" validate:"omitempty,gte=0"`
	IsActive       *bool      `json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

func (in updateCouponInput) patch() store.Patch {
	p := store.Patch{}
	store.Set(p, "code", in.Code)
	store.Set(p, "description_ar", in.DescriptionAr)
	store.Set(p, "description_en", in.DescriptionEn)
	store.Set(p, "description_fr", in.DescriptionFr)
	store.Set(p, "discount_type", in.DiscountType)
	store.Set(p, "discount_value", in.DiscountValue)
	store.Set(p, "min_order_amount", in.MinOrderAmount)
	store.Set(p, "max_usage", in.MaxUsage)
	store.Set(p, "is_active", in.IsActive)
	store.Set(p, "expires_at", in.ExpiresAt)
	return p
}

func checkPercentage(discountType string, value int64) error {
	if discountType == models.DiscountPercentage && value > 100 {
		return rpc.Invalidf("discount_value must be at most 100 for percentage coupons")
	}
	return nil
}

func (h *CouponHandler) list(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.ListCoupons(ctx)
}

// validate never changes the coupon's usage count.
func (h *CouponHandler) validate(ctx context.Context, _ rpc.Caller, code string) (any, error) {
	return h.deps.Coupons.Validate(ctx, code)
}

func (h *CouponHandler) create(ctx context.Context, _ rpc.Caller, in createCouponInput) (any, error) {
	if err := checkPercentage(in.DiscountType, in.DiscountValue); err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:           in.Code,
		DescriptionAr:  in.DescriptionAr,
		DescriptionEn:  in.DescriptionEn,
		DescriptionFr:  in.DescriptionFr,
		DiscountType:   in.DiscountType,
		DiscountValue:  in.DiscountValue,
		MinOrderAmount: in.MinOrderAmount,
		MaxUsage:       in.MaxUsage,
		IsActive:       true,
		ExpiresAt:      in.ExpiresAt,
	}
	if err := h.deps.Store.CreateCoupon(ctx, coupon); err != nil {
		return nil, clientError(err)
	}
	return coupon, nil
}

func (h *CouponHandler) update(ctx context.Context, _ rpc.Caller, in updateCouponInput) (any, error) {
	if in.DiscountValue != nil {
		discountType := ""
		if in.DiscountType != nil {
			discountType = *in.DiscountType
		} else if current, err := h.deps.Store.GetCoupon(ctx, in.ID); err == nil && current != nil {
			discountType = current.DiscountType
		}
		if err := checkPercentage(discountType, *in.DiscountValue); err != nil {
			return nil, err
		}
	}

	if err := h.deps.Store.UpdateCoupon(ctx, in.ID, in.patch()); err != nil {
		return nil, clientError(err)
	}
	return refetch(ctx, h.deps.Store.GetCoupon, in.ID)
}

func (h *CouponHandler) delete(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	return nil, h.deps.Store.DeleteCoupon(ctx, id)
}
