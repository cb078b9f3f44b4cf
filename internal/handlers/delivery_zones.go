package handlers

import (
	"context"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/store"
)

const deliveryZonesKey = "delivery_zones:list"

// DeliveryZoneHandler manages delivery zones.
type DeliveryZoneHandler struct {
	deps Deps
}

func NewDeliveryZoneHandler(d Deps) *DeliveryZoneHandler {
	return &DeliveryZoneHandler{deps: d}
}

func (h *DeliveryZoneHandler) Register(r *rpc.Router) {
	rpc.Query(r, "deliveryZones.list", h.list)
	rpc.Query(r, "deliveryZones.get", h.get, rpc.Validate("required"))
	rpc.Query(r, "deliveryZones.listAll", h.listAll, rpc.AdminOnly())
	rpc.Mutation(r, "deliveryZones.create", h.create, rpc.AdminOnly())
	rpc.Mutation(r, "deliveryZones.update", h.update, rpc.AdminOnly())
	rpc.Mutation(r, "deliveryZones.delete", h.delete, rpc.AdminOnly(), rpc.Validate("required"))
}

type createDeliveryZoneInput struct {
	NameAr         string `json:"name_ar" validate:"required"`
	NameEn         string `json:"name_en" validate:"required"`
	NameFr         string `json:"name_fr" validate:"required"`
	DeliveryFee    int64  `json:"delivery_fee" validate:"gte=0"`
	MinOrderAmount int64  `json:"min_order_amount" validate:"gte=0"`
}

type updateDeliveryZoneInput struct {
	ID             uint    `json:"id" validate:"required"`
	NameAr         *string `json:"name_ar" validate:"omitempty,min=1"`
	NameEn         *string `json:"name_en" validate:"omitempty,min=1"`
	NameFr         *string `json:"name_fr" validate:"omitempty,min=1"`
	DeliveryFee    *int64  `json:"delivery_fee" validate:"omitempty,gte=0"`
	MinOrderAmount *int64  `json:"min_order_amount" validate:"omitempty,gte=0"`
	IsActive       *bool   `json:"is_active"`
}

func (in updateDeliveryZoneInput) patch() store.Patch {
	p := store.Patch{}
	store.Set(p, "name_ar", in.NameAr)
	store.Set(p, "name_en", in.NameEn)
	store.Set(p, "name_fr", in.NameFr)
	store.Set(p, "delivery_fee", in.DeliveryFee)
	store.Set(p, "min_order_amount", in.MinOrderAmount)
	store.Set(p, "is_active", in.IsActive)
	return p
}

func (h *DeliveryZoneHandler) list(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return cached(ctx, h.deps, deliveryZonesKey, func() ([]models.DeliveryZone, error) {
		return h.deps.Store.ListDeliveryZones(ctx)
	})
}

func (h *DeliveryZoneHandler) listAll(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.ListAllDeliveryZones(ctx)
}

func (h *DeliveryZoneHandler) get(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	return h.deps.Store.GetDeliveryZone(ctx, id)
}

func (h *DeliveryZoneHandler) create(ctx context.Context, _ rpc.Caller, in createDeliveryZoneInput) (any, error) {
	zone := &models.DeliveryZone{
		NameAr:         in.NameAr,
		NameEn:         in.NameEn,
		NameFr:         in.NameFr,
		DeliveryFee:    in.DeliveryFee,
		MinOrderAmount: in.MinOrderAmount,
		IsActive:       true,
	}
	if err := h.deps.Store.CreateDeliveryZone(ctx, zone); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, deliveryZonesKey)
	return zone, nil
}

func (h *DeliveryZoneHandler) update(ctx context.Context, _ rpc.Caller, in updateDeliveryZoneInput) (any, error) {
	if err := h.deps.Store.UpdateDeliveryZone(ctx, in.ID, in.patch()); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, deliveryZonesKey)
	return refetch(ctx, h.deps.Store.GetDeliveryZone, in.ID)
}

func (h *DeliveryZoneHandler) delete(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	if err := h.deps.Store.DeleteDeliveryZone(ctx, id); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, deliveryZonesKey)
	return nil, nil
}
