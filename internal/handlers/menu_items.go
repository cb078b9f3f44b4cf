package handlers

import (
	"context"
	"strconv"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/store"
)

func menuItemsKey(categoryID *uint) string {
	if categoryID == nil {
		return "menu_items:list:all"
	}
	return "menu_items:list:" + strconv.FormatUint(uint64(*categoryID), 10)
}

// MenuItemHandler manages dishes.
type MenuItemHandler struct {
	deps Deps
}

func NewMenuItemHandler(d Deps) *MenuItemHandler {
	return &MenuItemHandler{deps: d}
}

func (h *MenuItemHandler) Register(r *rpc.Router) {
	rpc.Query(r, "menuItems.list", h.list)
	rpc.Query(r, "menuItems.get", h.get, rpc.Validate("required"))
	rpc.Query(r, "menuItems.listAll", h.listAll, rpc.AdminOnly())
	rpc.Mutation(r, "menuItems.create", h.create, rpc.AdminOnly())
	rpc.Mutation(r, "menuItems.update", h.update, rpc.AdminOnly())
	rpc.Mutation(r, "menuItems.delete", h.delete, rpc.AdminOnly(), rpc.Validate("required"))
}

type createMenuItemInput struct {
	CategoryID    uint   `json:"category_id" validate:"required"`
	NameAr        string `json:"name_ar" validate:"required"`
	NameEn        string `json:"name_en" validate:"required"`
	NameFr        string `json:"name_fr" validate:"required"`
	DescriptionAr string `json:"description_ar"`
	DescriptionEn string `json:"description_en"`
	DescriptionFr string `json:"description_fr"`
	Price         int64  `json:"price" validate:"gte=0"`
	ImageURL      string `json:"image_url" validate:"max=2048"`
	Order         int    `json:"order" validate:"gte=0"`
}

type updateMenuItemInput struct {
	ID            uint    `json:"id" validate:"required"`
	CategoryID    *uint   `json:"category_id" validate:"omitempty,gt=0"`
	NameAr        *string `json:"name_ar" validate:"omitempty,min=1"`
	NameEn        *string `json:"name_en" validate:"omitempty,min=1"`
	NameFr        *string `json:"name_fr" validate:"omitempty,min=1"`
	DescriptionAr *string `json:"description_ar"`
	DescriptionEn *string `json:"description_en"`
	DescriptionFr *string `json:"description_fr"`
	Price         *int64  `json:"price" validate:"omitempty,gte=0"`
	ImageURL      *string `json:"image_url" validate:"omitempty,max=2048"`
	IsAvailable   *bool   `json:"is_available"`
	Order         *int    `json:"order" validate:"omitempty,gte=0"`
}

func (in updateMenuItemInput) patch() store.Patch {
	p := store.Patch{}
	store.Set(p, "category_id", in.CategoryID)
	store.Set(p, "name_ar", in.NameAr)
	store.Set(p, "name_en", in.NameEn)
	store.Set(p, "name_fr", in.NameFr)
	store.Set(p, "description_ar", in.DescriptionAr)
	store.Set(p, "description_en", in.DescriptionEn)
	store.Set(p, "description_fr", in.DescriptionFr)
	store.Set(p, "price", in.Price)
	store.Set(p, "image_url", in.ImageURL)
	store.Set(p, "is_available", in.IsAvailable)
	store.Set(p, "sort_order", in.Order)
	return p
}

// list returns available items, optionally of one category. A category id of
// 0 means every category.
func (h *MenuItemHandler) list(ctx context.Context, _ rpc.Caller, categoryID *uint) (any, error) {
	if categoryID != nil && *categoryID == 0 {
		categoryID = nil
	}
	return cached(ctx, h.deps, menuItemsKey(categoryID), func() ([]models.MenuItem, error) {
		return h.deps.Store.ListMenuItems(ctx, categoryID)
	})
}

func (h *MenuItemHandler) listAll(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.ListAllMenuItems(ctx)
}

func (h *MenuItemHandler) get(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	return h.deps.Store.GetMenuItem(ctx, id)
}

func (h *MenuItemHandler) create(ctx context.Context, _ rpc.Caller, in createMenuItemInput) (any, error) {
	item := &models.MenuItem{
		CategoryID:    in.CategoryID,
		NameAr:        in.NameAr,
		NameEn:        in.NameEn,
		NameFr:        in.NameFr,
		DescriptionAr: in.DescriptionAr,
		DescriptionEn: in.DescriptionEn,
		DescriptionFr: in.DescriptionFr,
		Price:         in.Price,
		ImageURL:      in.ImageURL,
		IsAvailable:   true,
		SortOrder:     in.Order,
	}
	if err := h.deps.Store.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	h.invalidate(ctx, item.CategoryID)
	return item, nil
}

func (h *MenuItemHandler) update(ctx context.Context, _ rpc.Caller, in updateMenuItemInput) (any, error) {
	before, err := h.deps.Store.GetMenuItem(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := h.deps.Store.UpdateMenuItem(ctx, in.ID, in.patch()); err != nil {
		return nil, err
	}
	after, err := refetch(ctx, h.deps.Store.GetMenuItem, in.ID)
	if err != nil {
		return nil, err
	}
	if before != nil {
		h.invalidate(ctx, before.CategoryID, after.CategoryID)
	} else {
		h.invalidate(ctx, after.CategoryID)
	}
	return after, nil
}

func (h *MenuItemHandler) delete(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	before, err := h.deps.Store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := h.deps.Store.DeleteMenuItem(ctx, id); err != nil {
		return nil, err
	}
	if before != nil {
		h.invalidate(ctx, before.CategoryID)
	}
	return nil, nil
}

func (h *MenuItemHandler) invalidate(ctx context.Context, categoryIDs ...uint) {
	keys := []string{menuItemsKey(nil)}
	for i := range categoryIDs {
		keys = append(keys, menuItemsKey(&categoryIDs[i]))
	}
	invalidate(ctx, h.deps, keys...)
}
