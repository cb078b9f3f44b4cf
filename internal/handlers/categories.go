package handlers

import (
	"context"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/store"
)

const categoriesKey = "categories:list"

// CategoryHandler manages menu categories.
type CategoryHandler struct {
	deps Deps
}

func NewCategoryHandler(d Deps) *CategoryHandler {
	return &CategoryHandler{deps: d}
}

func (h *CategoryHandler) Register(r *rpc.Router) {
	rpc.Query(r, "categories.list", h.list)
	rpc.Query(r, "categories.get", h.get, rpc.Validate("required"))
	rpc.Query(r, "categories.listAll", h.listAll, rpc.AdminOnly())
	rpc.Mutation(r, "categories.create", h.create, rpc.AdminOnly())
	rpc.Mutation(r, "categories.update", h.update, rpc.AdminOnly())
	rpc.Mutation(r, "categories.delete", h.delete, rpc.AdminOnly(), rpc.Validate("required"))
}

type createCategoryInput struct {
	NameAr        string `json:"name_ar" validate:"required"`
	NameEn        string `json:"name_en" validate:"required"`
	NameFr        string `json:"name_fr" validate:"required"`
	DescriptionAr string `json:"description_ar"`
	DescriptionEn string `json:"description_en"`
	DescriptionFr string `json:"description_fr"`
	Order         int    `json:"order" validate:"gte=0"`
}

type updateCategoryInput struct {
	ID            uint    `json:"id" validate:"required"`
	NameAr        *string `json:"name_ar" validate:"omitempty,min=1"`
	NameEn        *string `json:"name_en" validate:"omitempty,min=1"`
	NameFr        *string `json:"name_fr" validate:"omitempty,min=1"`
	DescriptionAr *string `json:"description_ar"`
	DescriptionEn *string `json:"description_en"`
	DescriptionFr *string `json:"description_fr"`
	Order         *int    `json:"order" validate:"omitempty,gte=0"`
	IsActive      *bool   `json:"is_active"`
}

func (in updateCategoryInput) patch() store.Patch {
	p := store.Patch{}
	store.Set(p, "name_ar", in.NameAr)
	store.Set(p, "name_en", in.NameEn)
	store.Set(p, "name_fr", in.NameFr)
	store.Set(p, "description_ar", in.DescriptionAr)
	store.Set(p, "description_en", in.DescriptionEn)
	store.Set(p, "description_fr", in.DescriptionFr)
	store.Set(p, "sort_order", in.Order)
	store.Set(p, "is_active", in.IsActive)
	return p
}

func (h *CategoryHandler) list(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return cached(ctx, h.deps, categoriesKey, func() ([]models.Category, error) {
		return h.deps.Store.ListCategories(ctx)
	})
}

func (h *CategoryHandler) listAll(ctx context.Context, _ rpc.Caller, _ rpc.Empty) (any, error) {
	return h.deps.Store.ListAllCategories(ctx)
}

func (h *CategoryHandler) get(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	return h.deps.Store.GetCategory(ctx, id)
}

func (h *CategoryHandler) create(ctx context.Context, _ rpc.Caller, in createCategoryInput) (any, error) {
	category := &models.Category{
		NameAr:        in.NameAr,
		NameEn:        in.NameEn,
		NameFr:        in.NameFr,
		DescriptionAr: in.DescriptionAr,
		DescriptionEn: in.DescriptionEn,
		DescriptionFr: in.DescriptionFr,
		SortOrder:     in.Order,
		IsActive:      true,
	}
	if err := h.deps.Store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, categoriesKey)
	return category, nil
}

func (h *CategoryHandler) update(ctx context.Context, _ rpc.Caller, in updateCategoryInput) (any, error) {
	if err := h.deps.Store.UpdateCategory(ctx, in.ID, in.patch()); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, categoriesKey)
	return refetch(ctx, h.deps.Store.GetCategory, in.ID)
}

func (h *CategoryHandler) delete(ctx context.Context, _ rpc.Caller, id uint) (any, error) {
	if err := h.deps.Store.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	invalidate(ctx, h.deps, categoriesKey)
	return nil, nil
}
