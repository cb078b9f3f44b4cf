package handlers

import (
	"context"

	"github.com/example/mataam/internal/cart"
	"github.com/example/mataam/internal/rpc"
)

// CartHandler keeps server-side carts addressed by cart id. A request without
// a cart id starts a new cart; the id is returned with every response.
type CartHandler struct {
	deps Deps
}

func NewCartHandler(d Deps) *CartHandler {
	return &CartHandler{deps: d}
}

func (h *CartHandler) Register(r *rpc.Router) {
	rpc.Query(r, "cart.get", h.get)
	rpc.Mutation(r, "cart.add", h.add)
	rpc.Mutation(r, "cart.remove", h.remove)
	rpc.Mutation(r, "cart.updateQuantity", h.updateQuantity)
	rpc.Mutation(r, "cart.updateNotes", h.updateNotes)
	rpc.Mutation(r, "cart.clear", h.clear)
}

type cartRef struct {
	CartID string `json:"cart_id" validate:"omitempty,uuid"`
}

type addToCartInput struct {
	CartID     string `json:"cart_id" validate:"omitempty,uuid"`
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=1"`
	Notes      string `json:"notes"`
}

type cartLineInput struct {
	CartID     string `json:"cart_id" validate:"required,uuid"`
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
}

type cartQuantityInput struct {
	CartID     string `json:"cart_id" validate:"required,uuid"`
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity"`
}

type cartNotesInput struct {
	CartID     string `json:"cart_id" validate:"required,uuid"`
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
	Notes      string `json:"notes"`
}

func (h *CartHandler) get(ctx context.Context, _ rpc.Caller, in cartRef) (any, error) {
	c, err := h.deps.Carts.Load(ctx, in.CartID)
	if err != nil {
		return nil, err
	}
	return c.View(), nil
}

// add snapshots the dish's current names, price and image into the line.
func (h *CartHandler) add(ctx context.Context, _ rpc.Caller, in addToCartInput) (any, error) {
	item, err := h.deps.Store.GetMenuItem(ctx, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsAvailable {
		return nil, rpc.Invalidf("menu item %d is not available", in.MenuItemID)
	}

	return h.change(ctx, in.CartID, func(c *cart.Cart) {
		c.Add(cart.Line{
			MenuItemID: item.ID,
			NameAr:     item.NameAr,
			NameEn:     item.NameEn,
			NameFr:     item.NameFr,
			Price:      item.Price,
			Quantity:   in.Quantity,
			ImageURL:   item.ImageURL,
			Notes:      in.Notes,
		})
	})
}

func (h *CartHandler) remove(ctx context.Context, _ rpc.Caller, in cartLineInput) (any, error) {
	return h.change(ctx, in.CartID, func(c *cart.Cart) { c.Remove(in.MenuItemID) })
}

func (h *CartHandler) updateQuantity(ctx context.Context, _ rpc.Caller, in cartQuantityInput) (any, error) {
	return h.change(ctx, in.CartID, func(c *cart.Cart) { c.UpdateQuantity(in.MenuItemID, in.Quantity) })
}

func (h *CartHandler) updateNotes(ctx context.Context, _ rpc.Caller, in cartNotesInput) (any, error) {
	return h.change(ctx, in.CartID, func(c *cart.Cart) { c.UpdateNotes(in.MenuItemID, in.Notes) })
}

func (h *CartHandler) clear(ctx context.Context, _ rpc.Caller, in cartRef) (any, error) {
	return h.change(ctx, in.CartID, func(c *cart.Cart) { c.Clear() })
}

func (h *CartHandler) change(ctx context.Context, id string, fn func(*cart.Cart)) (any, error) {
	c, err := h.deps.Carts.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	return c.View(), nil
}
