package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/rpc"
	"github.com/example/mataam/internal/services"
	"github.com/example/mataam/internal/store"
	"github.com/example/mataam/internal/utils"
)

// OrderHandler manages orders.
type OrderHandler struct {
	deps Deps
}

func NewOrderHandler(d Deps) *OrderHandler {
	return &OrderHandler{deps: d}
}

func (h *OrderHandler) Register(r *rpc.Router) {
	rpc.Query(r, "orders.list", h.list, rpc.AdminOnly())
	rpc.Query(r, "orders.get", h.get, rpc.Validate("required"))
	rpc.Query(r, "orders.items", h.items, rpc.Validate("required"))
	rpc.Query(r, "orders.qrcode", h.qrcode, rpc.Validate("required"))
	rpc.Mutation(r, "orders.create", h.create)
	rpc.Mutation(r, "orders.update", h.update, rpc.AdminOnly())
}

type listOrdersInput struct {
	Status string `json:"status" validate:"omitempty,oneof=pending confirmed preparing ready delivered cancelled"`
	Search string `json:"search"`
	Page   int    `json:"page" validate:"gte=0"`
	Limit  int    `json:"limit" validate:"gte=0"`
}

type orderPage struct {
	Orders     []models.Order `json:"orders"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

type updateOrderInput struct {
	ID     uint    `json:"id" validate:"required"`
	Status *string `json:"status" validate:"omitempty,oneof=pending confirmed preparing ready delivered cancelled"`
	Notes  *string `json:"notes"`
}

type orderQRCode struct {
	OrderNumber string `json:"order_number"`
	URL         string `json:"url"`
	Image       string `json:"image"`
}

func (h *OrderHandler) list(ctx context.Context, _ rpc.Caller, in listOrdersInput) (any, error) {
	pg := utils.NewPagination(in.Page, in.Limit)
	orders, total, err := h.deps.Store.ListOrders(ctx, store.OrderFilter{
		Status: in.Status,
		Search: in.Search,
		Limit:  pg.Limit,
		Offset: pg.Offset,
	})
	if err != nil {
		return nil, err
	}
	return orderPage{
		Orders:     orders,
		Total:      total,
		Page:       pg.Page,
		Limit:      pg.Limit,
		TotalPages: pg.TotalPages(total),
	}, nil
}

// get returns the order with its items, or null for an unknown number.
func (h *OrderHandler) get(ctx context.Context, _ rpc.Caller, orderNumber string) (any, error) {
	order, err := h.deps.Store.GetOrderByNumber(ctx, orderNumber)
	if err != nil || order == nil {
		return nil, err
	}
	items, err := h.deps.Store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (h *OrderHandler) items(ctx context.Context, _ rpc.Caller, orderID uint) (any, error) {
	return h.deps.Store.ListOrderItems(ctx, orderID)
}

func (h *OrderHandler) qrcode(ctx context.Context, _ rpc.Caller, orderNumber string) (any, error) {
	order, err := h.deps.Store.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "order not found")
	}

	image, err := h.deps.QR.DataURL(order.OrderNumber)
	if err != nil {
		return nil, err
	}
	return orderQRCode{
		OrderNumber: order.OrderNumber,
		URL:         h.deps.QR.OrderURL(order.OrderNumber),
		Image:       image,
	}, nil
}

func (h *OrderHandler) create(ctx context.Context, _ rpc.Caller, in services.PlaceOrderInput) (any, error) {
	placed, err := h.deps.Orders.PlaceOrder(ctx, in)
	if err != nil {
		return nil, clientError(err)
	}
	return placed, nil
}

func (h *OrderHandler) update(ctx context.Context, _ rpc.Caller, in updateOrderInput) (any, error) {
	order, err := h.deps.Orders.UpdateOrder(ctx, in.ID, services.OrderUpdate{Status: in.Status, Notes: in.Notes})
	if err != nil {
		return nil, clientError(err)
	}
	return order, nil
}
