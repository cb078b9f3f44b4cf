package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/mataam/internal/events"
	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/metrics"
	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
)

const orderNumberAttempts = 3

var (
	ErrInvalidCoupon    = errors.New("invalid coupon")
	ErrCouponMinimum    = errors.New("order subtotal is below the coupon minimum")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNumberTaken = errors.New("could not allocate a unique order number")
)

// GenerateOrderNumber returns "ORD-" followed by the last six digits of the
// epoch millisecond timestamp and a zero-padded random number below 1000.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%06d%03d", now.UnixMilli()%1_000_000, rand.IntN(1000))
}

// PlaceOrderItem is one submitted cart line. Price is what the customer saw
// and is stored as the line's price snapshot.
type PlaceOrderItem struct {
	MenuItemID uint   `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=1"`
	Price      int64  `json:"price" validate:"gte=0"`
	Notes      string `json:"notes"`
}

// PlaceOrderInput is a checkout submission. Amounts are minor units computed
// by the client.
type PlaceOrderInput struct {
	CustomerName          string           `json:"customer_name" validate:"required"`
	CustomerEmail         string           `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone         string           `json:"customer_phone" validate:"required"`
	DeliveryZoneID        uint             `json:"delivery_zone_id" validate:"required"`
	AddressAr             string           `json:"address_ar" validate:"required_without=AddressEn"`
	AddressEn             string           `json:"address_en" validate:"required_without=AddressAr"`
	Latitude              string           `json:"latitude"`
	Longitude             string           `json:"longitude"`
	Notes                 string           `json:"notes"`
	Items                 []PlaceOrderItem `json:"items" validate:"required,min=1,dive"`
	Subtotal              int64            `json:"subtotal" validate:"gte=0"`
	DeliveryFee           int64            `json:"delivery_fee" validate:"gte=0"`
	Total                 int64            `json:"total" validate:"gte=0"`
	PaymentMethod         string           `json:"payment_method" validate:"omitempty,oneof=cash card"`
	EstimatedDeliveryTime int              `json:"estimated_delivery_time" validate:"gte=0"`
	CouponCode            string           `json:"coupon_code"`
}

// PlacedOrder identifies a newly created order.
type PlacedOrder struct {
	OrderNumber string `json:"order_number"`
	OrderID     uint   `json:"order_id"`
}

// OrderService places orders and moves them through their status lifecycle.
type OrderService struct {
	store     *store.Store
	publisher events.Publisher
	notifier  Notifier
	now       func() time.Time
	newNumber func(time.Time) string
	goAsync   func(func())
	log       *logrus.Entry
}

func NewOrderService(st *store.Store, publisher events.Publisher, notifier Notifier) *OrderService {
	return &OrderService{
		store:     st,
		publisher: publisher,
		notifier:  notifier,
		now:       time.Now,
		newNumber: GenerateOrderNumber,
		goAsync:   func(f func()) { go f() },
		log:       logging.For("orders"),
	}
}

// PlaceOrder writes the order and its items in one transaction, retrying with
// a fresh number when the generated one is already taken.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlacedOrder, error) {
	var (
		couponID uint
		discount int64
	)
	if in.CouponCode != "" {
		coupon, err := s.store.GetCouponByCode(ctx, in.CouponCode)
		if err != nil {
			return nil, err
		}
		if !CouponUsable(coupon, s.now()) {
			return nil, ErrInvalidCoupon
		}
		if in.Subtotal < coupon.MinOrderAmount {
			return nil, ErrCouponMinimum
		}
		couponID = coupon.ID
		discount = coupon.Discount(in.Subtotal)
		in.CouponCode = coupon.Code
	}

	var (
		created *models.Order
		err     error
	)
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		order, items := s.buildOrder(in)
		created, err = s.store.PlaceOrder(ctx, order, items, couponID)
		if err == nil || !store.IsDuplicateKey(err) {
			break
		}
		metrics.RecordOrderNumberCollision()
		s.log.WithFields(logrus.Fields{"order_number": order.OrderNumber, "attempt": attempt}).Warn("order number collision")
		err = ErrOrderNumberTaken
	}
	if err != nil {
		metrics.RecordOrderPlaced(false)
		if errors.Is(err, store.ErrCouponExhausted) {
			return nil, ErrInvalidCoupon
		}
		return nil, fmt.Errorf("place order: %w", err)
	}
	metrics.RecordOrderPlaced(true)

	s.log.WithFields(logrus.Fields{
		"order_number": created.OrderNumber,
		"items":        len(created.Items),
		"total":        created.Total,
	}).Info("order placed")

	s.publish(ctx, events.New(events.TypeOrderPlaced, created.OrderNumber, created))

	order := *created
	s.goAsync(func() { s.notifyNewOrder(order, discount) })

	return &PlacedOrder{OrderNumber: created.OrderNumber, OrderID: created.ID}, nil
}

func (s *OrderService) buildOrder(in PlaceOrderInput) (*models.Order, []models.OrderItem) {
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentCash
	}
	estimate := in.EstimatedDeliveryTime
	if estimate <= 0 {
		estimate = models.DefaultDeliveryMinutes
	}

	order := &models.Order{
		OrderNumber:           s.newNumber(s.now()),
		CustomerName:          in.CustomerName,
		CustomerEmail:         in.CustomerEmail,
		CustomerPhone:         in.CustomerPhone,
		DeliveryZoneID:        in.DeliveryZoneID,
		AddressAr:             in.AddressAr,
		AddressEn:             in.AddressEn,
		Latitude:              in.Latitude,
		Longitude:             in.Longitude,
		Notes:                 in.Notes,
		Subtotal:              in.Subtotal,
		DeliveryFee:           in.DeliveryFee,
		Total:                 in.Total,
		PaymentMethod:         paymentMethod,
		Status:                models.OrderPending,
		EstimatedDeliveryTime: estimate,
		CouponCode:            in.CouponCode,
	}

	items := make([]models.OrderItem, len(in.Items))
	for i, line := range in.Items {
		items[i] = models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			Price:      line.Price,
			Notes:      line.Notes,
		}
	}
	return order, items
}

// OrderUpdate carries the admin-editable fields of an order.
type OrderUpdate struct {
	Status *string
	Notes  *string
}

// UpdateOrder applies the update and announces a status change.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, update OrderUpdate) (*models.Order, error) {
	current, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		if !s.store.Available() {
			return nil, store.ErrUnavailable
		}
		return nil, ErrOrderNotFound
	}

	patch := store.Patch{}
	store.Set(patch, "status", update.Status)
	store.Set(patch, "notes", update.Notes)
	if err := s.store.UpdateOrder(ctx, id, patch); err != nil {
		return nil, err
	}

	updated, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Status != nil && *update.Status != current.Status {
		s.log.WithFields(logrus.Fields{
			"order_number": current.OrderNumber,
			"from":         current.Status,
			"to":           *update.Status,
		}).Info("order status changed")
		s.publish(ctx, events.New(events.TypeOrderStatusChanged, current.OrderNumber, map[string]string{
			"order_number": current.OrderNumber,
			"from":         current.Status,
			"to":           *update.Status,
		}))
	}
	return updated, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WithError(err).WithField("type", event.Type).Warn("publish event failed")
	}
}

// notifyNewOrder reports the order to the admin chat. discount is what the
// applied coupon takes off the subtotal.
func (s *OrderService) notifyNewOrder(order models.Order, discount int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	n := OrderNotification{
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Address:       order.AddressAr,
		Notes:         order.Notes,
		Subtotal:      order.Subtotal,
		Discount:      discount,
		DeliveryFee:   order.DeliveryFee,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		CouponCode:    order.CouponCode,
	}
	if n.Address == "" {
		n.Address = order.AddressEn
	}

	for _, item := range order.Items {
		line := OrderItemNotification{Quantity: item.Quantity, Price: item.Price, Total: item.LineTotal(), Notes: item.Notes}
		if menuItem, err := s.store.GetMenuItem(ctx, item.MenuItemID); err == nil && menuItem != nil {
			line.NameAr, line.NameEn, line.NameFr = menuItem.NameAr, menuItem.NameEn, menuItem.NameFr
		}
		n.Items = append(n.Items, line)
	}

	if err := s.notifier.NotifyNewOrder(n); err != nil {
		s.log.WithError(err).WithField("order_number", order.OrderNumber).Warn("order notification failed")
	}
}
