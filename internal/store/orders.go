package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/mataam/internal/models"
)

var (
	// ErrOrderNotCreated means the order could not be read back after insert.
	ErrOrderNotCreated = errors.New("failed to create order")
	// ErrCouponExhausted means the coupon reached its usage cap or was
	// deactivated while the order was being placed.
	ErrCouponExhausted = errors.New("coupon is no longer available")
)

// OrderFilter narrows ListOrders. Zero values mean no filter / no paging.
type OrderFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// ListOrders returns orders newest first with the total matching count.
func (s *Store) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	db, ok := s.reader(ctx, "list orders")
	if !ok {
		return []models.Order{}, 0, nil
	}

	query := db.Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("order_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at desc").Order("id desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	db, ok := s.reader(ctx, "get order")
	if !ok {
		return nil, nil
	}
	return first[models.Order](db, "id = ?", id)
}

func (s *Store) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	db, ok := s.reader(ctx, "get order by number")
	if !ok {
		return nil, nil
	}
	return first[models.Order](db, "order_number = ?", orderNumber)
}

func (s *Store) UpdateOrder(ctx context.Context, id uint, patch Patch) error {
	db, err := s.writer(ctx, "update order")
	if err != nil {
		return err
	}
	return updateByID[models.Order](db, id, patch)
}

func (s *Store) ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	db, ok := s.reader(ctx, "list order items")
	if !ok {
		return []models.OrderItem{}, nil
	}
	var items []models.OrderItem
	err := db.Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	return items, err
}

// PlaceOrder inserts the order, reads it back by its number and inserts one
// row per item referencing it. When couponID is non-zero the coupon's usage
// counter is incremented as well. Everything happens in one transaction, so
// a failure leaves no partial order behind.
func (s *Store) PlaceOrder(ctx context.Context, order *models.Order, items []models.OrderItem, couponID uint) (*models.Order, error) {
	db, err := s.writer(ctx, "place order")
	if err != nil {
		return nil, err
	}

	var created *models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		found, err := first[models.Order](tx, "order_number = ?", order.OrderNumber)
		if err != nil {
			return err
		}
		if found == nil {
			return ErrOrderNotCreated
		}

		for i := range items {
			items[i].OrderID = found.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}

		if couponID != 0 {
			if err := redeemCoupon(tx, couponID); err != nil {
				return err
			}
		}

		found.Items = items
		created = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
