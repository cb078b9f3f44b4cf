package models

const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// DefaultDeliveryMinutes is used when an order does not carry an estimate.
const DefaultDeliveryMinutes = 30

// Order holds its own denormalized address and pricing so that later catalog
// changes never alter it.
type Order struct {
	BaseModel
	OrderNumber           string      `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerName          string      `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail         string      `gorm:"size:320" json:"customer_email"`
	CustomerPhone         string      `gorm:"size:20;not null" json:"customer_phone"`
	DeliveryZoneID        uint        `gorm:"not null" json:"delivery_zone_id"`
	AddressAr             string      `gorm:"type:text;not null" json:"address_ar"`
	AddressEn             string      `gorm:"type:text;not null" json:"address_en"`
	Latitude              string      `gorm:"size:50" json:"latitude"`
	Longitude             string      `gorm:"size:50" json:"longitude"`
	Notes                 string      `gorm:"type:text" json:"notes"`
	Subtotal              int64       `gorm:"not null" json:"subtotal"`
	DeliveryFee           int64       `gorm:"not null" json:"delivery_fee"`
	Total                 int64       `gorm:"not null" json:"total"`
	PaymentMethod         string      `gorm:"size:16;default:cash" json:"payment_method"`
	Status                string      `gorm:"size:16;default:pending;index" json:"status"`
	EstimatedDeliveryTime int         `gorm:"default:30" json:"estimated_delivery_time"`
	CouponCode            string      `gorm:"size:50" json:"coupon_code,omitempty"`
	Items                 []OrderItem `gorm:"-" json:"items,omitempty"`
}

// OrderItem is one line of an order. Price is captured at order time.
type OrderItem struct {
	BaseModel
	OrderID    uint   `gorm:"index;not null" json:"order_id"`
	MenuItemID uint   `gorm:"not null" json:"menu_item_id"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Price      int64  `gorm:"not null" json:"price"`
	Notes      string `gorm:"type:text" json:"notes"`
}

// LineTotal returns price times quantity in minor units.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
