package models

import "time"

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a discount code. DiscountValue is a percentage (0-100) or a fixed
// amount in minor units depending on DiscountType.
type Coupon struct {
	BaseModel
	Code           string     `gorm:"size:50;uniqueIndex;not null" json:"code"`
	DescriptionAr  string     `gorm:"type:text" json:"description_ar"`
	DescriptionEn  string     `gorm:"type:text" json:"description_en"`
	DescriptionFr  string     `gorm:"type:text" json:"description_fr"`
	DiscountType   string     `gorm:"size:16;not null" json:"discount_type"`
	DiscountValue  int64      `gorm:"not null" json:"discount_value"`
	MinOrderAmount int64      `gorm:"default:0" json:"min_order_amount"`
	MaxUsage       *int       `json:"max_usage"`
	UsageCount     int        `gorm:"default:0" json:"usage_count"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// Discount returns the amount taken off subtotal, never more than subtotal.
func (c *Coupon) Discount(subtotal int64) int64 {
	var off int64
	switch c.DiscountType {
	case DiscountPercentage:
		off = subtotal * c.DiscountValue / 100
	case DiscountFixed:
		off = c.DiscountValue
	}
	if off > subtotal {
		off = subtotal
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Review is a customer rating of an order. Several reviews may share an order.
type Review struct {
	BaseModel
	OrderID   uint   `gorm:"index;not null" json:"order_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	CommentAr string `gorm:"type:text" json:"comment_ar"`
	CommentEn string `gorm:"type:text" json:"comment_en"`
	CommentFr string `gorm:"type:text" json:"comment_fr"`
}

// Setting is a key-value pair of site content.
type Setting struct {
	BaseModel
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}
