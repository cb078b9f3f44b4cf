package models

import "time"

// BaseModel provides shared columns for all tables.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&MenuItem{},
		&DeliveryZone{},
		&Order{},
		&OrderItem{},
		&Coupon{},
		&Review{},
		&Setting{},
		&TableReservation{},
	}
}
