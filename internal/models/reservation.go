package models

import "time"

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

type TableReservation struct {
	BaseModel
	CustomerName    string    `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail   string    `gorm:"size:320" json:"customer_email"`
	CustomerPhone   string    `gorm:"size:20;not null" json:"customer_phone"`
	NumberOfGuests  int       `gorm:"not null" json:"number_of_guests"`
	ReservationDate time.Time `gorm:"not null;index" json:"reservation_date"`
	Notes           string    `gorm:"type:text" json:"notes"`
	Status          string    `gorm:"size:16;default:pending" json:"status"`
}
