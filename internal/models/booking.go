package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking stores the date as a plain "YYYY-MM-DD" string and the
// interval as zero-padded "HH:MM" strings, which compare correctly both
// lexicographically and in SQL.
type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	ShopID uuid.UUID `gorm:"type:uuid;index" json:"shop_id"`
	Shop   Shop      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	ServiceID uuid.UUID `gorm:"type:uuid" json:"service_id"`
	Service   Service   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID uuid.UUID   `gorm:"type:uuid;index:idx_bookings_staff_date" json:"staff_id"`
	Staff   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	CustomerID uuid.UUID `gorm:"type:uuid" json:"customer_id"`
	Customer   Customer  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	Date        string `gorm:"size:10;not null;index:idx_bookings_staff_date" json:"booking_date"`
	StartTime   string `gorm:"size:5;not null" json:"start_time"`
	EndTime     string `gorm:"size:5;not null" json:"end_time"`
	DurationMin int    `json:"duration_min"`

	Price  float64 `json:"price"`
	Status string  `gorm:"size:20;default:'pending'" json:"status"`
	Notes  string  `gorm:"size:255" json:"notes"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
