package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/qwiken-app/booking-api/internal/domain/schedule"
)

// StaffMember is a bookable person attached to a shop. WorkSchedule and
// LeaveDates live in JSON columns; WorkSchedule may be null for members
// created before schedule provisioning, which the engine treats as
// fail-open availability.
type StaffMember struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShopID uuid.UUID `gorm:"type:uuid;index" json:"shop_id"`
	Shop   Shop      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"shop"`

	Name        string   `gorm:"size:100;not null" json:"name"`
	Role        string   `gorm:"size:50" json:"role"`
	Specialties []string `gorm:"serializer:json" json:"specialties"`
	AvatarURL   string   `gorm:"size:255" json:"avatar_url"`
	Active      bool     `gorm:"default:true" json:"is_active"`

	WorkSchedule *schedule.WorkSchedule `gorm:"serializer:json" json:"work_schedule"`
	LeaveDates   []schedule.LeaveDate   `gorm:"serializer:json" json:"leave_dates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleInfo converts the stored row into the engine's read-only view.
func (s *StaffMember) ScheduleInfo() schedule.Staff {
	return schedule.Staff{
		ID:       s.ID.String(),
		Name:     s.Name,
		Schedule: s.WorkSchedule,
		Leaves:   s.LeaveDates,
	}
}
