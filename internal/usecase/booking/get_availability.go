package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
)

// ======================================================
// GET AVAILABILITY
// ======================================================

type AvailabilityInput struct {
	ShopID    uuid.UUID
	StaffID   uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time
}

type AvailabilityOutput struct {
	Date         string                `json:"date"`
	StaffID      string                `json:"staff_id"`
	Availability schedule.Availability `json:"availability"`
	Slots        []schedule.Slot       `json:"slots"`
}

type GetAvailability struct {
	repo   domain.Repository
	stride int
}

func NewGetAvailability(repo domain.Repository, strideMinutes int) *GetAvailability {
	if strideMinutes <= 0 {
		strideMinutes = schedule.DefaultStrideMinutes
	}
	return &GetAvailability{repo: repo, stride: strideMinutes}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityOutput, error) {

	service, err := uc.repo.GetService(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	staff, err := uc.repo.GetStaffMember(ctx, in.ShopID, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	info := staff.ScheduleInfo()
	availability := schedule.AvailabilityForDate(in.Date, info)

	out := &AvailabilityOutput{
		Date:         in.Date.Format(schedule.DateLayout),
		StaffID:      staff.ID.String(),
		Availability: availability,
	}

	if !availability.Available || availability.Hours == nil {
		return out, nil
	}

	// Booked intervals are refetched on every call: other customers
	// can commit concurrently and a stale list would show phantom
	// availability.
	booked, err := uc.repo.FetchBookedIntervals(
		ctx,
		in.StaffID,
		out.Date,
	)
	if err != nil {
		return nil, err
	}

	out.Slots = schedule.GenerateSlots(in.Date, info, service.DurationMin, booked, uc.stride)
	return out, nil
}
