package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qwiken-app/booking-api/internal/audit"
	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/notify"
	"github.com/qwiken-app/booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ShopID  uuid.UUID
	StaffID uuid.UUID

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uuid.UUID

	Date  string // "YYYY-MM-DD"
	Time  string // "HH:MM"
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier *notify.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	notifier *notify.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    auditor,
		notifier: notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (domain.CommitResult, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return domain.CommitResult{State: domain.StateRejectedError}, err
	}

	// Date and time interpreted in the shop's timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return domain.CommitResult{
			State:  domain.StateRejectedError,
			Reason: "invalid date or time",
		}, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return domain.CommitResult{
			State:  domain.StateRejectedError,
			Reason: "selected time is too soon",
		}, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.ShopID, in.ServiceID)
	if err != nil {
		return domain.CommitResult{
			State:  domain.StateRejectedError,
			Reason: "service not found",
		}, httperr.ErrBusiness("service_not_found")
	}

	staff, err := uc.repo.GetStaffMember(ctx, in.ShopID, in.StaffID)
	if err != nil {
		return domain.CommitResult{
			State:  domain.StateRejectedError,
			Reason: "staff member not found",
		}, httperr.ErrBusiness("staff_not_found")
	}

	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.ShopID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return domain.CommitResult{State: domain.StateRejectedError}, err
	}

	result, err := domain.Commit(ctx, uc.repo, domain.CommitInput{
		ShopID:      in.ShopID,
		ServiceID:   service.ID,
		StaffID:     staff.ID,
		CustomerID:  customer.ID,
		Date:        in.Date,
		StartTime:   in.Time,
		DurationMin: service.DurationMin,
		Price:       service.Price,
		Notes:       in.Notes,
	})

	switch result.State {
	case domain.StateConfirmed:
		uc.audit.Dispatch(audit.Event{
			ShopID:   in.ShopID,
			Action:   "booking_created",
			Entity:   "booking",
			EntityID: &result.Booking.ID,
		})

		// Confirmation email is fire-and-forget: a notification
		// failure never unwinds a committed booking.
		if in.CustomerEmail != "" {
			uc.notifier.Dispatch(notify.BookingEmail{
				To:          in.CustomerEmail,
				Customer:    in.CustomerName,
				Shop:        shop.Name,
				ServiceName: service.Name,
				StaffName:   staff.Name,
				Date:        in.Date,
				StartTime:   in.Time,
				EndTime:     result.Booking.EndTime,
			})
		}

	case domain.StateRejectedConflict:
		uc.audit.Dispatch(audit.Event{
			ShopID: in.ShopID,
			Action: "booking_conflict",
			Entity: "booking",
			Metadata: map[string]any{
				"staff_id": in.StaffID,
				"date":     in.Date,
				"time":     in.Time,
			},
		})
	}

	return result, err
}
