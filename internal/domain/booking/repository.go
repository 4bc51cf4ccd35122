package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Shop, error)

	GetShopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Shop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		shopID uuid.UUID,
		serviceID uuid.UUID,
	) (*models.Service, error)

	// -------- Staff --------
	GetStaffMember(
		ctx context.Context,
		shopID uuid.UUID,
		staffID uuid.UUID,
	) (*models.StaffMember, error)

	ListStaffForShop(
		ctx context.Context,
		shopID uuid.UUID,
	) ([]models.StaffMember, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		shopID uuid.UUID,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Booked intervals / conflict --------

	// FetchBookedIntervals returns the blocking-status intervals for
	// one staff member on one date, ascending by start. Results are
	// transient: new bookings can appear concurrently, so callers must
	// refetch per evaluation and never cache across requests.
	FetchBookedIntervals(
		ctx context.Context,
		staffID uuid.UUID,
		date string,
	) ([]schedule.Interval, error)

	// CheckConflict is the authoritative server-evaluated overlap
	// check. Implementations fail open (false, nil) when the check
	// capability is missing, and say so loudly in the logs.
	CheckConflict(
		ctx context.Context,
		shopID uuid.UUID,
		staffID uuid.UUID,
		date string,
		startTime string,
		endTime string,
	) (bool, error)

	// -------- Booking (create / state change) --------

	// CreateBooking re-runs the conflict predicate under a row lock and
	// inserts in the same transaction. Returns the time_conflict
	// business error when the slot was taken in the meantime.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBookingForShop(
		ctx context.Context,
		bookingID uuid.UUID,
		shopID uuid.UUID,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForDate(
		ctx context.Context,
		shopID uuid.UUID,
		date string,
	) ([]models.Booking, error)

	// FetchBookedIntervalsRange groups blocking intervals by date for a
	// date span, for calendar classification.
	FetchBookedIntervalsRange(
		ctx context.Context,
		staffID uuid.UUID,
		fromDate string,
		toDate string,
	) (map[string][]schedule.Interval, error)
}
