package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/qwiken-app/booking-api/internal/audit"
	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/models"
	"github.com/qwiken-app/booking-api/internal/timezone"
)

// ======================================================
// UPDATE STATUS (provider queue)
// ======================================================

type UpdateBookingStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:  repo,
		audit: auditor,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	userID uuid.UUID,
	bookingID uuid.UUID,
	newStatus domain.Status,
	note string,
) (*models.Booking, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.SetStatus(b, newStatus, now); err != nil {
		return nil, err
	}
	if note != "" {
		b.Notes = note
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "booking_status_changed",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": string(newStatus)},
	})

	return b, nil
}
