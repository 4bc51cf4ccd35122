package booking

import (
	"time"

	"github.com/qwiken-app/booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCancelled); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCompleted); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// SetStatus applies an arbitrary queue transition, stamping the
// terminal timestamps where they apply.
func SetStatus(b *models.Booking, to Status, now time.Time) error {
	if to == StatusCancelled {
		return Cancel(b, now)
	}
	if to == StatusCompleted {
		return Complete(b, now)
	}

	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}
	b.Status = string(to)
	return nil
}
