package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/models"
)

// ======================================================
// Commit protocol
//
// A selected slot is informational only: no lock is held between slot
// display and commit. The commit attempt walks
//
//	Selecting -> Validating -> Committing ->
//	    {Confirmed | RejectedConflict | RejectedError}
//
// Validating re-fetches the booked intervals and recomputes the local
// overlap, then asks the persistence layer's authoritative check.
// Either one reporting a conflict rejects the attempt; the caller must
// re-select, never silently pick an alternate slot.
// ======================================================

type AttemptState string

const (
	StateSelecting        AttemptState = "selecting"
	StateValidating       AttemptState = "validating"
	StateCommitting       AttemptState = "committing"
	StateConfirmed        AttemptState = "confirmed"
	StateRejectedConflict AttemptState = "rejected_conflict"
	StateRejectedError    AttemptState = "rejected_error"
)

type CommitInput struct {
	ShopID     uuid.UUID
	ServiceID  uuid.UUID
	StaffID    uuid.UUID
	CustomerID uuid.UUID

	Date        string // "YYYY-MM-DD"
	StartTime   string // "HH:MM"
	DurationMin int

	Price float64
	Notes string
}

type CommitResult struct {
	State   AttemptState
	Booking *models.Booking
	Reason  string
}

// Commit turns a user-selected slot into a persisted booking.
//
// Validation conflicts come back as a RejectedConflict result with a
// nil error: they are expected and recoverable. Only transport and
// server failures produce a non-nil error, always paired with
// RejectedError. There is no automatic retry and no compensating
// action once the write has been issued.
func Commit(ctx context.Context, repo Repository, in CommitInput) (CommitResult, error) {
	startMin, err := schedule.TimeToMinutes(in.StartTime)
	if err != nil {
		return CommitResult{State: StateRejectedError, Reason: "invalid start time"}, err
	}
	if in.DurationMin <= 0 {
		return CommitResult{
			State:  StateRejectedError,
			Reason: "invalid service duration",
		}, httperr.ErrBusiness("invalid_duration")
	}

	// Times are persisted and compared as varchar, so both endpoints
	// must be re-rendered in canonical zero-padded form. An unpadded
	// client string like "9:00" would slip past the lexicographic
	// conflict predicates.
	startTime := schedule.MinutesToTime(startMin)
	endTime := schedule.MinutesToTime(startMin + in.DurationMin)

	// ---------------- VALIDATING ----------------

	current, err := repo.FetchBookedIntervals(ctx, in.StaffID, in.Date)
	if err != nil {
		return CommitResult{State: StateRejectedError, Reason: "could not verify availability"}, err
	}

	for _, b := range current {
		bStart, sErr := schedule.TimeToMinutes(b.Start)
		if sErr != nil {
			continue
		}
		bEnd, eErr := schedule.TimeToMinutes(b.End)
		if eErr != nil {
			continue
		}
		if schedule.Overlaps(startMin, startMin+in.DurationMin, bStart, bEnd) {
			return CommitResult{
				State:  StateRejectedConflict,
				Reason: "this time slot is already booked",
			}, nil
		}
	}

	conflict, err := repo.CheckConflict(ctx, in.ShopID, in.StaffID, in.Date, startTime, endTime)
	if err != nil {
		return CommitResult{State: StateRejectedError, Reason: "conflict check failed"}, err
	}
	if conflict {
		return CommitResult{
			State:  StateRejectedConflict,
			Reason: "this time slot is already booked",
		}, nil
	}

	// ---------------- COMMITTING ----------------

	b := &models.Booking{
		ShopID:      in.ShopID,
		ServiceID:   in.ServiceID,
		StaffID:     in.StaffID,
		CustomerID:  in.CustomerID,
		Date:        in.Date,
		StartTime:   startTime,
		EndTime:     endTime,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Status:      string(InitialStatus()),
		Notes:       in.Notes,
		CreatedAt:   time.Now(),
	}

	if err := repo.CreateBooking(ctx, b); err != nil {
		if httperr.IsBusiness(err, "time_conflict") || httperr.IsExclusionConflict(err) {
			// Lost the race between validation and insert.
			return CommitResult{
				State:  StateRejectedConflict,
				Reason: "this time slot was just booked by someone else",
			}, nil
		}
		return CommitResult{State: StateRejectedError, Reason: "could not save booking"}, err
	}

	return CommitResult{State: StateConfirmed, Booking: b}, nil
}
