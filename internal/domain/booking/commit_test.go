package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/models"
)

// fakeRepo implements only the methods Commit touches; everything else
// panics so a test can't silently depend on it.
type fakeRepo struct {
	Repository

	intervals    []schedule.Interval
	intervalsErr error

	conflict    bool
	conflictErr error
	checkStart  string
	checkEnd    string

	createErr error
	created   []*models.Booking

	checkCalls int
	fetchCalls int
}

func (f *fakeRepo) FetchBookedIntervals(ctx context.Context, staffID uuid.UUID, date string) ([]schedule.Interval, error) {
	f.fetchCalls++
	return f.intervals, f.intervalsErr
}

func (f *fakeRepo) CheckConflict(ctx context.Context, shopID, staffID uuid.UUID, date, start, end string) (bool, error) {
	f.checkCalls++
	f.checkStart = start
	f.checkEnd = end
	return f.conflict, f.conflictErr
}

func (f *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func commitInput() CommitInput {
	return CommitInput{
		ShopID:      uuid.New(),
		ServiceID:   uuid.New(),
		StaffID:     uuid.New(),
		CustomerID:  uuid.New(),
		Date:        "2026-09-02",
		StartTime:   "10:00",
		DurationMin: 60,
		Price:       45,
	}
}

func TestCommit_Confirmed(t *testing.T) {
	repo := &fakeRepo{}

	res, err := Commit(context.Background(), repo, commitInput())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if res.State != StateConfirmed {
		t.Fatalf("state = %s, want %s", res.State, StateConfirmed)
	}
	if res.Booking == nil {
		t.Fatal("confirmed commit must carry the booking")
	}
	if res.Booking.EndTime != "11:00" {
		t.Errorf("end time = %s, want start + duration = 11:00", res.Booking.EndTime)
	}
	if res.Booking.Status != string(StatusPending) {
		t.Errorf("new booking status = %s, want pending", res.Booking.Status)
	}
	if repo.fetchCalls != 1 || repo.checkCalls != 1 {
		t.Errorf("validation must refetch intervals and run the server check exactly once, got %d/%d", repo.fetchCalls, repo.checkCalls)
	}
}

func TestCommit_UnpaddedStartTimeIsCanonicalized(t *testing.T) {
	repo := &fakeRepo{}

	in := commitInput()
	in.StartTime = "9:00"

	res, err := Commit(context.Background(), repo, in)
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if res.State != StateConfirmed {
		t.Fatalf("state = %s, want %s", res.State, StateConfirmed)
	}

	// The stored strings compare as varchar in the SQL conflict
	// predicates; an unpadded "9:00" sorts after "10:30" and would
	// escape them.
	if res.Booking.StartTime != "09:00" || res.Booking.EndTime != "10:00" {
		t.Errorf("stored interval = %s-%s, want canonical 09:00-10:00",
			res.Booking.StartTime, res.Booking.EndTime)
	}
	if repo.checkStart != "09:00" || repo.checkEnd != "10:00" {
		t.Errorf("server check got %s-%s, want canonical 09:00-10:00",
			repo.checkStart, repo.checkEnd)
	}
}

func TestCommit_LocalConflictSkipsCreate(t *testing.T) {
	repo := &fakeRepo{
		intervals: []schedule.Interval{{Start: "10:30", End: "11:30"}},
	}

	res, err := Commit(context.Background(), repo, commitInput())
	if err != nil {
		t.Fatalf("local conflict is recoverable, got error: %v", err)
	}
	if res.State != StateRejectedConflict {
		t.Fatalf("state = %s, want %s", res.State, StateRejectedConflict)
	}
	if len(repo.created) != 0 {
		t.Fatal("no booking write may be issued after a validation conflict")
	}
}

func TestCommit_AbuttingIntervalIsNotConflict(t *testing.T) {
	repo := &fakeRepo{
		intervals: []schedule.Interval{
			{Start: "09:00", End: "10:00"},
			{Start: "11:00", End: "12:00"},
		},
	}

	res, err := Commit(context.Background(), repo, commitInput())
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if res.State != StateConfirmed {
		t.Fatalf("abutting bookings must not conflict, state = %s", res.State)
	}
}

func TestCommit_ServerConflictSkipsCreate(t *testing.T) {
	repo := &fakeRepo{conflict: true}

	res, err := Commit(context.Background(), repo, commitInput())
	if err != nil {
		t.Fatalf("server conflict is recoverable, got error: %v", err)
	}
	if res.State != StateRejectedConflict {
		t.Fatalf("state = %s, want %s", res.State, StateRejectedConflict)
	}
	if len(repo.created) != 0 {
		t.Fatal("no booking write may be issued after a server-side conflict")
	}
}

func TestCommit_RaceLostAtInsert(t *testing.T) {
	repo := &fakeRepo{createErr: httperr.ErrBusiness("time_conflict")}

	res, err := Commit(context.Background(), repo, commitInput())
	if err != nil {
		t.Fatalf("losing the insert race is recoverable, got error: %v", err)
	}
	if res.State != StateRejectedConflict {
		t.Fatalf("state = %s, want %s", res.State, StateRejectedConflict)
	}
}

func TestCommit_FetchFailureRejectsWithError(t *testing.T) {
	repo := &fakeRepo{intervalsErr: errors.New("connection reset")}

	res, err := Commit(context.Background(), repo, commitInput())
	if err == nil {
		t.Fatal("transport failure must surface an error")
	}
	if res.State != StateRejectedError {
		t.Fatalf("state = %s, want %s", res.State, StateRejectedError)
	}
	if len(repo.created) != 0 {
		t.Fatal("no booking write after a failed validation fetch")
	}
}

func TestCommit_WriteFailureRejectsWithError(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("server unavailable")}

	res, err := Commit(context.Background(), repo, commitInput())
	if err == nil {
		t.Fatal("write failure must surface an error")
	}
	if res.State != StateRejectedError {
		t.Fatalf("state = %s, want %s", res.State, StateRejectedError)
	}
}

func TestCommit_InvalidInput(t *testing.T) {
	repo := &fakeRepo{}

	in := commitInput()
	in.StartTime = "bad"
	if res, err := Commit(context.Background(), repo, in); err == nil || res.State != StateRejectedError {
		t.Error("malformed start time must reject the attempt")
	}

	in = commitInput()
	in.DurationMin = 0
	if res, err := Commit(context.Background(), repo, in); err == nil || res.State != StateRejectedError {
		t.Error("non-positive duration must reject the attempt")
	}

	if len(repo.created) != 0 {
		t.Fatal("invalid input must never reach the write")
	}
}
