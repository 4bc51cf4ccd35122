package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/models"
)

// stubRepo implements only what GetAvailability touches.
type stubRepo struct {
	domain.Repository

	service *models.Service
	staff   *models.StaffMember
	booked  []schedule.Interval

	fetchCalls int
}

func (s *stubRepo) GetService(ctx context.Context, shopID, serviceID uuid.UUID) (*models.Service, error) {
	if s.service == nil {
		return nil, httperr.ErrBusiness("not_found")
	}
	return s.service, nil
}

func (s *stubRepo) GetStaffMember(ctx context.Context, shopID, staffID uuid.UUID) (*models.StaffMember, error) {
	if s.staff == nil {
		return nil, httperr.ErrBusiness("not_found")
	}
	return s.staff, nil
}

func (s *stubRepo) FetchBookedIntervals(ctx context.Context, staffID uuid.UUID, date string) ([]schedule.Interval, error) {
	s.fetchCalls++
	return s.booked, nil
}

func weekdayNineToFive() *schedule.WorkSchedule {
	day := schedule.DaySchedule{Working: true, Start: "09:00", End: "17:00"}
	return &schedule.WorkSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
	}
}

func availabilityFixture() (*stubRepo, AvailabilityInput) {
	repo := &stubRepo{
		service: &models.Service{ID: uuid.New(), DurationMin: 60},
		staff: &models.StaffMember{
			ID:           uuid.New(),
			Name:         "Aroha",
			WorkSchedule: weekdayNineToFive(),
		},
	}

	in := AvailabilityInput{
		ShopID:    uuid.New(),
		StaffID:   repo.staff.ID,
		ServiceID: repo.service.ID,
		// A Wednesday.
		Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}

	return repo, in
}

func TestGetAvailability_WorkingDay(t *testing.T) {
	repo, in := availabilityFixture()

	uc := NewGetAvailability(repo, 30)
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !out.Availability.Available {
		t.Fatalf("expected available day, got reason %q", out.Availability.Reason)
	}
	if len(out.Slots) != 15 {
		t.Fatalf("09:00-17:00, 60 min service, 30 min stride: want 15 slots, got %d", len(out.Slots))
	}
	if repo.fetchCalls != 1 {
		t.Errorf("booked intervals must be fetched exactly once, got %d", repo.fetchCalls)
	}
}

func TestGetAvailability_BookedSlotsMarked(t *testing.T) {
	repo, in := availabilityFixture()
	repo.booked = []schedule.Interval{{Start: "10:00", End: "11:00"}}

	uc := NewGetAvailability(repo, 30)
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	byStart := make(map[string]schedule.Slot, len(out.Slots))
	for _, s := range out.Slots {
		byStart[s.Start] = s
	}

	for _, start := range []string{"09:30", "10:00", "10:30"} {
		if byStart[start].Available {
			t.Errorf("slot %s overlaps the booking and must be unavailable", start)
		}
	}
	for _, start := range []string{"09:00", "11:00"} {
		if !byStart[start].Available {
			t.Errorf("slot %s abuts the booking and must stay available", start)
		}
	}
}

func TestGetAvailability_NonWorkingDayShortCircuits(t *testing.T) {
	repo, in := availabilityFixture()
	// A Saturday.
	in.Date = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	uc := NewGetAvailability(repo, 30)
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if out.Availability.Available {
		t.Fatal("Saturday is outside the schedule")
	}
	if len(out.Slots) != 0 {
		t.Fatalf("no slots on a non-working day, got %d", len(out.Slots))
	}
	if repo.fetchCalls != 0 {
		t.Error("an unavailable day must not hit the booked-intervals query")
	}
}

func TestGetAvailability_UnprovisionedScheduleFailsOpen(t *testing.T) {
	repo, in := availabilityFixture()
	repo.staff.WorkSchedule = nil

	uc := NewGetAvailability(repo, 30)
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if !out.Availability.Available {
		t.Fatal("missing schedule must fail open as available")
	}
	if len(out.Slots) != 0 {
		t.Fatal("without working hours there is no window to cut slots from")
	}
}

func TestGetAvailability_UnknownService(t *testing.T) {
	repo, in := availabilityFixture()
	repo.service = nil

	uc := NewGetAvailability(repo, 30)
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("want service_not_found, got %v", err)
	}
}
