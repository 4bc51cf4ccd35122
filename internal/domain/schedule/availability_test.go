package schedule

import (
	"strings"
	"testing"
	"time"
)

func weekdaysOnly() *WorkSchedule {
	working := DaySchedule{Working: true, Start: "09:00", End: "17:00"}
	return &WorkSchedule{
		Monday:    working,
		Tuesday:   working,
		Wednesday: working,
		Thursday:  working,
		Friday:    working,
		Saturday:  DaySchedule{Working: false},
		Sunday:    DaySchedule{Working: false},
	}
}

func TestAvailabilityForDate_WorkingDay(t *testing.T) {
	staff := Staff{ID: "s1", Name: "Amara", Schedule: weekdaysOnly()}

	// 2026-09-02 is a Wednesday.
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	got := AvailabilityForDate(date, staff)

	if !got.Available {
		t.Fatalf("expected available, got reason %q", got.Reason)
	}
	if got.Hours == nil || got.Hours.Start != "09:00" || got.Hours.End != "17:00" {
		t.Fatalf("unexpected working hours: %+v", got.Hours)
	}
}

func TestAvailabilityForDate_NonWorkingWeekday(t *testing.T) {
	staff := Staff{ID: "s1", Name: "Amara", Schedule: weekdaysOnly()}

	// 2026-09-05 is a Saturday.
	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	got := AvailabilityForDate(date, staff)

	if got.Available {
		t.Fatal("expected unavailable on a non-working weekday")
	}
	if !strings.Contains(got.Reason, "saturday") {
		t.Errorf("reason should name the weekday, got %q", got.Reason)
	}
}

func TestAvailabilityForDate_LeaveOverridesSchedule(t *testing.T) {
	staff := Staff{
		ID:       "s1",
		Name:     "Amara",
		Schedule: weekdaysOnly(),
		Leaves: []LeaveDate{
			{Title: "Annual leave", Start: "2026-09-01", End: "2026-09-03", Type: "vacation"},
		},
	}

	for _, day := range []int{1, 2, 3} {
		date := time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
		got := AvailabilityForDate(date, staff)
		if got.Available {
			t.Errorf("expected leave on 2026-09-%02d", day)
		}
	}

	// Day after the inclusive range ends.
	after := AvailabilityForDate(time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), staff)
	if !after.Available {
		t.Errorf("expected available after leave ends, got %q", after.Reason)
	}
}

func TestAvailabilityForDate_OverlappingLeavesTolerated(t *testing.T) {
	staff := Staff{
		ID:       "s1",
		Schedule: weekdaysOnly(),
		Leaves: []LeaveDate{
			{Start: "2026-09-01", End: "2026-09-10"},
			{Start: "2026-09-05", End: "2026-09-07"},
		},
	}

	got := AvailabilityForDate(time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), staff)
	if got.Available {
		t.Fatal("expected leave when any range contains the date")
	}
}

func TestAvailabilityForDate_MissingScheduleFailsOpen(t *testing.T) {
	staff := Staff{ID: "s1", Name: "Unprovisioned"}

	got := AvailabilityForDate(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), staff)
	if !got.Available {
		t.Fatal("missing schedule must fail open, not block the booking flow")
	}
	if got.Hours != nil {
		t.Errorf("fail-open availability should carry no working hours, got %+v", got.Hours)
	}
	if got.Reason == "" {
		t.Error("fail-open availability should carry a diagnostic reason")
	}
}
