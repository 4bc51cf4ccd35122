package schedule

import (
	"testing"
	"time"
)

var classifyNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestClassifyDate_Past(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}

	past := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if got := ClassifyDate(past, staff, nil, classifyNow, 0.8); got != DayUnavailable {
		t.Errorf("past date = %s, want %s", got, DayUnavailable)
	}

	// Today itself is not past.
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := ClassifyDate(today, staff, nil, classifyNow, 0.8); got == DayUnavailable {
		t.Error("today must not classify as past")
	}
}

func TestClassifyDate_EmptyDayAvailable(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	if got := ClassifyDate(date, staff, nil, classifyNow, 0.8); got != DayAvailable {
		t.Errorf("empty working day = %s, want %s", got, DayAvailable)
	}
}

func TestClassifyDate_Leave(t *testing.T) {
	staff := Staff{
		ID:       "s1",
		Schedule: weekdaysOnly(),
		Leaves:   []LeaveDate{{Start: "2026-09-02", End: "2026-09-02"}},
	}

	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	if got := ClassifyDate(date, staff, nil, classifyNow, 0.8); got != DayLeave {
		t.Errorf("leave day = %s, want %s", got, DayLeave)
	}
}

func TestClassifyDate_NonWorkingDay(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}

	// 2026-09-05 is a Saturday.
	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	if got := ClassifyDate(date, staff, nil, classifyNow, 0.8); got != DayUnavailable {
		t.Errorf("non-working day = %s, want %s", got, DayUnavailable)
	}
}

func TestClassifyDate_FullyBooked(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// 7 of 8 working hours booked: 87.5% > 80%.
	booked := []Interval{{Start: "09:00", End: "16:00"}}
	if got := ClassifyDate(date, staff, booked, classifyNow, 0.8); got != DayFullyBooked {
		t.Errorf("87.5%% booked = %s, want %s", got, DayFullyBooked)
	}

	// Exactly 75% stays available at the default threshold.
	booked = []Interval{{Start: "09:00", End: "15:00"}}
	if got := ClassifyDate(date, staff, booked, classifyNow, 0.8); got != DayAvailable {
		t.Errorf("75%% booked = %s, want %s", got, DayAvailable)
	}
}

func TestClassifyDate_BookedMinutesClampedToWindow(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// An interval stretching past the window only counts the portion
	// inside 09:00-17:00: here 4 of 8 hours.
	booked := []Interval{{Start: "07:00", End: "13:00"}}
	if got := ClassifyDate(date, staff, booked, classifyNow, 0.8); got != DayAvailable {
		t.Errorf("half-booked day = %s, want %s", got, DayAvailable)
	}
}
