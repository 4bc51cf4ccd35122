package schedule

import (
	"testing"
	"time"
)

// 2026-09-02 is a Wednesday; weekdaysOnly works 09:00-17:00 then.
var slotDate = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func TestGenerateSlots_FullDay(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}

	slots := GenerateSlots(slotDate, staff, 60, nil, 30)

	// 09:00 through 16:00 inclusive at 30-minute steps.
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots, got %d", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "10:00" {
		t.Errorf("first slot = %s-%s, want 09:00-10:00", slots[0].Start, slots[0].End)
	}
	last := slots[len(slots)-1]
	if last.Start != "16:00" || last.End != "17:00" {
		t.Errorf("last slot = %s-%s, want 16:00-17:00", last.Start, last.End)
	}

	for i, s := range slots {
		if !s.Available {
			t.Errorf("slot %s unexpectedly unavailable", s.Start)
		}
		if s.ID != s.Start {
			t.Errorf("slot ID %q should equal its start %q", s.ID, s.Start)
		}
		if i > 0 && slots[i-1].Start >= s.Start {
			t.Errorf("slots out of order at index %d", i)
		}
	}
}

func TestGenerateSlots_NeverPastWorkEnd(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}

	for _, duration := range []int{15, 45, 60, 90, 120} {
		for _, s := range GenerateSlots(slotDate, staff, duration, nil, 30) {
			end, err := TimeToMinutes(s.End)
			if err != nil {
				t.Fatalf("bad slot end %q: %v", s.End, err)
			}
			if end > 17*60 {
				t.Errorf("duration %d: slot %s ends past 17:00", duration, s.Start)
			}
		}
	}
}

func TestGenerateSlots_ConflictMarking(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}
	booked := []Interval{{Start: "10:00", End: "11:00"}}

	slots := GenerateSlots(slotDate, staff, 60, booked, 30)

	byStart := make(map[string]Slot, len(slots))
	for _, s := range slots {
		byStart[s.Start] = s
	}

	for _, start := range []string{"09:30", "10:00", "10:30"} {
		s, ok := byStart[start]
		if !ok {
			t.Fatalf("missing slot %s", start)
		}
		if s.Available {
			t.Errorf("slot %s overlaps 10:00-11:00 and must be unavailable", start)
		}
		if s.Reason == "" {
			t.Errorf("conflicted slot %s should carry a reason", start)
		}
	}

	// Abutting slots are not conflicts (half-open semantics).
	for _, start := range []string{"09:00", "11:00"} {
		if s := byStart[start]; !s.Available {
			t.Errorf("slot %s abuts the booking and must stay available", start)
		}
	}
}

func TestGenerateSlots_OneMinuteOverlapConflicts(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}
	booked := []Interval{{Start: "09:59", End: "10:01"}}

	slots := GenerateSlots(slotDate, staff, 60, booked, 30)
	for _, s := range slots {
		if s.Start == "09:30" && s.Available {
			t.Error("09:30-10:30 overlaps 09:59-10:01 by a minute and must conflict")
		}
		if s.Start == "09:00" && s.Available {
			t.Error("09:00-10:00 overlaps 09:59-10:01 by a minute and must conflict")
		}
	}
}

func TestGenerateSlots_DegenerateInput(t *testing.T) {
	staff := Staff{ID: "s1", Schedule: weekdaysOnly()}

	if got := GenerateSlots(slotDate, staff, 0, nil, 30); len(got) != 0 {
		t.Errorf("zero duration should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots(slotDate, staff, -30, nil, 30); len(got) != 0 {
		t.Errorf("negative duration should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots(slotDate, staff, 60, nil, 0); len(got) != 0 {
		t.Errorf("zero stride should yield no slots, got %d", len(got))
	}

	inverted := &WorkSchedule{Wednesday: DaySchedule{Working: true, Start: "17:00", End: "09:00"}}
	if got := GenerateSlots(slotDate, Staff{ID: "s1", Schedule: inverted}, 60, nil, 30); len(got) != 0 {
		t.Errorf("inverted window should yield no slots, got %d", len(got))
	}
}

func TestGenerateSlots_UnavailableStaffEmpty(t *testing.T) {
	staff := Staff{
		ID:       "s1",
		Schedule: weekdaysOnly(),
		Leaves:   []LeaveDate{{Start: "2026-09-02", End: "2026-09-02"}},
	}

	if got := GenerateSlots(slotDate, staff, 60, nil, 30); len(got) != 0 {
		t.Errorf("staff on leave should yield no slots, got %d", len(got))
	}
}

func TestGenerateSlots_MissingScheduleEmpty(t *testing.T) {
	// Fail-open availability carries no working window, so slot
	// generation has nothing to enumerate.
	if got := GenerateSlots(slotDate, Staff{ID: "s1"}, 60, nil, 30); len(got) != 0 {
		t.Errorf("unprovisioned staff should yield no slots, got %d", len(got))
	}
}
