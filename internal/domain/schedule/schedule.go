package schedule

import "time"

// DateLayout is the wire format for calendar dates throughout the engine.
const DateLayout = "2006-01-02"

// DaySchedule describes the working window for a single weekday.
// Start and End are "HH:MM" strings; when Working is true, Start < End.
type DaySchedule struct {
	Working bool   `json:"isWorking"`
	Start   string `json:"startTime"`
	End     string `json:"endTime"`
}

// WorkSchedule is a staff member's weekly working-hours descriptor.
// It is an immutable snapshot per evaluation: edits to the stored
// schedule only affect future evaluations.
type WorkSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Day resolves the entry for a weekday. The canonical weekday convention
// for the whole engine is time.Weekday (Sunday = 0); every caller that
// derives a weekday from a date must go through time.Time.Weekday().
func (ws *WorkSchedule) Day(w time.Weekday) DaySchedule {
	switch w {
	case time.Monday:
		return ws.Monday
	case time.Tuesday:
		return ws.Tuesday
	case time.Wednesday:
		return ws.Wednesday
	case time.Thursday:
		return ws.Thursday
	case time.Friday:
		return ws.Friday
	case time.Saturday:
		return ws.Saturday
	default:
		return ws.Sunday
	}
}

// LeaveDate is an inclusive date range during which a staff member is
// unavailable regardless of the weekly schedule. Dates use DateLayout;
// overlapping ranges are tolerated.
type LeaveDate struct {
	Title string `json:"title"`
	Start string `json:"startDate"`
	End   string `json:"endDate"`
	Type  string `json:"type"`
}

// Contains reports whether the given date falls inside the leave range.
// Comparison is date-only; time-of-day is ignored.
func (l LeaveDate) Contains(date time.Time) bool {
	day := date.Format(DateLayout)
	return l.Start <= day && day <= l.End
}

// OnLeave reports whether any of the leave ranges contains the date.
func OnLeave(date time.Time, leaves []LeaveDate) bool {
	for _, l := range leaves {
		if l.Contains(date) {
			return true
		}
	}
	return false
}

// Staff is the scheduling engine's read-only view of a staff member.
// A nil Schedule means the member has not been provisioned with working
// hours yet; evaluation then fails open (see AvailabilityForDate).
type Staff struct {
	ID       string
	Name     string
	Schedule *WorkSchedule
	Leaves   []LeaveDate
}

// Interval is an existing reservation for one staff member on one date,
// in "HH:MM" form. Intervals are half-open: [Start, End).
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
