package schedule

import "time"

// DayStatus is the coarse per-day classification used for calendar
// rendering. It is advisory only: a day classified as available can
// still yield zero free slots once exact-duration fitting is applied.
type DayStatus string

const (
	DayAvailable   DayStatus = "available"
	DayFullyBooked DayStatus = "fully_booked"
	DayLeave       DayStatus = "leave"
	DayUnavailable DayStatus = "unavailable"
)

// DefaultOccupancyThreshold is the booked-minutes share of the working
// window above which a day is shown as fully booked.
const DefaultOccupancyThreshold = 0.8

// ClassifyDate derives the calendar status of a date for one staff
// member. Past dates are unavailable; leave wins over the weekly
// schedule; occupancy above the threshold renders as fully booked.
func ClassifyDate(date time.Time, staff Staff, booked []Interval, now time.Time, threshold float64) DayStatus {
	if threshold <= 0 {
		threshold = DefaultOccupancyThreshold
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return DayUnavailable
	}

	if OnLeave(date, staff.Leaves) {
		return DayLeave
	}

	availability := AvailabilityForDate(date, staff)
	if !availability.Available || availability.Hours == nil {
		return DayUnavailable
	}

	if len(booked) > 0 {
		workStart := minutesOrZero(availability.Hours.Start)
		workEnd := minutesOrZero(availability.Hours.End)
		workSpan := workEnd - workStart

		if workSpan > 0 {
			bookedMinutes := 0
			for _, b := range booked {
				start := max(minutesOrZero(b.Start), workStart)
				end := min(minutesOrZero(b.End), workEnd)
				if end > start {
					bookedMinutes += end - start
				}
			}

			if float64(bookedMinutes)/float64(workSpan) > threshold {
				return DayFullyBooked
			}
		}
	}

	return DayAvailable
}
