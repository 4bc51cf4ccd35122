package schedule

import "time"

// DefaultStrideMinutes is the cadence between candidate slot starts.
// The stride is a configuration constant, never derived from the
// service duration.
const DefaultStrideMinutes = 30

// Slot is a candidate bookable interval of exactly the requested
// service duration. Slots are derived per request and never persisted.
// ID is canonically the slot's start time string.
type Slot struct {
	ID        string `json:"id"`
	Start     string `json:"startTime"`
	End       string `json:"endTime"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Overlaps reports whether two half-open "HH:MM" intervals intersect.
// Abutting intervals (a.End == b.Start) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// GenerateSlots enumerates candidate slots for a service of the given
// duration on the given date, in ascending start order. Slots that
// collide with an already-booked interval are emitted with
// Available=false so the caller can render them greyed out.
//
// Degenerate input (non-positive duration or stride, empty or inverted
// working window, unavailable staff) yields an empty sequence, not an
// error.
func GenerateSlots(date time.Time, staff Staff, durationMin int, booked []Interval, strideMin int) []Slot {
	if durationMin <= 0 || strideMin <= 0 {
		return nil
	}

	availability := AvailabilityForDate(date, staff)
	if !availability.Available || availability.Hours == nil {
		return nil
	}

	workStart := minutesOrZero(availability.Hours.Start)
	workEnd := minutesOrZero(availability.Hours.End)
	if workStart >= workEnd {
		return nil
	}

	type bookedSpan struct{ start, end int }
	spans := make([]bookedSpan, 0, len(booked))
	for _, b := range booked {
		spans = append(spans, bookedSpan{
			start: minutesOrZero(b.Start),
			end:   minutesOrZero(b.End),
		})
	}

	var slots []Slot
	for t := workStart; t <= workEnd-durationMin; t += strideMin {
		slotEnd := t + durationMin

		taken := false
		for _, s := range spans {
			if Overlaps(t, slotEnd, s.start, s.end) {
				taken = true
				break
			}
		}

		slot := Slot{
			ID:        MinutesToTime(t),
			Start:     MinutesToTime(t),
			End:       MinutesToTime(slotEnd),
			Available: !taken,
		}
		if taken {
			slot.Reason = "staff member already booked during this time"
		}
		slots = append(slots, slot)
	}

	return slots
}
