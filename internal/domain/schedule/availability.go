package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Hours is a working-hours window in "HH:MM" form.
type Hours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability is the result of evaluating a staff member for a date.
type Availability struct {
	Available bool   `json:"is_available"`
	Hours     *Hours `json:"working_hours,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityForDate decides whether the staff member works on the
// given date and, if so, within which window.
//
// A staff member without a provisioned schedule is reported as
// available: missing configuration is a provisioning gap, not a
// scheduling conflict, and must never hard-block a booking flow.
func AvailabilityForDate(date time.Time, staff Staff) Availability {
	if staff.Schedule == nil {
		logrus.WithField("staff", staff.Name).
			Warn("staff member has no work schedule, defaulting to available")
		return Availability{
			Available: true,
			Reason:    "no schedule data available (using default availability)",
		}
	}

	if OnLeave(date, staff.Leaves) {
		return Availability{
			Available: false,
			Reason:    "staff member is on leave",
		}
	}

	day := staff.Schedule.Day(date.Weekday())
	if !day.Working {
		weekday := strings.ToLower(date.Weekday().String())
		return Availability{
			Available: false,
			Reason:    fmt.Sprintf("staff member does not work on %ss", weekday),
		}
	}

	return Availability{
		Available: true,
		Hours: &Hours{
			Start: day.Start,
			End:   day.End,
		},
	}
}
