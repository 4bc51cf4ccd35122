package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/qwiken-app/booking-api/internal/domain/booking"
	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/httperr"
	"github.com/qwiken-app/booking-api/internal/timezone"
)

// ======================================================
// MONTH CALENDAR
//
// Per-day status for calendar widgets. Advisory only: the slot
// generator remains the authority on whether a specific duration
// actually fits a day.
// ======================================================

type MonthCalendar struct {
	repo      domain.Repository
	threshold float64
}

func NewMonthCalendar(repo domain.Repository, occupancyThreshold float64) *MonthCalendar {
	if occupancyThreshold <= 0 {
		occupancyThreshold = schedule.DefaultOccupancyThreshold
	}
	return &MonthCalendar{repo: repo, threshold: occupancyThreshold}
}

type DayStatusDTO struct {
	Date   string             `json:"date"`
	Status schedule.DayStatus `json:"status"`
}

func (uc *MonthCalendar) Execute(
	ctx context.Context,
	shopID uuid.UUID,
	staffID uuid.UUID,
	year int,
	month int,
) ([]DayStatusDTO, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	staff, err := uc.repo.GetStaffMember(ctx, shopID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)
	last := next.AddDate(0, 0, -1)

	intervalsByDate, err := uc.repo.FetchBookedIntervalsRange(
		ctx,
		staffID,
		first.Format(schedule.DateLayout),
		last.Format(schedule.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	info := staff.ScheduleInfo()
	now := timezone.NowIn(shop.Timezone)

	out := make([]DayStatusDTO, 0, 31)
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(schedule.DateLayout)
		out = append(out, DayStatusDTO{
			Date:   dateStr,
			Status: schedule.ClassifyDate(day, info, intervalsByDate[dateStr], now, uc.threshold),
		})
	}

	return out, nil
}
