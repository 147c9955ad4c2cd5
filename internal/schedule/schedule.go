// Package schedule generates the occurrence dates of recurring transactions.
package schedule

import (
	"time"

	"github.com/dmelo/patrimonio-backend/internal/model"
)

// Range is an inclusive date interval.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls inside the range, boundaries included.
func (r Range) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates produces the occurrence dates of a recurrence defined over scheduled,
// filtered to the dates that fall within filter (inclusive). A fresh slice is
// returned on every call; the generator keeps no state.
//
// Day-of-month and day-of-week are pinned to scheduled.Start using a UTC
// extraction so occurrences do not drift across UTC offset boundaries.
//
// An unrecognized kind degrades to the single scheduled.Start occurrence,
// which is still filtered: a start date outside filter yields an empty
// result, not the start date. Callers must handle the empty slice.
func Dates(scheduled, filter Range, kind model.Scheduled) []time.Time {
	var candidates []time.Time

	switch kind {
	case model.ScheduledDiary:
		candidates = daily(scheduled, 1)
	case model.ScheduledWeekly:
		candidates = daily(scheduled, 7)
	case model.ScheduledFortnightly:
		candidates = daily(scheduled, 14)
	case model.ScheduledMonthly:
		candidates = monthly(scheduled, 1)
	case model.ScheduledQuarter:
		candidates = monthly(scheduled, 3)
	case model.ScheduledHalfYearly:
		candidates = monthly(scheduled, 6)
	case model.ScheduledYearly:
		candidates = monthly(scheduled, 12)
	default:
		candidates = []time.Time{scheduled.Start}
	}

	dates := []time.Time{}
	for _, d := range candidates {
		if filter.Contains(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// daily walks the range in fixed day steps starting at Start, so weekly and
// fortnightly sequences keep Start's weekday.
func daily(scheduled Range, stepDays int) []time.Time {
	dates := []time.Time{}
	for d := scheduled.Start; !d.After(scheduled.End); d = d.AddDate(0, 0, stepDays) {
		dates = append(dates, d)
	}
	return dates
}

// monthly emits one date every stepMonths months with the day-of-month pinned
// to Start's UTC day. Dates are constructed in UTC; time.Date normalizes
// overflowing days (a day 31 pin rolls into the next month on short months),
// matching how the recurrence behaves in the source records.
func monthly(scheduled Range, stepMonths int) []time.Time {
	start := scheduled.Start.UTC()
	day := start.Day()

	dates := []time.Time{}
	for i := 0; ; i += stepMonths {
		d := time.Date(start.Year(), start.Month()+time.Month(i), day,
			start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), time.UTC)
		if d.After(scheduled.End) {
			break
		}
		dates = append(dates, d)
	}
	return dates
}
