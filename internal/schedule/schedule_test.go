package schedule_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/dmelo/patrimonio-backend/internal/model"
	"github.com/dmelo/patrimonio-backend/internal/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDates_Weekly(t *testing.T) {
	scheduled := schedule.Range{Start: date(2023, time.January, 3), End: date(2023, time.December, 28)}
	filter := schedule.Range{Start: date(2023, time.March, 1), End: date(2023, time.September, 30)}

	dates := schedule.Dates(scheduled, filter, model.ScheduledWeekly)

	if len(dates) == 0 {
		t.Fatal("expected weekly occurrences within the filter window")
	}
	for i, d := range dates {
		if !filter.Contains(d) {
			t.Errorf("date %v outside filter window", d)
		}
		if d.Weekday() != scheduled.Start.Weekday() {
			t.Errorf("date %v has weekday %v; want %v", d, d.Weekday(), scheduled.Start.Weekday())
		}
		if i > 0 {
			if diff := d.Sub(dates[i-1]); diff != 7*24*time.Hour {
				t.Errorf("gap between %v and %v = %v; want 168h", dates[i-1], d, diff)
			}
		}
	}
}

func TestDates_Fortnightly(t *testing.T) {
	scheduled := schedule.Range{Start: date(2023, time.January, 3), End: date(2023, time.March, 31)}
	filter := scheduled

	dates := schedule.Dates(scheduled, filter, model.ScheduledFortnightly)

	for i := 1; i < len(dates); i++ {
		if diff := dates[i].Sub(dates[i-1]); diff != 14*24*time.Hour {
			t.Errorf("gap = %v; want 336h", diff)
		}
	}
	if len(dates) == 0 || !dates[0].Equal(scheduled.Start) {
		t.Errorf("first occurrence = %v; want %v", dates, scheduled.Start)
	}
}

func TestDates_Diary(t *testing.T) {
	scheduled := schedule.Range{Start: date(2023, time.May, 1), End: date(2023, time.May, 10)}
	filter := schedule.Range{Start: date(2023, time.May, 3), End: date(2023, time.May, 5)}

	dates := schedule.Dates(scheduled, filter, model.ScheduledDiary)

	want := []time.Time{date(2023, time.May, 3), date(2023, time.May, 4), date(2023, time.May, 5)}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("Dates() = %v; want %v", dates, want)
	}
}

func TestDates_Monthly(t *testing.T) {
	t.Run("pins the day of month", func(t *testing.T) {
		scheduled := schedule.Range{Start: date(2023, time.January, 15), End: date(2023, time.June, 30)}
		dates := schedule.Dates(scheduled, scheduled, model.ScheduledMonthly)

		if len(dates) != 6 {
			t.Fatalf("expected 6 monthly occurrences, got %d: %v", len(dates), dates)
		}
		for _, d := range dates {
			if d.Day() != 15 {
				t.Errorf("occurrence %v not pinned to day 15", d)
			}
		}
	})

	t.Run("day pin survives DST-offset start times", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		// 23:00 BRT is already the next day in UTC; the pin uses UTC day 16.
		start := time.Date(2023, time.January, 15, 23, 0, 0, 0, loc)
		scheduled := schedule.Range{Start: start, End: date(2023, time.April, 30)}
		dates := schedule.Dates(scheduled, scheduled, model.ScheduledMonthly)

		for _, d := range dates {
			if d.UTC().Day() != 16 {
				t.Errorf("occurrence %v not pinned to UTC day 16", d)
			}
		}
	})
}

func TestDates_QuarterHalfYearly(t *testing.T) {
	scheduled := schedule.Range{Start: date(2023, time.January, 10), End: date(2024, time.December, 31)}

	t.Run("quarterly steps three months", func(t *testing.T) {
		dates := schedule.Dates(scheduled, scheduled, model.ScheduledQuarter)
		if len(dates) != 8 {
			t.Fatalf("expected 8 quarterly occurrences over two years, got %d", len(dates))
		}
		if !dates[1].Equal(date(2023, time.April, 10)) {
			t.Errorf("second occurrence = %v; want 2023-04-10", dates[1])
		}
	})

	t.Run("half-yearly steps six months", func(t *testing.T) {
		dates := schedule.Dates(scheduled, scheduled, model.ScheduledHalfYearly)
		if len(dates) != 4 {
			t.Fatalf("expected 4 half-yearly occurrences, got %d", len(dates))
		}
		if !dates[1].Equal(date(2023, time.July, 10)) {
			t.Errorf("second occurrence = %v; want 2023-07-10", dates[1])
		}
	})
}

func TestDates_Yearly(t *testing.T) {
	scheduled := schedule.Range{Start: date(2020, time.February, 29), End: date(2023, time.December, 31)}
	dates := schedule.Dates(scheduled, scheduled, model.ScheduledYearly)

	if len(dates) != 4 {
		t.Fatalf("expected 4 yearly occurrences, got %d: %v", len(dates), dates)
	}
	// Feb 29 pins normalize to Mar 1 on non-leap years.
	if !dates[1].Equal(date(2021, time.March, 1)) {
		t.Errorf("second occurrence = %v; want 2021-03-01", dates[1])
	}
}

func TestDates_UnrecognizedKind(t *testing.T) {
	scheduled := schedule.Range{Start: date(2023, time.January, 3), End: date(2023, time.December, 28)}

	t.Run("start outside filter yields empty", func(t *testing.T) {
		filter := schedule.Range{Start: date(2023, time.March, 1), End: date(2023, time.September, 30)}
		dates := schedule.Dates(scheduled, filter, model.Scheduled(""))
		if len(dates) != 0 {
			t.Errorf("Dates() = %v; want empty", dates)
		}
	})

	t.Run("start inside filter yields the single start date", func(t *testing.T) {
		filter := schedule.Range{Start: date(2023, time.January, 1), End: date(2023, time.January, 31)}
		dates := schedule.Dates(scheduled, filter, model.Scheduled("SOMEDAY"))
		want := []time.Time{scheduled.Start}
		if !reflect.DeepEqual(dates, want) {
			t.Errorf("Dates() = %v; want %v", dates, want)
		}
	})
}

func TestDates_Deterministic(t *testing.T) {
	scheduled := schedule.Range{Start: date(2023, time.January, 3), End: date(2023, time.June, 30)}
	filter := schedule.Range{Start: date(2023, time.February, 1), End: date(2023, time.May, 31)}

	first := schedule.Dates(scheduled, filter, model.ScheduledWeekly)
	second := schedule.Dates(scheduled, filter, model.ScheduledWeekly)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different date sequences")
	}
	if len(first) > 0 {
		first[0] = date(1999, time.January, 1)
		if reflect.DeepEqual(first, second) {
			t.Error("returned slices share backing storage between calls")
		}
	}
}
