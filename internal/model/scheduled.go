package model

import "time"

// Scheduled identifies the recurrence of a scheduled transaction.
type Scheduled string

const (
	ScheduledDiary       Scheduled = "DIARY"
	ScheduledWeekly      Scheduled = "WEEKLY"
	ScheduledFortnightly Scheduled = "FORTNIGHTLY"
	ScheduledMonthly     Scheduled = "MONTHLY"
	ScheduledQuarter     Scheduled = "QUARTER"
	ScheduledHalfYearly  Scheduled = "HALF_YEARLY"
	ScheduledYearly      Scheduled = "YEARLY"
)

// Valid reports whether s is one of the known recurrence kinds.
func (s Scheduled) Valid() bool {
	switch s {
	case ScheduledDiary, ScheduledWeekly, ScheduledFortnightly,
		ScheduledMonthly, ScheduledQuarter, ScheduledHalfYearly, ScheduledYearly:
		return true
	}
	return false
}

// ScheduledTransaction represents a recurring cashflow entry. Occurrence
// dates are derived from the range and recurrence kind, never stored.
type ScheduledTransaction struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Kind         TransactionKind `json:"kind"`
	Value        float64         `json:"value"`
	Currency     Currency        `json:"currency"`
	ScheduleKind Scheduled       `json:"scheduleKind"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
}
