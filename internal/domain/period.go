package domain

import (
	"strings"
	"time"
)

// Period selects a lower bound on created_at for list filters and dashboard
// aggregates.
type Period string

const (
	PeriodLast7Days  Period = "LAST_7_DAYS"
	PeriodLast30Days Period = "LAST_30_DAYS"
	PeriodYear       Period = "YEAR"
	PeriodAll        Period = "ALL"
)

func ParsePeriod(raw string) Period {
	switch Period(strings.ToUpper(strings.TrimSpace(raw))) {
	case PeriodLast7Days:
		return PeriodLast7Days
	case PeriodLast30Days:
		return PeriodLast30Days
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodAll
	}
}

// StartDate returns the lower bound for the period, or nil when no bound
// applies. YEAR means January 1st of the current year.
func (p Period) StartDate(now time.Time) *time.Time {
	var start time.Time
	switch p {
	case PeriodLast7Days:
		start = now.Add(-7 * 24 * time.Hour)
	case PeriodLast30Days:
		start = now.Add(-30 * 24 * time.Hour)
	case PeriodYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &start
}

// Bucket returns the time-series granularity for the period: daily for the
// 30-day window, monthly otherwise.
func (p Period) Bucket() string {
	if p == PeriodLast7Days || p == PeriodLast30Days {
		return "day"
	}
	return "month"
}
