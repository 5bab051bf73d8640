package services

import (
	"math"
	"time"
)

// Period is a named, relative date range bounding dashboard aggregation.
type Period string

const (
	PeriodThisMonth   Period = "thisMonth"
	PeriodLastMonth   Period = "lastMonth"
	PeriodLast3Months Period = "last3Months"
	PeriodLast6Months Period = "last6Months"
	PeriodThisYear    Period = "thisYear"
)

// Periods lists every period in display order.
var Periods = []Period{
	PeriodThisMonth,
	PeriodLastMonth,
	PeriodLast3Months,
	PeriodLast6Months,
	PeriodThisYear,
}

// ParsePeriod maps a query value to a period. Unknown values select the
// current month, the same fallback the period selector itself starts on.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodLastMonth, PeriodLast3Months, PeriodLast6Months, PeriodThisYear:
		return Period(s)
	default:
		return PeriodThisMonth
	}
}

// Range resolves the period's boundaries relative to now, in now's
// location. Every period except lastMonth is open-ended at the top: the
// end is "now" for labeling, but filtering only enforces the start bound.
func (p Period) Range(now time.Time) (start, end time.Time) {
	end = now
	switch p {
	case PeriodLastMonth:
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		// Day 0 of the current month is the last day of the previous one.
		lastDay := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location())
		end = time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 23, 59, 59, int(999*time.Millisecond), now.Location())
	case PeriodLast3Months:
		start = time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
	case PeriodLast6Months:
		start = time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, now.Location())
	case PeriodThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default: // thisMonth
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	return start, end
}

// dayCount is the divisor for the average-per-day statistic. The
// multi-month periods use the fixed approximations 90 and 180 rather than
// exact elapsed days.
func (p Period) dayCount(now time.Time) int {
	switch p {
	case PeriodThisMonth:
		return now.Day()
	case PeriodLastMonth:
		return time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location()).Day()
	case PeriodLast3Months:
		return 90
	case PeriodLast6Months:
		return 180
	case PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		days := int(math.Ceil(now.Sub(start).Hours() / 24))
		if days < 1 {
			days = 1
		}
		return days
	default:
		return 30
	}
}
