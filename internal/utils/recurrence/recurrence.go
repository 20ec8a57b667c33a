package recurrence

import (
	"errors"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
)

// weeklyScanBound limits the day-by-day weekly search. A weekday set that
// produces no match within this many days of the base is unsatisfiable.
const weeklyScanBound = 14

// ErrUnschedulable indicates a recurrence configuration that can never
// produce a next occurrence (e.g. an empty or invalid weekday set).
var ErrUnschedulable = errors.New("recurrence configuration is unschedulable")

// ErrUnknownRecurrence indicates an unrecognized recurrence type.
var ErrUnknownRecurrence = errors.New("unknown recurrence type")

// NextExecutionDate computes the next date a planned payment should fire.
// It is a pure function of its inputs: no side effects, no clock reads.
//
// For one-time payments it returns scheduledDate, or nil once the payment has
// executed. For recurrent payments the computation is anchored at
// lastExecutedAt when set, otherwise at startDate minus one day, so that a
// never-executed payment can fire on its start date.
//
// A nil date with a nil error means the payment has no further occurrence.
// ErrUnschedulable and ErrUnknownRecurrence flag configuration problems;
// callers should persist a null next date and surface a warning rather than
// fail the triggering write.
func NextExecutionDate(
	frequency domain.PaymentFrequency,
	recurrenceType domain.RecurrenceType,
	startDate time.Time,
	scheduledDate time.Time,
	weeklyDays []int,
	monthlyInterval int,
	lastExecutedAt *time.Time,
) (*time.Time, error) {
	if frequency == domain.OneTime {
		if lastExecutedAt != nil {
			return nil, nil
		}
		next := scheduledDate
		return &next, nil
	}

	base := startDate.AddDate(0, 0, -1)
	if lastExecutedAt != nil {
		base = *lastExecutedAt
	}

	switch recurrenceType {
	case domain.Daily:
		next := base.AddDate(0, 0, 1)
		return &next, nil

	case domain.Weekly:
		return nextWeekday(base, weeklyDays)

	case domain.Monthly:
		interval := monthlyInterval
		if interval < 1 {
			interval = 1
		}
		next := addMonthsClamped(base, interval)
		return &next, nil

	case domain.Yearly:
		next := addMonthsClamped(base, 12)
		return &next, nil

	default:
		return nil, ErrUnknownRecurrence
	}
}

// nextWeekday scans forward day-by-day from base+1 for the first date whose
// weekday index is in the set, giving up after weeklyScanBound days.
func nextWeekday(base time.Time, weeklyDays []int) (*time.Time, error) {
	if len(weeklyDays) == 0 {
		return nil, ErrUnschedulable
	}

	days := make(map[int]struct{}, len(weeklyDays))
	for _, d := range weeklyDays {
		days[d] = struct{}{}
	}

	candidate := base
	for i := 0; i < weeklyScanBound; i++ {
		candidate = candidate.AddDate(0, 0, 1)
		if _, ok := days[int(candidate.Weekday())]; ok {
			return &candidate, nil
		}
	}
	// The set contains no valid weekday index; with any index 0-6 present the
	// scan would have matched within 7 days.
	return nil, ErrUnschedulable
}

// addMonthsClamped adds calendar months preserving the day of month where
// valid and clamping to the target month's length otherwise, so that e.g.
// Jan 31 + 1 month is Feb 28 (or 29), not Mar 2/3 as time.AddDate would give.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	firstOfTarget = firstOfTarget.AddDate(0, months, 0)

	lastDay := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month())
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
