package recurrence

import (
	"fmt"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/teambition/rrule-go"
)

// weekday indices 0-6 (0 = Sunday) to RFC 5545 weekdays.
var rruleWeekdays = map[int]rrule.Weekday{
	0: rrule.SU,
	1: rrule.MO,
	2: rrule.TU,
	3: rrule.WE,
	4: rrule.TH,
	5: rrule.FR,
	6: rrule.SA,
}

// Upcoming projects the next count occurrences of a planned payment strictly
// after the given time. It is a read-only preview for dashboards and does not
// participate in next-execution-date persistence; the stored
// NextExecutionDate remains the single source of truth for firing.
func Upcoming(p domain.PlannedPayment, after time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, nil
	}

	if p.Frequency == domain.OneTime {
		if p.LastExecutedAt != nil || !p.StartDate.After(after) {
			return nil, nil
		}
		return []time.Time{p.StartDate}, nil
	}

	opt, err := rruleOption(p)
	if err != nil {
		return nil, err
	}
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	iterator := rule.Iterator()
	var results []time.Time
	for {
		next, ok := iterator()
		if !ok {
			break
		}
		if next.After(after) {
			results = append(results, next)
			if len(results) >= count {
				break
			}
		}
	}
	return results, nil
}

func rruleOption(p domain.PlannedPayment) (*rrule.ROption, error) {
	dtstart := p.StartDate
	if p.NextExecutionDate != nil {
		dtstart = *p.NextExecutionDate
	}

	opt := rrule.ROption{Dtstart: dtstart}
	switch p.RecurrenceType {
	case domain.Daily:
		opt.Freq = rrule.DAILY
	case domain.Weekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range p.WeeklyDays {
			wd, ok := rruleWeekdays[d]
			if !ok {
				return nil, ErrUnschedulable
			}
			opt.Byweekday = append(opt.Byweekday, wd)
		}
		if len(opt.Byweekday) == 0 {
			return nil, ErrUnschedulable
		}
	case domain.Monthly:
		opt.Freq = rrule.MONTHLY
		if p.MonthlyInterval > 1 {
			opt.Interval = p.MonthlyInterval
		}
	case domain.Yearly:
		opt.Freq = rrule.YEARLY
	default:
		return nil, ErrUnknownRecurrence
	}
	return &opt, nil
}
