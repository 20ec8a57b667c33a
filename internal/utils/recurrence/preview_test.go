package recurrence_test

import (
	"testing"
	"time"

	"github.com/pennyflow/penny_tracker_app/internal/core/domain"
	"github.com/pennyflow/penny_tracker_app/internal/utils/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpcoming_Daily(t *testing.T) {
	next := date(2024, time.June, 10)
	p := domain.PlannedPayment{
		Frequency:         domain.Recurrent,
		RecurrenceType:    domain.Daily,
		StartDate:         date(2024, time.June, 1),
		NextExecutionDate: &next,
	}

	occurrences, err := recurrence.Upcoming(p, date(2024, time.June, 9), 3)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, date(2024, time.June, 10), occurrences[0])
	assert.Equal(t, date(2024, time.June, 11), occurrences[1])
	assert.Equal(t, date(2024, time.June, 12), occurrences[2])
}

func TestUpcoming_WeeklyHonorsWeekdaySet(t *testing.T) {
	p := domain.PlannedPayment{
		Frequency:      domain.Recurrent,
		RecurrenceType: domain.Weekly,
		WeeklyDays:     []int{1, 5}, // Monday, Friday
		StartDate:      date(2024, time.June, 3),
	}

	occurrences, err := recurrence.Upcoming(p, date(2024, time.June, 3), 4)
	require.NoError(t, err)
	require.Len(t, occurrences, 4)
	for _, occ := range occurrences {
		wd := occ.Weekday()
		assert.True(t, wd == time.Monday || wd == time.Friday, "unexpected weekday %s", wd)
	}
}

func TestUpcoming_MonthlyInterval(t *testing.T) {
	p := domain.PlannedPayment{
		Frequency:       domain.Recurrent,
		RecurrenceType:  domain.Monthly,
		MonthlyInterval: 3,
		StartDate:       date(2024, time.January, 10),
	}

	occurrences, err := recurrence.Upcoming(p, date(2024, time.January, 10), 2)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, date(2024, time.April, 10), occurrences[0])
	assert.Equal(t, date(2024, time.July, 10), occurrences[1])
}

func TestUpcoming_OneTime(t *testing.T) {
	p := domain.PlannedPayment{
		Frequency: domain.OneTime,
		StartDate: date(2024, time.August, 1),
	}

	occurrences, err := recurrence.Upcoming(p, date(2024, time.July, 1), 5)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, date(2024, time.August, 1), occurrences[0])

	// Executed one-time payments have nothing upcoming.
	executed := date(2024, time.August, 1)
	p.LastExecutedAt = &executed
	occurrences, err = recurrence.Upcoming(p, date(2024, time.July, 1), 5)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestUpcoming_InvalidWeekdaySet(t *testing.T) {
	p := domain.PlannedPayment{
		Frequency:      domain.Recurrent,
		RecurrenceType: domain.Weekly,
		WeeklyDays:     []int{9},
		StartDate:      date(2024, time.June, 3),
	}

	_, err := recurrence.Upcoming(p, date(2024, time.June, 3), 3)
	assert.ErrorIs(t, err, recurrence.ErrUnschedulable)
}
