package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletenessReportsMissingDates(t *testing.T) {
	// Week 2024-01-08..2024-01-14 with every date present except Jan 10.
	var dates []time.Time
	for d := date(2024, 1, 8); !d.After(date(2024, 1, 14)); d = d.AddDate(0, 0, 1) {
		if d.Equal(date(2024, 1, 10)) {
			continue
		}
		dates = append(dates, d)
	}
	records := recordsOn(dates...)
	cal, err := Build(records)
	require.NoError(t, err)

	reps := cal.Completeness(records)
	require.Len(t, reps, 1)
	assert.False(t, reps[0].IsComplete)
	require.Len(t, reps[0].MissingDates, 1)
	assert.True(t, reps[0].MissingDates[0].Equal(date(2024, 1, 10)))
}

func TestCompletenessFullWeek(t *testing.T) {
	var dates []time.Time
	for d := date(2024, 1, 8); !d.After(date(2024, 1, 14)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	records := recordsOn(dates...)
	cal, err := Build(records)
	require.NoError(t, err)

	reps := cal.Completeness(records)
	require.Len(t, reps, 1)
	assert.True(t, reps[0].IsComplete)
	assert.Empty(t, reps[0].MissingDates)
}

func TestCompletenessEmptyWeekReportsAllSevenDates(t *testing.T) {
	// Records only in weeks 1 and 3; week 2 has no data at all.
	records := recordsOn(date(2024, 1, 1), date(2024, 1, 15))
	cal, err := Build(records)
	require.NoError(t, err)
	require.Len(t, cal.Weeks, 3)

	reps := cal.Completeness(records)
	require.Len(t, reps, 3)
	assert.Len(t, reps[1].MissingDates, 7)
	assert.False(t, reps[1].IsComplete)

	// Missing dates are ascending.
	for i := 1; i < len(reps[1].MissingDates); i++ {
		assert.True(t, reps[1].MissingDates[i-1].Before(reps[1].MissingDates[i]))
	}
}
