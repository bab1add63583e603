package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recordsOn(dates ...time.Time) []ingest.DailyRecord {
	out := make([]ingest.DailyRecord, len(dates))
	for i, d := range dates {
		out[i] = ingest.DailyRecord{Date: d, Users: 1}
	}
	return out
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{name: "monday maps to itself", input: date(2024, 1, 8), want: date(2024, 1, 8)},
		{name: "wednesday", input: date(2024, 1, 10), want: date(2024, 1, 8)},
		{name: "sunday maps back six days", input: date(2024, 1, 14), want: date(2024, 1, 8)},
		{name: "across month boundary", input: date(2024, 2, 1), want: date(2024, 1, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, MondayOf(tt.input).Equal(tt.want))
		})
	}
}

func TestBuildAnchorsOnMinimumDate(t *testing.T) {
	// Wednesday Jan 3 is the earliest record; its week starts Monday Jan 1.
	cal, err := Build(recordsOn(date(2024, 1, 5), date(2024, 1, 3)))
	require.NoError(t, err)
	assert.True(t, cal.Anchor.Equal(date(2024, 1, 1)))
	require.Len(t, cal.Weeks, 1)
	assert.True(t, cal.Weeks[0].Start.Equal(date(2024, 1, 1)))
	assert.True(t, cal.Weeks[0].End.Equal(date(2024, 1, 7)))
}

func TestBuildFillsGapWeeks(t *testing.T) {
	// Data in week 1 and week 4 only; weeks 2 and 3 still exist.
	cal, err := Build(recordsOn(date(2024, 1, 1), date(2024, 1, 22)))
	require.NoError(t, err)
	require.Len(t, cal.Weeks, 4)
	for i, w := range cal.Weeks {
		assert.Equal(t, i+1, w.Index)
		assert.True(t, w.Start.Equal(cal.Anchor.AddDate(0, 0, 7*i)))
		assert.True(t, w.End.Equal(w.Start.AddDate(0, 0, 6)))
	}
}

func TestBuildRequiresRecords(t *testing.T) {
	_, err := Build(nil)
	assert.Error(t, err)
}

func TestIndexOfIsMonotoneAndPartitions(t *testing.T) {
	cal, err := Build(recordsOn(date(2024, 1, 1), date(2024, 2, 11)))
	require.NoError(t, err)

	prevIdx := 0
	for d := date(2024, 1, 1); !d.After(date(2024, 2, 11)); d = d.AddDate(0, 0, 1) {
		idx := cal.IndexOf(d)
		assert.GreaterOrEqual(t, idx, prevIdx, "index must not decrease at %v", d)
		prevIdx = idx

		// The date must fall inside exactly its own week's range.
		w := cal.Weeks[idx-1]
		assert.False(t, d.Before(w.Start), "%v before start of week %d", d, idx)
		assert.False(t, d.After(w.End), "%v after end of week %d", d, idx)
	}

	// Contiguous 7-day blocks with no overlap.
	for i := 1; i < len(cal.Weeks); i++ {
		assert.True(t, cal.Weeks[i].Start.Equal(cal.Weeks[i-1].End.AddDate(0, 0, 1)))
	}
}
