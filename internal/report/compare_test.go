package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
	"github.com/KaramelBytes/weekloom-cli/internal/week"
)

func twoWeekCalendar(t *testing.T) *week.Calendar {
	t.Helper()
	cal, err := week.Build([]ingest.DailyRecord{
		{Date: date(2024, 1, 1)},
		{Date: date(2024, 1, 8)},
	})
	require.NoError(t, err)
	require.Len(t, cal.Weeks, 2)
	return cal
}

func TestCompareComputesDeltas(t *testing.T) {
	cal := twoWeekCalendar(t)
	aggs := []WeeklyAggregate{
		{WeekIndex: 1, Key: []string{"Organic Search"}, Users: 100, KeyEvents: 10, EngagementRate: 0.50},
		{WeekIndex: 2, Key: []string{"Organic Search"}, Users: 150, KeyEvents: 12, EngagementRate: 0.60},
	}
	comps := Compare(cal, aggs)
	require.Len(t, comps, 1)
	c := comps[0]
	assert.Equal(t, 1, c.PriorWeek)
	assert.Equal(t, 2, c.CurrentWeek)
	assert.False(t, c.New)
	require.NotNil(t, c.UsersChange)
	assert.Equal(t, 50, *c.UsersChange)
	require.NotNil(t, c.UsersPct)
	assert.InDelta(t, 50.0, *c.UsersPct, 1e-9)
	require.NotNil(t, c.KeyEventsChange)
	assert.Equal(t, 2, *c.KeyEventsChange)
	require.NotNil(t, c.KeyEventsPct)
	assert.InDelta(t, 20.0, *c.KeyEventsPct, 1e-9)
	// Engagement change is a plain difference of rates, not a percentage.
	require.NotNil(t, c.EngagementChange)
	assert.InDelta(t, 0.10, *c.EngagementChange, 1e-9)
}

func TestCompareZeroBaselineIsNotApplicable(t *testing.T) {
	cal := twoWeekCalendar(t)
	aggs := []WeeklyAggregate{
		{WeekIndex: 1, Key: []string{"Paid Social"}, Users: 0, KeyEvents: 0},
		{WeekIndex: 2, Key: []string{"Paid Social"}, Users: 50, KeyEvents: 3},
	}
	comps := Compare(cal, aggs)
	require.Len(t, comps, 1)
	c := comps[0]
	assert.False(t, c.New, "a zero baseline is not a missing baseline")
	require.NotNil(t, c.UsersChange)
	assert.Equal(t, 50, *c.UsersChange)
	assert.Nil(t, c.UsersPct, "zero-baseline percentage must be N/A")
	assert.Nil(t, c.KeyEventsPct)
}

func TestCompareFlatGroupHasZeroPct(t *testing.T) {
	cal := twoWeekCalendar(t)
	aggs := []WeeklyAggregate{
		{WeekIndex: 1, Key: []string{"Direct"}, Users: 50},
		{WeekIndex: 2, Key: []string{"Direct"}, Users: 50},
	}
	comps := Compare(cal, aggs)
	require.Len(t, comps, 1)
	require.NotNil(t, comps[0].UsersPct, "nonzero prior must yield a defined pct")
	assert.InDelta(t, 0.0, *comps[0].UsersPct, 1e-9)
}

func TestCompareNewGroup(t *testing.T) {
	cal := twoWeekCalendar(t)
	aggs := []WeeklyAggregate{
		{WeekIndex: 1, Key: []string{"Direct"}, Users: 40},
		{WeekIndex: 2, Key: []string{"Direct"}, Users: 45},
		{WeekIndex: 2, Key: []string{"Email"}, Users: 25, KeyEvents: 2},
	}
	comps := Compare(cal, aggs)
	require.Len(t, comps, 2)

	var email *WeekComparison
	for i := range comps {
		if comps[i].Key[0] == "Email" {
			email = &comps[i]
		}
	}
	require.NotNil(t, email)
	assert.True(t, email.New)
	assert.Nil(t, email.UsersChange)
	assert.Nil(t, email.UsersPct)
	assert.Nil(t, email.KeyEventsChange)
	assert.Nil(t, email.KeyEventsPct)
	assert.Nil(t, email.EngagementChange)
	assert.Equal(t, 25, email.CurrentUsers)
}

func TestCompareDisappearedGroupProducesNothing(t *testing.T) {
	cal := twoWeekCalendar(t)
	aggs := []WeeklyAggregate{
		{WeekIndex: 1, Key: []string{"Referral"}, Users: 30},
		{WeekIndex: 2, Key: []string{"Direct"}, Users: 45},
	}
	comps := Compare(cal, aggs)
	require.Len(t, comps, 1)
	assert.Equal(t, []string{"Direct"}, comps[0].Key)
}

func TestCompareCoversEveryConsecutivePair(t *testing.T) {
	records := []ingest.DailyRecord{
		{Date: date(2024, 1, 1)},
		{Date: date(2024, 1, 22)}, // four weeks, weeks 2 and 3 empty
	}
	cal, err := week.Build(records)
	require.NoError(t, err)
	require.Len(t, cal.Weeks, 4)

	aggs := []WeeklyAggregate{
		{WeekIndex: 1, Key: []string{"Direct"}, Users: 10},
		{WeekIndex: 4, Key: []string{"Direct"}, Users: 20},
	}
	comps := Compare(cal, aggs)
	// Pair 1↔2 and 2↔3 have empty current weeks; pair 3↔4 has an empty
	// prior, so Direct comes back flagged as new.
	require.Len(t, comps, 1)
	assert.Equal(t, 3, comps[0].PriorWeek)
	assert.Equal(t, 4, comps[0].CurrentWeek)
	assert.True(t, comps[0].New)
}

func TestCompareOrderingIsDeterministic(t *testing.T) {
	cal := twoWeekCalendar(t)
	aggs := []WeeklyAggregate{
		{WeekIndex: 2, Key: []string{"Zulu"}, Users: 1},
		{WeekIndex: 2, Key: []string{"Alpha"}, Users: 1},
		{WeekIndex: 2, Key: []string{"Mike"}, Users: 1},
	}
	comps := Compare(cal, aggs)
	require.Len(t, comps, 3)
	assert.Equal(t, "Alpha", comps[0].Key[0])
	assert.Equal(t, "Mike", comps[1].Key[0])
	assert.Equal(t, "Zulu", comps[2].Key[0])
}
