package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/weekloom-cli/internal/week"
)

// WeekComparison is the week-over-week delta for one group key across two
// consecutive weeks. Percentage changes are nil when the prior value is zero,
// and every change field is nil when the group did not exist in the prior
// week: a missing baseline is not the same thing as a zero baseline.
type WeekComparison struct {
	PriorWeek   int
	CurrentWeek int
	Key         []string

	PriorUsers   int
	CurrentUsers int
	UsersChange  *int
	UsersPct     *float64

	PriorKeyEvents   int
	CurrentKeyEvents int
	KeyEventsChange  *int
	KeyEventsPct     *float64

	// EngagementChange is a plain difference of rates, never a percentage.
	EngagementChange  *float64
	CurrentEngagement float64

	New bool // group key absent from the prior week
}

// Label renders the comparison pair the way the reports title it.
func (c WeekComparison) Label() string {
	return fmt.Sprintf("Week %d vs Week %d", c.CurrentWeek, c.PriorWeek)
}

// Compare computes comparisons for every pair of consecutive week indices in
// the calendar. Each current-week group yields exactly one comparison; groups
// that disappeared entirely produce none. Output order is deterministic:
// week pair, then group key.
func Compare(cal *week.Calendar, aggs []WeeklyAggregate) []WeekComparison {
	byWeek := make(map[int]map[string]WeeklyAggregate)
	for _, a := range aggs {
		m := byWeek[a.WeekIndex]
		if m == nil {
			m = make(map[string]WeeklyAggregate)
			byWeek[a.WeekIndex] = m
		}
		m[strings.Join(a.Key, keySep)] = a
	}

	var out []WeekComparison
	for _, w := range cal.Weeks {
		if w.Index == 1 {
			continue
		}
		prior := byWeek[w.Index-1]
		current := byWeek[w.Index]

		keys := make([]string, 0, len(current))
		for k := range current {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			cur := current[k]
			c := WeekComparison{
				PriorWeek:         w.Index - 1,
				CurrentWeek:       w.Index,
				Key:               cur.Key,
				CurrentUsers:      cur.Users,
				CurrentKeyEvents:  cur.KeyEvents,
				CurrentEngagement: cur.EngagementRate,
			}
			prev, ok := prior[k]
			if !ok {
				c.New = true
				out = append(out, c)
				continue
			}
			c.PriorUsers = prev.Users
			c.PriorKeyEvents = prev.KeyEvents
			c.UsersChange = intPtr(cur.Users - prev.Users)
			c.KeyEventsChange = intPtr(cur.KeyEvents - prev.KeyEvents)
			if prev.Users > 0 {
				c.UsersPct = floatPtr(float64(cur.Users-prev.Users) / float64(prev.Users) * 100)
			}
			if prev.KeyEvents > 0 {
				c.KeyEventsPct = floatPtr(float64(cur.KeyEvents-prev.KeyEvents) / float64(prev.KeyEvents) * 100)
			}
			c.EngagementChange = floatPtr(cur.EngagementRate - prev.EngagementRate)
			out = append(out, c)
		}
	}
	return out
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
