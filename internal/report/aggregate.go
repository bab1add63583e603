package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
	"github.com/KaramelBytes/weekloom-cli/internal/week"
)

// keySep joins key parts for map lookups. Unit separator keeps composite keys
// unambiguous even when a dimension value contains punctuation.
const keySep = "\x1f"

// WeeklyAggregate is the summed metrics for one group key within one week.
// Rates are user-weighted averages across the group's daily records; when the
// group saw zero users the unweighted mean of the daily rates is used instead.
type WeeklyAggregate struct {
	WeekIndex      int
	Key            []string
	Users          int
	KeyEvents      int
	EngagementRate float64
	KeyEventRate   float64
}

type accumulator struct {
	weekIndex     int
	key           []string
	users         int
	keyEvents     int
	wEngagement   float64 // sum(users_d * engagement_d)
	wKeyEventRate float64
	sumEngagement float64 // plain sums, for the zero-users fallback
	sumKeyEvRate  float64
	days          int
}

// Aggregate groups records by (week index, group key) for one dimension and
// sums/derives the per-group metrics. Groups exist only where at least one
// record contributed; zero-activity combinations are never synthesized.
func Aggregate(cal *week.Calendar, records []ingest.DailyRecord, dim Dimension) []WeeklyAggregate {
	accs := make(map[string]*accumulator)
	for _, r := range records {
		idx := cal.IndexOf(r.Date)
		key := dim.Key(r)
		mk := joinKey(idx, key)
		a := accs[mk]
		if a == nil {
			a = &accumulator{weekIndex: idx, key: key}
			accs[mk] = a
		}
		a.users += r.Users
		a.keyEvents += r.KeyEvents
		a.wEngagement += float64(r.Users) * r.EngagementRate
		a.wKeyEventRate += float64(r.Users) * r.KeyEventRate
		a.sumEngagement += r.EngagementRate
		a.sumKeyEvRate += r.KeyEventRate
		a.days++
	}

	out := make([]WeeklyAggregate, 0, len(accs))
	for _, a := range accs {
		agg := WeeklyAggregate{
			WeekIndex: a.weekIndex,
			Key:       a.key,
			Users:     a.users,
			KeyEvents: a.keyEvents,
		}
		if a.users > 0 {
			agg.EngagementRate = a.wEngagement / float64(a.users)
			agg.KeyEventRate = a.wKeyEventRate / float64(a.users)
		} else if a.days > 0 {
			agg.EngagementRate = a.sumEngagement / float64(a.days)
			agg.KeyEventRate = a.sumKeyEvRate / float64(a.days)
		}
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekIndex != out[j].WeekIndex {
			return out[i].WeekIndex < out[j].WeekIndex
		}
		return lessKey(out[i].Key, out[j].Key)
	})
	return out
}

func joinKey(weekIndex int, key []string) string {
	return strconv.Itoa(weekIndex) + keySep + strings.Join(key, keySep)
}

func lessKey(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// KeyLabel renders a composite key the way the historical reports did.
func KeyLabel(key []string) string {
	return strings.Join(key, " | ")
}
