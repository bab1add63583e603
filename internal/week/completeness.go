package week

import (
	"time"

	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
)

// CompletenessReport lists the dates of one week that have no data at all.
type CompletenessReport struct {
	WeekIndex    int
	MissingDates []time.Time // ascending
	IsComplete   bool
}

// Completeness reports, for every week in the calendar, which of its seven
// dates are absent from the records. A week with no records reports all
// seven.
func (c *Calendar) Completeness(records []ingest.DailyRecord) []CompletenessReport {
	present := make(map[time.Time]bool, len(records))
	for _, r := range records {
		present[Midnight(r.Date)] = true
	}
	out := make([]CompletenessReport, 0, len(c.Weeks))
	for _, w := range c.Weeks {
		rep := CompletenessReport{WeekIndex: w.Index}
		for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
			if !present[d] {
				rep.MissingDates = append(rep.MissingDates, d)
			}
		}
		rep.IsComplete = len(rep.MissingDates) == 0
		out = append(out, rep)
	}
	return out
}
