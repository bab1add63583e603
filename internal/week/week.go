// Package week buckets daily records into Monday-start calendar weeks and
// checks each week's date coverage.
package week

import (
	"errors"
	"time"

	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
)

// Week is one Monday..Sunday span in the calendar derived from the data.
// Indices start at 1 for the week containing the earliest record.
type Week struct {
	Index int
	Start time.Time // Monday
	End   time.Time // Sunday
}

// Calendar is the contiguous list of weeks covering every record date. Weeks
// with no data still appear so that comparisons and completeness checks see
// the gap.
type Calendar struct {
	Anchor time.Time // Monday on or before the earliest record date
	Weeks  []Week
}

// Build derives the calendar from the records' date span. The records may be
// in any order. At least one record is required.
func Build(records []ingest.DailyRecord) (*Calendar, error) {
	if len(records) == 0 {
		return nil, errors.New("no records to bucket into weeks")
	}
	minDate, maxDate := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}
	anchor := MondayOf(minDate)
	n := int(MondayOf(maxDate).Sub(anchor).Hours()/24/7) + 1
	cal := &Calendar{Anchor: anchor, Weeks: make([]Week, n)}
	for i := 0; i < n; i++ {
		start := anchor.AddDate(0, 0, 7*i)
		cal.Weeks[i] = Week{Index: i + 1, Start: start, End: start.AddDate(0, 0, 6)}
	}
	return cal, nil
}

// IndexOf returns the 1-based week index for a date. Dates before the anchor
// yield indices <= 0; callers only pass dates inside the built span.
func (c *Calendar) IndexOf(d time.Time) int {
	return int(MondayOf(d).Sub(c.Anchor).Hours()/24/7) + 1
}

// MondayOf returns the Monday on or before t, at midnight UTC.
func MondayOf(t time.Time) time.Time {
	t = Midnight(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return t.AddDate(0, 0, -offset)
}

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
