// Package report aggregates daily records per week and dimension group and
// computes week-over-week changes.
package report

import (
	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
)

// Dimension is one grouping configuration: how to extract a group key from a
// record, and how the resulting report is labelled on disk.
type Dimension struct {
	Name       string   // human label used in console output and the summary
	FileName   string   // CSV file name in the output directory
	KeyColumns []string // CSV header names for the key parts
	Key        func(r ingest.DailyRecord) []string
}

// Dimensions returns the five standard breakdowns, in report order.
func Dimensions() []Dimension {
	return []Dimension{
		{
			Name:       "Channels",
			FileName:   "channels_week_over_week.csv",
			KeyColumns: []string{"Channel"},
			Key:        func(r ingest.DailyRecord) []string { return []string{r.Channel} },
		},
		{
			Name:       "Source/Medium",
			FileName:   "source_medium_week_over_week.csv",
			KeyColumns: []string{"Source_Medium"},
			Key:        func(r ingest.DailyRecord) []string { return []string{r.SourceMedium} },
		},
		{
			Name:       "Landing Pages",
			FileName:   "landing_pages_week_over_week.csv",
			KeyColumns: []string{"Landing_Page"},
			Key:        func(r ingest.DailyRecord) []string { return []string{r.LandingPage} },
		},
		{
			Name:       "Landing Page + Source/Medium",
			FileName:   "landing_page_source_week_over_week.csv",
			KeyColumns: []string{"Landing_Page", "Source_Medium"},
			Key:        func(r ingest.DailyRecord) []string { return []string{r.LandingPage, r.SourceMedium} },
		},
		{
			Name:       "Landing Page + Channel",
			FileName:   "landing_page_channel_week_over_week.csv",
			KeyColumns: []string{"Landing_Page", "Channel"},
			Key:        func(r ingest.DailyRecord) []string { return []string{r.LandingPage, r.Channel} },
		},
	}
}
