package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DailyRecord is one day of traffic for one (channel, source/medium, landing page)
// combination. Constructed by Normalize and read-only afterwards.
type DailyRecord struct {
	Date           time.Time
	Channel        string
	SourceMedium   string
	LandingPage    string
	Users          int
	EngagementRate float64
	KeyEvents      int
	KeyEventRate   float64
}

// Columns maps the logical fields to the column names in the export header.
type Columns struct {
	Date           string `mapstructure:"date" yaml:"date"`
	Channel        string `mapstructure:"channel" yaml:"channel"`
	SourceMedium   string `mapstructure:"source_medium" yaml:"source_medium"`
	LandingPage    string `mapstructure:"landing_page" yaml:"landing_page"`
	Users          string `mapstructure:"users" yaml:"users"`
	EngagementRate string `mapstructure:"engagement_rate" yaml:"engagement_rate"`
	KeyEvents      string `mapstructure:"key_events" yaml:"key_events"`
	KeyEventRate   string `mapstructure:"key_event_rate" yaml:"key_event_rate"`
}

// DefaultColumns returns the column names of a standard GA4 export.
func DefaultColumns() Columns {
	return Columns{
		Date:           "Date",
		Channel:        "Session Payscale Custom Channels",
		SourceMedium:   "Session source / medium",
		LandingPage:    "Page path and screen class",
		Users:          "Total users",
		EngagementRate: "Engagement rate",
		KeyEvents:      "Key events",
		KeyEventRate:   "User key event rate",
	}
}

func (c Columns) required() []string {
	return []string{
		c.Date, c.Channel, c.SourceMedium, c.LandingPage,
		c.Users, c.EngagementRate, c.KeyEvents, c.KeyEventRate,
	}
}

// Normalize converts one raw row into a typed DailyRecord. The row is a mapping
// from header name to raw cell value. An unparseable date rejects the row;
// unparseable metrics default to zero and keep the row.
func Normalize(row map[string]string, cols Columns) (DailyRecord, error) {
	date, err := parseDate(row[cols.Date])
	if err != nil {
		return DailyRecord{}, err
	}
	return DailyRecord{
		Date:           date,
		Channel:        strings.TrimSpace(row[cols.Channel]),
		SourceMedium:   strings.TrimSpace(row[cols.SourceMedium]),
		LandingPage:    strings.TrimSpace(row[cols.LandingPage]),
		Users:          parseCount(row[cols.Users]),
		EngagementRate: parseRate(row[cols.EngagementRate]),
		KeyEvents:      parseCount(row[cols.KeyEvents]),
		KeyEventRate:   parseRate(row[cols.KeyEventRate]),
	}, nil
}

// parseDate accepts 8-digit YYYYMMDD values. Numeric spreadsheet cells can
// surface with a fractional suffix ("20240101.0"), which is tolerated.
func parseDate(s string) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			raw = strconv.FormatFloat(f, 'f', 0, 64)
		}
	}
	if len(raw) != 8 {
		return time.Time{}, fmt.Errorf("invalid date %q: want 8-digit YYYYMMDD", s)
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// parseCount reads a non-negative integer metric, tolerating thousands
// separators and decimal renderings of whole numbers. Failures become 0.
func parseCount(s string) int {
	raw := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f + 0.5)
}

// parseRate reads a ratio metric. Percent-formatted values ("12.3%") are
// normalized to their decimal fraction; plain decimals pass through. Failures
// become 0.
func parseRate(s string) float64 {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0
	}
	pct := strings.Contains(raw, "%")
	if pct {
		raw = strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	if pct {
		f /= 100
	}
	return f
}
