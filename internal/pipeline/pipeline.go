// Package pipeline runs the full analysis: load, bucket into weeks, check
// completeness, aggregate per dimension, compare, and emit reports.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/weekloom-cli/internal/emit"
	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
	"github.com/KaramelBytes/weekloom-cli/internal/report"
	"github.com/KaramelBytes/weekloom-cli/internal/week"
)

// Options configures one pipeline run.
type Options struct {
	InputPath  string
	OutDir     string
	Ingest     ingest.Options
	SheetName  string // XLSX only
	SheetIndex int    // XLSX only, 1-based
	Thresholds emit.Thresholds

	// Now and NewReportID stamp the executive summary; tests pin them for
	// reproducible output. The CSVs never depend on either.
	Now         func() time.Time
	NewReportID func() string
}

// Result summarizes a completed run.
type Result struct {
	Loaded       int
	Rejected     int
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Calendar     *week.Calendar
	Completeness []week.CompletenessReport
	Files        []string
}

// Run executes the pipeline, streaming progress to out. It fails before any
// file is written when the input is structurally unusable: missing columns,
// no valid rows, or fewer than two weeks of data.
func Run(opts Options, out io.Writer) (*Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewReportID == nil {
		opts.NewReportID = uuid.NewString
	}

	fmt.Fprintln(out, "Loading data...")
	loaded, err := load(opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Loaded: len(loaded.Records), Rejected: loaded.Rejected}
	res.PeriodStart, res.PeriodEnd = dateSpan(loaded.Records)
	fmt.Fprintf(out, "Loaded %d rows (%d rejected)\n", res.Loaded, res.Rejected)
	fmt.Fprintf(out, "Date range: %s to %s\n",
		res.PeriodStart.Format("2006-01-02"), res.PeriodEnd.Format("2006-01-02"))

	cal, err := week.Build(loaded.Records)
	if err != nil {
		return nil, err
	}
	res.Calendar = cal
	if len(cal.Weeks) < 2 {
		return nil, fmt.Errorf("need at least 2 weeks of data for comparison, found %d", len(cal.Weeks))
	}
	fmt.Fprintf(out, "Found %d weeks:\n", len(cal.Weeks))
	for _, w := range cal.Weeks {
		fmt.Fprintf(out, "  Week %d: %s to %s\n", w.Index,
			w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
	}

	fmt.Fprintln(out, "Checking for missing dates...")
	res.Completeness = cal.Completeness(loaded.Records)
	for _, rep := range res.Completeness {
		if rep.IsComplete {
			fmt.Fprintf(out, "  Week %d: Complete (all 7 days present)\n", rep.WeekIndex)
			continue
		}
		dates := make([]string, len(rep.MissingDates))
		for i, d := range rep.MissingDates {
			dates[i] = d.Format("2006-01-02")
		}
		fmt.Fprintf(out, "  Week %d: Missing %d date(s) - %s\n",
			rep.WeekIndex, len(rep.MissingDates), strings.Join(dates, ", "))
	}

	emitter := &emit.Emitter{OutDir: opts.OutDir}
	dims := report.Dimensions()
	compsByDim := make([][]report.WeekComparison, len(dims))
	for i, dim := range dims {
		aggs := report.Aggregate(cal, loaded.Records, dim)
		comps := report.Compare(cal, aggs)
		compsByDim[i] = comps
		path, err := emitter.WriteComparisons(dim, comps)
		if err != nil {
			return nil, fmt.Errorf("%s report: %w", dim.Name, err)
		}
		res.Files = append(res.Files, path)
		fmt.Fprintf(out, "✓ Saved: %s\n", path)
	}

	summaryPath, err := emitter.WriteSummary(emit.SummaryData{
		PeriodStart:        res.PeriodStart,
		PeriodEnd:          res.PeriodEnd,
		GeneratedAt:        opts.Now(),
		ReportID:           opts.NewReportID(),
		Weeks:              cal.Weeks,
		Completeness:       res.Completeness,
		Channels:           compsByDim[0],
		SourceMedium:       compsByDim[1],
		LandingPages:       compsByDim[2],
		LandingPageSource:  compsByDim[3],
		LandingPageChannel: compsByDim[4],
		Thresholds:         opts.Thresholds,
	})
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, summaryPath)
	fmt.Fprintf(out, "✓ Saved: %s\n", summaryPath)
	return res, nil
}

func load(opts Options) (*ingest.Result, error) {
	if strings.EqualFold(filepath.Ext(opts.InputPath), ".xlsx") {
		return ingest.LoadXLSX(opts.InputPath, opts.Ingest, opts.SheetName, opts.SheetIndex)
	}
	return ingest.LoadCSV(opts.InputPath, opts.Ingest)
}

func dateSpan(records []ingest.DailyRecord) (min, max time.Time) {
	min, max = records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}
	return min, max
}
