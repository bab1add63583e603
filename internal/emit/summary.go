package emit

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/weekloom-cli/internal/report"
	"github.com/KaramelBytes/weekloom-cli/internal/utils"
	"github.com/KaramelBytes/weekloom-cli/internal/week"
)

const summaryFileName = "executive_summary.md"

// Thresholds filters noise out of the executive summary. Groups below the
// user floors still appear in the CSVs, just not in the narrative.
type Thresholds struct {
	MinUsersSourceMedium int
	MinUsersLandingPage  int
	TopChannelMovers     int
	TopTableRows         int
}

// DefaultThresholds matches the historical analyst-facing report.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinUsersSourceMedium: 100,
		MinUsersLandingPage:  50,
		TopChannelMovers:     3,
		TopTableRows:         5,
	}
}

// SummaryData is everything the executive summary needs, already computed.
type SummaryData struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	GeneratedAt time.Time
	ReportID    string

	Weeks        []week.Week
	Completeness []week.CompletenessReport

	Channels           []report.WeekComparison
	SourceMedium       []report.WeekComparison
	LandingPages       []report.WeekComparison
	LandingPageSource  []report.WeekComparison
	LandingPageChannel []report.WeekComparison

	Thresholds Thresholds
}

// WriteSummary renders the executive summary and writes it atomically.
func (e *Emitter) WriteSummary(d SummaryData) (string, error) {
	if err := utils.EnsureDir(e.OutDir); err != nil {
		return "", fmt.Errorf("ensure output dir: %w", err)
	}
	path := filepath.Join(e.OutDir, summaryFileName)
	if err := utils.SafeWriteFile(path, []byte(BuildSummary(d))); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// BuildSummary renders the Markdown executive summary.
func BuildSummary(d SummaryData) string {
	var b strings.Builder
	b.WriteString("# Week-over-Week Executive Summary\n")
	b.WriteString(fmt.Sprintf("\n**Analysis Period:** %s - %s\n",
		d.PeriodStart.Format("January 2, 2006"), d.PeriodEnd.Format("January 2, 2006")))
	b.WriteString(fmt.Sprintf("\n**Report Generated:** %s\n", d.GeneratedAt.Format("2006-01-02 15:04:05")))
	if d.ReportID != "" {
		b.WriteString(fmt.Sprintf("\n**Report ID:** %s\n", d.ReportID))
	}

	incomplete := incompleteWeeks(d.Completeness)
	if len(incomplete) > 0 {
		b.WriteString("\n⚠️ **Data Completeness Notice:**\n\n")
		for _, w := range d.Weeks {
			rep, ok := incomplete[w.Index]
			if !ok {
				continue
			}
			dates := make([]string, len(rep.MissingDates))
			for i, md := range rep.MissingDates {
				dates[i] = md.Format("Jan 2")
			}
			b.WriteString(fmt.Sprintf("- **Week %d** (%s - %s): Missing data for %d day(s) - %s\n",
				w.Index, w.Start.Format("Jan 2"), w.End.Format("Jan 2"),
				len(rep.MissingDates), strings.Join(dates, ", ")))
		}
		b.WriteString("\n*Note: Comparisons involving incomplete weeks should be interpreted with caution.*\n")
	}

	b.WriteString("\n---\n\n## Overall Performance\n")
	for _, w := range d.Weeks {
		if w.Index == 1 {
			continue
		}
		prior := d.Weeks[w.Index-2]
		b.WriteString(fmt.Sprintf("\n### Week %d vs Week %d\n", w.Index, prior.Index))
		b.WriteString(fmt.Sprintf("\n**Period:** %s - %s vs %s - %s\n",
			w.Start.Format("Jan 2"), w.End.Format("Jan 2"),
			prior.Start.Format("Jan 2"), prior.End.Format("Jan 2")))
		_, priorIncomplete := incomplete[prior.Index]
		_, currentIncomplete := incomplete[w.Index]
		if priorIncomplete || currentIncomplete {
			b.WriteString("\n⚠️ *This comparison includes incomplete week(s) - see Data Completeness Notice above.*\n")
		}

		writeChannelMovers(&b, pairOf(d.Channels, w.Index), d.Thresholds.TopChannelMovers)
		writeTopTable(&b, "Top Source/Medium Changes", "Biggest Traffic Increases",
			pairOf(d.SourceMedium, w.Index), d.Thresholds.MinUsersSourceMedium, d.Thresholds.TopTableRows, plainKey)
		writeTopTable(&b, "Top Landing Page Changes", "Highest Traffic Growth Pages",
			pairOf(d.LandingPages, w.Index), d.Thresholds.MinUsersLandingPage, d.Thresholds.TopTableRows, codeKey)
		writeTopTable(&b, "Top Landing Page + Source/Medium Combinations", "Highest Growth Combinations",
			pairOf(d.LandingPageSource, w.Index), d.Thresholds.MinUsersLandingPage, d.Thresholds.TopTableRows, comboKey)
		writeTopTable(&b, "Top Landing Page + Channel Combinations", "Highest Growth Channel Combinations",
			pairOf(d.LandingPageChannel, w.Index), d.Thresholds.MinUsersLandingPage, d.Thresholds.TopTableRows, comboKey)
		b.WriteString("\n---\n")
	}

	writeKeyInsights(&b, d)
	return b.String()
}

func incompleteWeeks(reps []week.CompletenessReport) map[int]week.CompletenessReport {
	out := make(map[int]week.CompletenessReport)
	for _, r := range reps {
		if !r.IsComplete {
			out[r.WeekIndex] = r
		}
	}
	return out
}

// pairOf filters comparisons belonging to one current-week index.
func pairOf(comps []report.WeekComparison, currentWeek int) []report.WeekComparison {
	var out []report.WeekComparison
	for _, c := range comps {
		if c.CurrentWeek == currentWeek {
			out = append(out, c)
		}
	}
	return out
}

// movers returns up to n comparisons with a defined users change, largest
// first when desc, smallest first otherwise. Ties break on the key label so
// output stays deterministic.
func movers(comps []report.WeekComparison, n int, desc bool) []report.WeekComparison {
	var known []report.WeekComparison
	for _, c := range comps {
		if c.UsersChange != nil {
			known = append(known, c)
		}
	}
	sort.Slice(known, func(i, j int) bool {
		a, b := *known[i].UsersChange, *known[j].UsersChange
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		return report.KeyLabel(known[i].Key) < report.KeyLabel(known[j].Key)
	})
	if len(known) > n {
		known = known[:n]
	}
	return known
}

func writeChannelMovers(b *strings.Builder, comps []report.WeekComparison, n int) {
	if len(comps) == 0 {
		return
	}
	b.WriteString("\n#### Top Channel Changes\n")
	b.WriteString("\n**Biggest User Increases:**\n")
	for _, c := range movers(comps, n, true) {
		b.WriteString(fmt.Sprintf("- **%s**: %s users (%s)\n",
			report.KeyLabel(c.Key), FormatSignedCount(*c.UsersChange), FormatSignedPct(c.UsersPct)))
	}
	newer := newGroups(comps)
	if len(newer) > 0 {
		b.WriteString("\n**New This Week:**\n")
		for _, c := range newer {
			b.WriteString(fmt.Sprintf("- **%s**: %d users (no prior-week baseline)\n",
				report.KeyLabel(c.Key), c.CurrentUsers))
		}
	}
	b.WriteString("\n**Biggest User Decreases:**\n")
	for _, c := range movers(comps, n, false) {
		b.WriteString(fmt.Sprintf("- **%s**: %s users (%s)\n",
			report.KeyLabel(c.Key), FormatSignedCount(*c.UsersChange), FormatSignedPct(c.UsersPct)))
	}
}

func newGroups(comps []report.WeekComparison) []report.WeekComparison {
	var out []report.WeekComparison
	for _, c := range comps {
		if c.New {
			out = append(out, c)
		}
	}
	return out
}

type keyRenderer func(key []string) string

func plainKey(key []string) string { return "**" + report.KeyLabel(key) + "**" }
func codeKey(key []string) string  { return "`" + report.KeyLabel(key) + "`" }

// comboKey renders (landing page, secondary dimension) pairs as
// "**secondary** → `page`", the way the analyst report reads.
func comboKey(key []string) string {
	if len(key) == 2 {
		return fmt.Sprintf("**%s** → `%s`", key[1], key[0])
	}
	return plainKey(key)
}

func writeTopTable(b *strings.Builder, heading, subheading string, comps []report.WeekComparison, minUsers, n int, render keyRenderer) {
	var significant []report.WeekComparison
	for _, c := range comps {
		if c.CurrentUsers > minUsers {
			significant = append(significant, c)
		}
	}
	top := movers(significant, n, true)
	if len(top) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n#### %s\n", heading))
	b.WriteString(fmt.Sprintf("\n**%s:**\n", subheading))
	for _, c := range top {
		b.WriteString(fmt.Sprintf("- %s: %s users (%s) | %d key events\n",
			render(c.Key), FormatSignedCount(*c.UsersChange), FormatSignedPct(c.UsersPct), c.CurrentKeyEvents))
	}
}

func writeKeyInsights(b *strings.Builder, d SummaryData) {
	b.WriteString("\n## Key Insights\n")

	b.WriteString("\n### Traffic Trends\n")
	totals := map[string]*channelTotal{}
	var order []string
	for _, c := range d.Channels {
		if c.UsersChange == nil {
			continue
		}
		key := report.KeyLabel(c.Key)
		t := totals[key]
		if t == nil {
			t = &channelTotal{name: key}
			totals[key] = t
			order = append(order, key)
		}
		t.users += *c.UsersChange
		if c.KeyEventsChange != nil {
			t.keyEvents += *c.KeyEventsChange
		}
	}
	sort.Slice(order, func(i, j int) bool {
		a, bb := totals[order[i]], totals[order[j]]
		if a.users != bb.users {
			return a.users > bb.users
		}
		return a.name < bb.name
	})
	if len(order) > 0 {
		b.WriteString("\n**Strongest Performing Channels (Overall):**\n")
		for i, k := range order {
			if i >= d.Thresholds.TopChannelMovers {
				break
			}
			t := totals[k]
			b.WriteString(fmt.Sprintf("- %s: %s users, %s key events\n",
				t.name, FormatSignedCount(t.users), FormatSignedCount(t.keyEvents)))
		}
	}

	b.WriteString("\n### Engagement Patterns\n")
	engaged := filterComps(d.SourceMedium, func(c report.WeekComparison) bool {
		return c.CurrentUsers > d.Thresholds.MinUsersSourceMedium && c.EngagementChange != nil
	})
	sort.Slice(engaged, func(i, j int) bool {
		a, bb := *engaged[i].EngagementChange, *engaged[j].EngagementChange
		if a != bb {
			return a > bb
		}
		return report.KeyLabel(engaged[i].Key) < report.KeyLabel(engaged[j].Key)
	})
	if len(engaged) > 0 {
		b.WriteString("\n**Biggest Engagement Rate Improvements:**\n")
		for i, c := range engaged {
			if i >= d.Thresholds.TopChannelMovers {
				break
			}
			b.WriteString(fmt.Sprintf("- %s: %+.2f%% change in engagement\n",
				report.KeyLabel(c.Key), *c.EngagementChange*100))
		}
	}

	b.WriteString("\n### Conversion Highlights\n")
	converting := filterComps(d.SourceMedium, func(c report.WeekComparison) bool {
		return c.CurrentKeyEvents > 10 && c.KeyEventsChange != nil
	})
	sort.Slice(converting, func(i, j int) bool {
		a, bb := *converting[i].KeyEventsChange, *converting[j].KeyEventsChange
		if a != bb {
			return a > bb
		}
		return report.KeyLabel(converting[i].Key) < report.KeyLabel(converting[j].Key)
	})
	if len(converting) > 0 {
		b.WriteString("\n**Top Key Event Increases:**\n")
		for i, c := range converting {
			if i >= d.Thresholds.TopChannelMovers {
				break
			}
			b.WriteString(fmt.Sprintf("- %s: %s key events (%s)\n",
				report.KeyLabel(c.Key), FormatSignedCount(*c.KeyEventsChange), FormatSignedPct(c.KeyEventsPct)))
		}
	}
}

type channelTotal struct {
	name      string
	users     int
	keyEvents int
}

func filterComps(comps []report.WeekComparison, keep func(report.WeekComparison) bool) []report.WeekComparison {
	var out []report.WeekComparison
	for _, c := range comps {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
