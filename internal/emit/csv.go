// Package emit renders comparison results to CSV files and the Markdown
// executive summary.
package emit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/KaramelBytes/weekloom-cli/internal/report"
	"github.com/KaramelBytes/weekloom-cli/internal/utils"
)

// Emitter writes report artifacts into a single output directory. The
// directory is created on first write; re-runs overwrite prior files.
type Emitter struct {
	OutDir string
}

// WriteComparisons writes one dimension's week-over-week comparisons as CSV
// and returns the written path. Output bytes are deterministic for identical
// input: comparisons arrive ordered by week pair and group key.
func (e *Emitter) WriteComparisons(dim report.Dimension, comps []report.WeekComparison) (string, error) {
	if err := utils.EnsureDir(e.OutDir); err != nil {
		return "", fmt.Errorf("ensure output dir: %w", err)
	}
	path := filepath.Join(e.OutDir, dim.FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dim.FileName, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Week_Comparison", "Previous_Week", "Current_Week"}
	header = append(header, dim.KeyColumns...)
	header = append(header,
		"Users_Previous", "Users_Current", "Users_Change", "Users_Change_Pct",
		"Key_Events_Previous", "Key_Events_Current", "Key_Events_Change", "Key_Events_Change_Pct",
		"Engagement_Change", "New_This_Week",
	)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for _, c := range comps {
		rec := []string{c.Label(), strconv.Itoa(c.PriorWeek), strconv.Itoa(c.CurrentWeek)}
		rec = append(rec, c.Key...)
		prevUsers, prevEvents := NA, NA
		if !c.New {
			prevUsers = strconv.Itoa(c.PriorUsers)
			prevEvents = strconv.Itoa(c.PriorKeyEvents)
		}
		rec = append(rec,
			prevUsers, strconv.Itoa(c.CurrentUsers), FormatCount(c.UsersChange), FormatPct(c.UsersPct),
			prevEvents, strconv.Itoa(c.CurrentKeyEvents), FormatCount(c.KeyEventsChange), FormatPct(c.KeyEventsPct),
			FormatRate(c.EngagementChange), strconv.FormatBool(c.New),
		)
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", dim.FileName, err)
	}
	return path, nil
}
