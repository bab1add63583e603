package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
	"github.com/KaramelBytes/weekloom-cli/internal/week"
)

var (
	wksSkipRows     int
	wksNoGrandTotal bool
	wksDelimiter    string
	wksSheetName    string
	wksSheetIndex   int
)

var weeksCmd = &cobra.Command{
	Use:   "weeks <file>",
	Short: "Show the week buckets and date coverage of an export without writing reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("skip-rows") {
			c.SkipRows = wksSkipRows
		}
		if wksNoGrandTotal {
			c.SkipGrandTotal = false
		}
		if wksDelimiter != "" {
			c.Delimiter = wksDelimiter
		}
		opt, err := c.IngestOptions()
		if err != nil {
			return err
		}

		var res *ingest.Result
		if strings.HasSuffix(strings.ToLower(args[0]), ".xlsx") {
			res, err = ingest.LoadXLSX(args[0], opt, wksSheetName, wksSheetIndex)
		} else {
			res, err = ingest.LoadCSV(args[0], opt)
		}
		if err != nil {
			return err
		}

		cal, err := week.Build(res.Records)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %d rows (%d rejected)\n", len(res.Records), res.Rejected)
		fmt.Printf("Found %d weeks:\n", len(cal.Weeks))
		for _, w := range cal.Weeks {
			fmt.Printf("  Week %d: %s to %s\n", w.Index,
				w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
		}
		for _, rep := range cal.Completeness(res.Records) {
			if rep.IsComplete {
				fmt.Printf("  Week %d: Complete (all 7 days present)\n", rep.WeekIndex)
				continue
			}
			dates := make([]string, len(rep.MissingDates))
			for i, d := range rep.MissingDates {
				dates[i] = d.Format("2006-01-02")
			}
			fmt.Printf("  Week %d: Missing %d date(s) - %s\n",
				rep.WeekIndex, len(rep.MissingDates), strings.Join(dates, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weeksCmd)
	weeksCmd.Flags().IntVar(&wksSkipRows, "skip-rows", 6, "number of metadata rows before the header")
	weeksCmd.Flags().BoolVar(&wksNoGrandTotal, "no-grand-total", false, "export has no grand-total row after the header")
	weeksCmd.Flags().StringVar(&wksDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	weeksCmd.Flags().StringVar(&wksSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	weeksCmd.Flags().IntVar(&wksSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
