package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/weekloom-cli/internal/pipeline"
)

var (
	anaOutDir       string
	anaSkipRows     int
	anaNoGrandTotal bool
	anaDelimiter    string
	anaSheetName    string
	anaSheetIndex   int
	anaDateCol      string
	anaChannelCol   string
	anaSourceCol    string
	anaLandingCol   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run the full week-over-week analysis and write all reports",
	Example: `  weekloom analyze ga4_export.csv
  weekloom analyze ga4_export.csv -o reports --skip-rows 6
  weekloom analyze ga4_export.xlsx --sheet-name Data`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("skip-rows") {
			c.SkipRows = anaSkipRows
		}
		if anaNoGrandTotal {
			c.SkipGrandTotal = false
		}
		if anaDelimiter != "" {
			c.Delimiter = anaDelimiter
		}
		if anaDateCol != "" {
			c.Columns.Date = anaDateCol
		}
		if anaChannelCol != "" {
			c.Columns.Channel = anaChannelCol
		}
		if anaSourceCol != "" {
			c.Columns.SourceMedium = anaSourceCol
		}
		if anaLandingCol != "" {
			c.Columns.LandingPage = anaLandingCol
		}
		ingestOpt, err := c.IngestOptions()
		if err != nil {
			return err
		}
		outDir := c.OutputDir
		if anaOutDir != "" {
			outDir = anaOutDir
		}

		res, err := pipeline.Run(pipeline.Options{
			InputPath:  args[0],
			OutDir:     outDir,
			Ingest:     ingestOpt,
			SheetName:  anaSheetName,
			SheetIndex: anaSheetIndex,
			Thresholds: c.Thresholds(),
		}, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Analysis complete: %d reports saved to %s\n", len(res.Files), outDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutDir, "out", "o", "", "output directory for reports (default from config)")
	analyzeCmd.Flags().IntVar(&anaSkipRows, "skip-rows", 6, "number of metadata rows before the header")
	analyzeCmd.Flags().BoolVar(&anaNoGrandTotal, "no-grand-total", false, "export has no grand-total row after the header")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	analyzeCmd.Flags().StringVar(&anaSheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	analyzeCmd.Flags().IntVar(&anaSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
	analyzeCmd.Flags().StringVar(&anaDateCol, "date-col", "", "override the date column name")
	analyzeCmd.Flags().StringVar(&anaChannelCol, "channel-col", "", "override the channel column name")
	analyzeCmd.Flags().StringVar(&anaSourceCol, "source-col", "", "override the source/medium column name")
	analyzeCmd.Flags().StringVar(&anaLandingCol, "landing-col", "", "override the landing-page column name")
}
