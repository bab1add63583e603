package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/weekloom-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Weekloom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		fmt.Printf("output_dir: %s\n", c.OutputDir)
		fmt.Printf("skip_rows: %d\n", c.SkipRows)
		fmt.Printf("skip_grand_total: %t\n", c.SkipGrandTotal)
		if c.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", c.Delimiter)
		}
		fmt.Printf("columns.date: %s\n", c.Columns.Date)
		fmt.Printf("columns.channel: %s\n", c.Columns.Channel)
		fmt.Printf("columns.source_medium: %s\n", c.Columns.SourceMedium)
		fmt.Printf("columns.landing_page: %s\n", c.Columns.LandingPage)
		fmt.Printf("columns.users: %s\n", c.Columns.Users)
		fmt.Printf("columns.engagement_rate: %s\n", c.Columns.EngagementRate)
		fmt.Printf("columns.key_events: %s\n", c.Columns.KeyEvents)
		fmt.Printf("columns.key_event_rate: %s\n", c.Columns.KeyEventRate)
		fmt.Printf("summary.min_users_source_medium: %d\n", c.Summary.MinUsersSourceMedium)
		fmt.Printf("summary.min_users_landing_page: %d\n", c.Summary.MinUsersLandingPage)
		fmt.Printf("summary.top_channel_movers: %d\n", c.Summary.TopChannelMovers)
		fmt.Printf("summary.top_table_rows: %d\n", c.Summary.TopTableRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := effectiveConfig()
		if err != nil {
			return err
		}
		switch key {
		case "output_dir":
			c.OutputDir = val
		case "skip_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid skip_rows: %s", val)
			}
			c.SkipRows = n
		case "skip_grand_total":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid skip_grand_total: %s", val)
			}
			c.SkipGrandTotal = b
		case "delimiter":
			switch val {
			case ",", ";", "tab":
				c.Delimiter = val
			default:
				return fmt.Errorf("invalid delimiter: %s (use ',' | ';' | 'tab')", val)
			}
		case "columns.date":
			c.Columns.Date = val
		case "columns.channel":
			c.Columns.Channel = val
		case "columns.source_medium":
			c.Columns.SourceMedium = val
		case "columns.landing_page":
			c.Columns.LandingPage = val
		case "columns.users":
			c.Columns.Users = val
		case "columns.engagement_rate":
			c.Columns.EngagementRate = val
		case "columns.key_events":
			c.Columns.KeyEvents = val
		case "columns.key_event_rate":
			c.Columns.KeyEventRate = val
		case "summary.min_users_source_medium", "summary.min_users_landing_page",
			"summary.top_channel_movers", "summary.top_table_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid %s: %s", key, val)
			}
			switch key {
			case "summary.min_users_source_medium":
				c.Summary.MinUsersSourceMedium = n
			case "summary.min_users_landing_page":
				c.Summary.MinUsersLandingPage = n
			case "summary.top_channel_movers":
				c.Summary.TopChannelMovers = n
			case "summary.top_table_rows":
				c.Summary.TopTableRows = n
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Printf("✓ Set %s and saved config\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
