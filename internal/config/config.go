package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/weekloom-cli/internal/emit"
	"github.com/KaramelBytes/weekloom-cli/internal/ingest"
)

// Global configuration structure.
type Global struct {
	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
	SkipRows       int    `mapstructure:"skip_rows" yaml:"skip_rows"`
	SkipGrandTotal bool   `mapstructure:"skip_grand_total" yaml:"skip_grand_total"`
	Delimiter      string `mapstructure:"delimiter" yaml:"delimiter"`

	Columns ingest.Columns `mapstructure:"columns" yaml:"columns"`

	Summary Summary `mapstructure:"summary" yaml:"summary"`
}

// Summary holds the executive-summary noise floors.
type Summary struct {
	MinUsersSourceMedium int `mapstructure:"min_users_source_medium" yaml:"min_users_source_medium"`
	MinUsersLandingPage  int `mapstructure:"min_users_landing_page" yaml:"min_users_landing_page"`
	TopChannelMovers     int `mapstructure:"top_channel_movers" yaml:"top_channel_movers"`
	TopTableRows         int `mapstructure:"top_table_rows" yaml:"top_table_rows"`
}

// IngestOptions converts the configuration into loader options.
func (c *Global) IngestOptions() (ingest.Options, error) {
	opt := ingest.Options{
		SkipRows:       c.SkipRows,
		SkipGrandTotal: c.SkipGrandTotal,
		Columns:        c.Columns,
	}
	switch c.Delimiter {
	case "", ",":
	case ";":
		opt.Delimiter = ';'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported delimiter: %q (use ',' | ';' | 'tab')", c.Delimiter)
	}
	return opt, nil
}

// Thresholds converts the configuration into summary thresholds.
func (c *Global) Thresholds() emit.Thresholds {
	return emit.Thresholds{
		MinUsersSourceMedium: c.Summary.MinUsersSourceMedium,
		MinUsersLandingPage:  c.Summary.MinUsersLandingPage,
		TopChannelMovers:     c.Summary.TopChannelMovers,
		TopTableRows:         c.Summary.TopTableRows,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.weekloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".weekloom")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("WEEKLOOM")
	v.AutomaticEnv()

	cols := ingest.DefaultColumns()
	thr := emit.DefaultThresholds()

	// Defaults
	v.SetDefault("output_dir", "output")
	v.SetDefault("skip_rows", 6)
	v.SetDefault("skip_grand_total", true)
	v.SetDefault("delimiter", "")
	v.SetDefault("columns.date", cols.Date)
	v.SetDefault("columns.channel", cols.Channel)
	v.SetDefault("columns.source_medium", cols.SourceMedium)
	v.SetDefault("columns.landing_page", cols.LandingPage)
	v.SetDefault("columns.users", cols.Users)
	v.SetDefault("columns.engagement_rate", cols.EngagementRate)
	v.SetDefault("columns.key_events", cols.KeyEvents)
	v.SetDefault("columns.key_event_rate", cols.KeyEventRate)
	v.SetDefault("summary.min_users_source_medium", thr.MinUsersSourceMedium)
	v.SetDefault("summary.min_users_landing_page", thr.MinUsersLandingPage)
	v.SetDefault("summary.top_channel_movers", thr.TopChannelMovers)
	v.SetDefault("summary.top_table_rows", thr.TopTableRows)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".weekloom"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
