// Package config loads console settings from .ampcred.yaml, AMPCRED_*
// environment variables and command flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"tableflip.dev/ampcred/pkg/calendar"
	"tableflip.dev/ampcred/pkg/filter"
	"tableflip.dev/ampcred/pkg/theme"
)

// Keys understood in the config file and as AMPCRED_<KEY> variables.
const (
	KeySeed       = "seed"
	KeyVariant    = "variant"
	KeyMode       = "mode"
	KeyMonth      = "month"
	KeySort       = "sort"
	KeyLocale     = "locale"
	KeyTolerance  = "tolerance"
	KeyWeekAnchor = "week_anchor"
	KeyColumns    = "columns"
	KeyDebug      = "debug"
	KeyLogFile    = "log_file"
)

// Config is the resolved console configuration.
type Config struct {
	Seed       string   `json:"seed"`
	Variant    string   `json:"variant"`
	Mode       string   `json:"mode"`
	Month      string   `json:"month,omitempty"`
	Sort       string   `json:"sort"`
	Locale     string   `json:"locale"`
	Tolerance  int      `json:"tolerance"`
	WeekAnchor int      `json:"weekAnchor"`
	Columns    []string `json:"columns"`
	Debug      bool     `json:"debug"`
	LogFile    string   `json:"logFile,omitempty"`
}

// New returns a viper instance with defaults, search paths and environment
// binding set up. Callers may bind flags before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeySeed, "")
	v.SetDefault(KeyVariant, theme.DefaultVariant)
	v.SetDefault(KeyMode, string(calendar.ModeMonth))
	v.SetDefault(KeyMonth, "")
	v.SetDefault(KeySort, string(filter.SortAlphabetical))
	v.SetDefault(KeyLocale, "en")
	v.SetDefault(KeyTolerance, calendar.DefaultTolerance)
	v.SetDefault(KeyWeekAnchor, 1)
	v.SetDefault(KeyColumns, calendar.DefaultColumns)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "")

	v.SetConfigName(".ampcred") // .yaml is implicit
	v.SetEnvPrefix("AMPCRED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("AMPCRED_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load reads the config file if one exists and resolves every key.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Seed:       strings.TrimSpace(v.GetString(KeySeed)),
		Variant:    v.GetString(KeyVariant),
		Mode:       v.GetString(KeyMode),
		Month:      strings.TrimSpace(v.GetString(KeyMonth)),
		Sort:       v.GetString(KeySort),
		Locale:     v.GetString(KeyLocale),
		Tolerance:  v.GetInt(KeyTolerance),
		WeekAnchor: v.GetInt(KeyWeekAnchor),
		Columns:    splitColumns(v.GetStringSlice(KeyColumns)),
		Debug:      v.GetBool(KeyDebug),
		LogFile:    v.GetString(KeyLogFile),
	}
	if cfg.Seed != "" {
		seed, err := homedir.Expand(cfg.Seed)
		if err != nil {
			return nil, fmt.Errorf("config: expand seed %q: %w", cfg.Seed, err)
		}
		cfg.Seed = seed
	}
	if cfg.LogFile != "" {
		logFile, err := homedir.Expand(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("config: expand log_file %q: %w", cfg.LogFile, err)
		}
		cfg.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at render time.
func (c *Config) Validate() error {
	if _, err := calendar.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %s: %w", KeyMode, err)
	}
	if _, err := filter.ParseSortKey(c.Sort); err != nil {
		return fmt.Errorf("config: %s: %w", KeySort, err)
	}
	if _, err := theme.Lookup(c.Variant); err != nil {
		return fmt.Errorf("config: %s: %w", KeyVariant, err)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("config: %s %q: %w", KeyLocale, c.Locale, err)
	}
	if c.Month != "" {
		if _, ok := calendar.ParseMonth(c.Month); !ok {
			return fmt.Errorf("config: %s %q: want a name like \"January 2026\"", KeyMonth, c.Month)
		}
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyTolerance)
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("config: %s must name at least one column", KeyColumns)
	}
	return nil
}

// LocaleTag returns the parsed locale, falling back to English.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Env values arrive as one comma separated string.
func splitColumns(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
