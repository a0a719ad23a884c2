package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/mathdrill/internal/clock"
	"github.com/abhisek/mathdrill/internal/grading"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// EnvPrefix is prepended to every environment override, e.g. MATHDRILL_KIND.
const EnvPrefix = "MATHDRILL"

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string `mapstructure:"db_path"`

	// Memory keeps everything in process and discards it on exit.
	Memory bool `mapstructure:"memory"`

	// Kind is the default drill kind: "add" or "multiply".
	Kind string `mapstructure:"kind" validate:"required,drillkind"`

	Grading GradingConfig `mapstructure:"grading"`
	Log     LogConfig     `mapstructure:"log"`

	// OverrideDate pins the calendar date (YYYY-MM-DD) for testing schedules.
	OverrideDate string `mapstructure:"override_date" validate:"omitempty,datetime=2006-01-02"`
}

// GradingConfig selects how answers are graded.
type GradingConfig struct {
	// Mode is "threshold" (fixed bands) or "adaptive" (personal history).
	Mode          string        `mapstructure:"mode" validate:"oneof=threshold adaptive"`
	FastThreshold time.Duration `mapstructure:"fast_threshold" validate:"gt=0"`
	SlowThreshold time.Duration `mapstructure:"slow_threshold" validate:"gtfield=FastThreshold"`
}

// LogConfig configures the structured log file.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File is the log destination. Empty disables logging.
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Kind: "add",
		Grading: GradingConfig{
			Mode:          grading.ModeThreshold,
			FastThreshold: grading.DefaultFastThreshold,
			SlowThreshold: grading.DefaultSlowThreshold,
		},
		Log: LogConfig{
			Level:  "info",
			File:   DefaultLogPath(),
			Format: "console",
		},
	}
}

// Load reads configuration from, in increasing priority: defaults, the config
// file, and MATHDRILL_* environment variables. A .env file in the working
// directory is loaded first if present. An empty path looks for
// config.yaml under the user config directory and tolerates its absence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("db_path", EnvPrefix+"_DB", EnvPrefix+"_DB_PATH"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if dir := DefaultConfigDir(); dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("memory", d.Memory)
	v.SetDefault("kind", d.Kind)
	v.SetDefault("override_date", d.OverrideDate)
	v.SetDefault("grading.mode", d.Grading.Mode)
	v.SetDefault("grading.fast_threshold", d.Grading.FastThreshold)
	v.SetDefault("grading.slow_threshold", d.Grading.SlowThreshold)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.format", d.Log.Format)
}

// DrillKind returns the parsed default drill kind.
func (c *Config) DrillKind() (problemgen.Kind, error) {
	return problemgen.ParseKind(c.Kind)
}

// Clock returns the system clock, or an override clock when OverrideDate is set.
func (c *Config) Clock() (clock.Clock, error) {
	if c.OverrideDate == "" {
		return clock.System{}, nil
	}
	return clock.ParseOverride(c.OverrideDate)
}

// GradingThresholds returns the threshold evaluator settings.
func (c *Config) GradingThresholds() grading.Config {
	return grading.Config{
		FastThreshold: c.Grading.FastThreshold,
		SlowThreshold: c.Grading.SlowThreshold,
	}
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/mathdrill, falling back to
// ~/.config/mathdrill. It returns "" when no home directory is known.
func DefaultConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mathdrill")
}

// DefaultLogPath returns $XDG_STATE_HOME/mathdrill/mathdrill.log, falling
// back to ~/.local/state. It returns "" when no home directory is known.
func DefaultLogPath() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "mathdrill", "mathdrill.log")
}
