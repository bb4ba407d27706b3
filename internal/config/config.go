// Package config loads confsched settings from flags, environment, .env and
// an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/alexanderramin/confsched/internal/refresh"
)

const EnvPrefix = "CONFSCHED"

const (
	KeyDBPath          = "db_path"
	KeyScheduleFile    = "schedule_file"
	KeyRefreshSchedule = "refresh_schedule"
	KeyLogFile         = "log_file"
	KeyLogLevel        = "log_level"
	KeyMetricsAddr     = "metrics_addr"
	KeyHideTopBar      = "hide_top_bar"
)

// Config is the resolved runtime configuration.
type Config struct {
	DBPath          string
	ScheduleFile    string
	RefreshSchedule string
	LogFile         string
	LogLevel        string
	MetricsAddr     string
	HideTopBar      bool
}

// New returns a viper instance with confsched defaults and env binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDBPath, defaultDBPath())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHideTopBar, false)
	return v
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "confsched.db"
	}
	return filepath.Join(home, ".confsched", "confsched.db")
}

// Load reads .env (if present) and the YAML config file into v. An empty
// cfgFile searches ./confsched.yaml and ~/.confsched/config.yaml; a missing
// file is not an error.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	// Missing .env is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName("confsched")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".confsched"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func FromViper(v *viper.Viper) Config {
	return Config{
		DBPath:          v.GetString(KeyDBPath),
		ScheduleFile:    v.GetString(KeyScheduleFile),
		RefreshSchedule: v.GetString(KeyRefreshSchedule),
		LogFile:         v.GetString(KeyLogFile),
		LogLevel:        v.GetString(KeyLogLevel),
		MetricsAddr:     v.GetString(KeyMetricsAddr),
		HideTopBar:      v.GetBool(KeyHideTopBar),
	}
}

// Validate reports every invalid value at once.
func (c Config) Validate() error {
	var problems []string

	if c.DBPath == "" {
		problems = append(problems, "db_path must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if c.RefreshSchedule != "" {
		if c.ScheduleFile == "" {
			problems = append(problems, "refresh_schedule requires schedule_file")
		}
		if _, err := refresh.ParseSpec(c.RefreshSchedule); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// ParseLevel maps a config log level to slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level must be one of debug, info, warn, error, got: %q", s)
}
