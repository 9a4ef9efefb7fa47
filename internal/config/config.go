// Package config loads daybook's startup configuration: which backend to
// talk to and how to log. The backend adapter is chosen here, once, instead
// of being detected at runtime.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Backend names a concrete gateway implementation.
type Backend string

const (
	BackendAppsScript Backend = "appsscript"
	BackendSupabase   Backend = "supabase"
)

// Logging controls the slog handler. File keeps log output away from the
// terminal the TUI owns.
type Logging struct {
	Level  string
	Format string
	File   string
}

// Config is everything daybook needs at startup.
type Config struct {
	Backend         Backend
	Endpoint        string
	SupabaseAnonKey string
	Logging         Logging
}

// Load reads the config file (explicit path, or config.yaml under the user
// config dir) plus DAYBOOK_* environment overrides.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config directory: %w", err)
		}
		v.AddConfigPath(configDir + "/daybook")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DAYBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", string(BackendAppsScript))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No file is fine; env vars can carry everything.
	}

	cfg := &Config{
		Backend:         Backend(strings.TrimSpace(v.GetString("backend"))),
		Endpoint:        strings.TrimSpace(v.GetString("endpoint")),
		SupabaseAnonKey: strings.TrimSpace(v.GetString("supabase_anon_key")),
		Logging: Logging{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   v.GetString("logging.file"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendAppsScript, BackendSupabase:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendAppsScript, BackendSupabase)
	}

	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required for backend %q", c.Backend)
	}
	if c.Backend == BackendSupabase && c.SupabaseAnonKey == "" {
		return fmt.Errorf("supabase_anon_key is required for backend %q", BackendSupabase)
	}
	return nil
}
