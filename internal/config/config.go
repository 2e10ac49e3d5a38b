package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration shared by the client and the backend.
type Config struct {
	API      APIConfig
	UI       UIConfig
	Log      LogConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NoticeTTL      time.Duration `mapstructure:"notice_ttl"`
	CurrencySymbol string        `mapstructure:"currency_symbol"`
}

// LogConfig holds slog settings. An empty path disables file logging.
type LogConfig struct {
	Path  string
	Level string
}

// SlogLevel parses Level, falling back to info.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ServerConfig holds the reference backend's listen address.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use prefix
// ADMINPANEL_. Flags in fs, when non-nil, override both; flag names use
// dashes for dots (api-base-url -> api.base_url).
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("ui.notice_ttl", "3s")
	v.SetDefault("ui.currency_symbol", "€")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "adminpanel", "adminpanel.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("server.addr", "127.0.0.1:8000")
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "adminpanel", "adminpanel.db"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ADMINPANEL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "adminpanel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ADMINPANEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if fs != nil {
		for _, key := range v.AllKeys() {
			if f := fs.Lookup(strings.NewReplacer(".", "-", "_", "-").Replace(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.NoticeTTL <= 0 {
		return Config{}, fmt.Errorf("ui.notice_ttl must be positive, got %s", c.UI.NoticeTTL)
	}
	return c, nil
}

// Path returns where Save writes the config file.
func Path() string {
	if p := os.Getenv("ADMINPANEL_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "adminpanel", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("ui.notice_ttl", cfg.UI.NoticeTTL.String())
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("database.path", cfg.Database.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
