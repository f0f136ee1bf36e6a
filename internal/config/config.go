// Package config loads server configuration from YAML with viper. Every
// field carries a sensible default so a missing file still yields a
// runnable configuration for local use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration tree.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Match    MatchConfig    `mapstructure:"match"`
}

// ServerConfig configures the bridge endpoint.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// DatabaseConfig configures the optional match persistence layer. An empty
// URL disables persistence entirely.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	BootstrapSchema bool          `mapstructure:"bootstrap_schema"`
}

// MatchConfig configures simulation defaults.
type MatchConfig struct {
	MaxMatchTime float64 `mapstructure:"max_match_time"` // seconds
	CardsFile    string  `mapstructure:"cards_file"`     // empty: built-in set
	ReplayDir    string  `mapstructure:"replay_dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("database.bootstrap_schema", true)

	v.SetDefault("match.max_match_time", 180.0)
	v.SetDefault("match.cards_file", "")
	v.SetDefault("match.replay_dir", "replays")
}

// Load reads configuration from the given YAML file path. A missing file
// is not an error; defaults apply and the environment may override via
// CRUSTSIM_-prefixed variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CRUSTSIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// With an explicit path a missing file surfaces as fs.ErrNotExist
		// rather than viper's ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
