// Package config loads GoStays settings from an optional config file, an
// optional .env file and GOSTAYS_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Seed     SeedConfig
	Metrics  MetricsConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address string
	Verbose bool
}

// DatabaseConfig holds DuckDB settings. An empty path opens an in-memory database.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// SeedConfig controls loading of the demo listings.
type SeedConfig struct {
	Enabled bool
}

// MetricsConfig holds the Prometheus listener settings. An empty address disables it.
type MetricsConfig struct {
	Address string
}

// SessionConfig controls eviction of idle search sessions. A zero IdleTTL keeps them forever.
type SessionConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads configuration from file and env. Env var overrides use prefix GOSTAYS_,
// e.g. GOSTAYS_SERVER_ADDRESS=":9000".
func Load() (Config, error) {
	loadEnvFile()

	v := viper.New()

	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.verbose", true)
	v.SetDefault("database.path", "./data/gostays.ddb")
	v.SetDefault("log.level", "info")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("metrics.address", ":9100")
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.sweep_interval", "1m")

	if cfgPath := os.Getenv("GOSTAYS_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("gostays")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GOSTAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, serr.Wrap(err, "failed to read config file")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, serr.Wrap(err, "failed to unmarshal config")
	}
	return c, nil
}

// loadEnvFile loads ./.env into the process environment when present.
// Variables already set win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to load .env"), "ignoring .env file")
	}
}
