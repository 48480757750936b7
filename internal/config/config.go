package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver  string `mapstructure:"driver"` // sqlite (default) or postgres
	Path    string `mapstructure:"path"`   // sqlite file path
	DSN     string `mapstructure:"dsn"`    // postgres connection string
	LogMode bool   `mapstructure:"log_mode"`
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Secure     bool   `mapstructure:"secure"`
}

type EventsConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Events   EventsConfig   `mapstructure:"events"`
}

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
// The first call decides the outcome for the whole process: a failed load
// stays failed on subsequent calls instead of quietly returning nil.
func Load(path string) (*Config, error) {
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. TXA_SERVER_PORT=9000
		v.SetEnvPrefix("TXA")
		v.AutomaticEnv()

		v.SetDefault("server.port", 3333)
		v.SetDefault("database.driver", "sqlite")
		v.SetDefault("session.cookie_name", "sessionId")
		v.SetDefault("session.max_age_days", 30)

		if err := v.ReadInConfig(); err != nil {
			loadErr = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err := v.Unmarshal(&c); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
