package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	BadgerDBPath     string `mapstructure:"BADGERDB_PATH"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	Workers          int    `mapstructure:"WORKERS"`
	CacheSize        int    `mapstructure:"CACHE_SIZE"`
}

// ErrMissingBotToken is returned by ValidateBot when no token is configured.
var ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

var defaults = map[string]any{
	"TELEGRAM_BOT_TOKEN": "",
	"BADGERDB_PATH":      "./badger_data",
	"LOG_LEVEL":          "info",
	"WORKERS":            1,
	"CACHE_SIZE":         1024,
}

// LoadConfig reads config.yaml from path, if present, and lets environment
// variables override it.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Unmarshal only sees keys viper knows about, so every key gets a
	// default for AutomaticEnv to override.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings every command needs.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("CACHE_SIZE must not be negative, got %d", c.CacheSize)
	}
	return nil
}

// ValidateBot checks the settings the Telegram bot needs.
func (c Config) ValidateBot() error {
	if c.TelegramBotToken == "" {
		return ErrMissingBotToken
	}
	if c.BadgerDBPath == "" {
		return errors.New("BADGERDB_PATH is not set")
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
