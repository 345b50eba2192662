package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env"`     // current application environment (local, dev, production)
	Storage Storage `mapstructure:"storage"` // local store configuration section
	HTTP    HTTP    `mapstructure:"http"`    // service listener configuration section
	Player  Player  `mapstructure:"player"`  // quiz playback tuning
}

// Storage configures the on-disk key-value store.
type Storage struct {
	Path string `mapstructure:"path"` // sqlite database file path
}

// HTTP configures the service listener.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address for the HTTP service
}

// Player configures quiz playback.
type Player struct {
	RevealDelay time.Duration `mapstructure:"reveal_delay"` // pause after an answer before advancing
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("storage.path", "brainflip.db")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("player.reveal_delay", "1s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("storage.path", "STORAGE_PATH")
	_ = v.BindEnv("http.addr", "HTTP_ADDR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
