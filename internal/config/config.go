package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	DefaultMode          = "clock"
	DefaultVersion       = "kjv_only"
	DefaultInterval      = time.Second
	DefaultFallbackOrder = "verse_first"
)

type Config struct {
	Clock   ClockConfig   `mapstructure:"clock"`
	Data    DataConfig    `mapstructure:"data"`
	Display DisplayConfig `mapstructure:"display"`
	API     APIConfig     `mapstructure:"api"`
	Server  ServerConfig  `mapstructure:"server"`
	State   StateConfig   `mapstructure:"state"`

	// Warnings lists values that were invalid and replaced by defaults.
	Warnings []string `mapstructure:"-"`
}

type ClockConfig struct {
	Mode          string        `mapstructure:"mode"`
	Version       string        `mapstructure:"version"`
	Interval      time.Duration `mapstructure:"interval"`
	Timezone      string        `mapstructure:"timezone"`
	FallbackOrder string        `mapstructure:"fallback_order"`
	Seed          int64         `mapstructure:"seed"`
}

type DataConfig struct {
	KJVPath       string `mapstructure:"kjv_path" validate:"omitempty,file"`
	AmplifiedPath string `mapstructure:"amplified_path" validate:"omitempty,file"`
	EventsPath    string `mapstructure:"events_path" validate:"omitempty,file"`
	Index         string `mapstructure:"index" validate:"oneof=auto canon dataset"`
}

type DisplayConfig struct {
	Width           int    `mapstructure:"width" validate:"min=200"`
	Height          int    `mapstructure:"height" validate:"min=200"`
	FontSize        int    `mapstructure:"font_size" validate:"min=8"`
	MinFontSize     int    `mapstructure:"min_font_size" validate:"min=6,ltefield=FontSize"`
	OutputDirectory string `mapstructure:"output_directory" validate:"required"`
	Keep            int    `mapstructure:"keep" validate:"min=1"`
}

type APIConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	BaseURL          string        `mapstructure:"base_url" validate:"omitempty,url"`
	Translation      string        `mapstructure:"translation"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"positive_duration"`
	CacheDirectory   string        `mapstructure:"cache_directory"`
	CacheTTL         time.Duration `mapstructure:"cache_ttl" validate:"positive_duration"`
	CacheSize        int           `mapstructure:"cache_size" validate:"min=1"`
	MaxRetryAttempts uint          `mapstructure:"max_retry_attempts"`
}

type ServerConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type StateConfig struct {
	Persist      bool   `mapstructure:"persist"`
	Driver       string `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	DSN          string `mapstructure:"dsn"`
	HistoryLimit int    `mapstructure:"history_limit" validate:"min=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bibleclock")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Set overrides a key, e.g. from a command line flag. It wins over the file.
func (loader *ConfigLoader) Set(key string, value any) {
	loader.viper.Set(key, value)
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("clock.mode", DefaultMode)
	v.SetDefault("clock.version", DefaultVersion)
	v.SetDefault("clock.interval", DefaultInterval)
	v.SetDefault("clock.fallback_order", DefaultFallbackOrder)
	v.SetDefault("clock.seed", 0)
	v.SetDefault("data.index", "auto")
	v.SetDefault("display.width", 1200)
	v.SetDefault("display.height", 825)
	v.SetDefault("display.font_size", 48)
	v.SetDefault("display.min_font_size", 18)
	v.SetDefault("display.output_directory", filepath.Join("outputs", "display"))
	v.SetDefault("display.keep", 10)
	v.SetDefault("api.enabled", false)
	v.SetDefault("api.base_url", "https://bible-api.com")
	v.SetDefault("api.translation", "kjv")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("api.cache_directory", filepath.Join("cache", "bibleapi"))
	v.SetDefault("api.cache_ttl", time.Hour)
	v.SetDefault("api.cache_size", 100)
	v.SetDefault("api.max_retry_attempts", 3)
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("state.persist", false)
	v.SetDefault("state.driver", "sqlite")
	v.SetDefault("state.dsn", "bibleclock.db")
	v.SetDefault("state.history_limit", 1000)

	envBindings := map[string]string{
		"clock.mode":    "BIBLECLOCK_MODE",
		"clock.version": "BIBLECLOCK_VERSION",
		"data.kjv_path": "BIBLECLOCK_KJV_PATH",
		// Only from the environment since it may hold a password
		"state.dsn": "BIBLECLOCK_STATE_DSN",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var warnings []string
	if raw := v.GetString("clock.interval"); raw != "" {
		if _, err := time.ParseDuration(raw); err != nil {
			warnings = append(warnings, warnReplaced("interval", raw, DefaultInterval.String()))
			v.Set("clock.interval", DefaultInterval)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Warnings = warnings

	loader.failClosed(&cfg)

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// failClosed replaces invalid clock settings with their defaults instead of
// failing, and records a warning for each.
func (loader *ConfigLoader) failClosed(cfg *Config) {
	replace := func(field string, value any, fallback string) {
		cfg.Warnings = append(cfg.Warnings, warnReplaced(field, value, fallback))
	}

	cfg.Clock.Mode = strings.ToLower(strings.TrimSpace(cfg.Clock.Mode))
	if err := loader.validator.Var(cfg.Clock.Mode, "oneof=clock day"); err != nil {
		replace("mode", cfg.Clock.Mode, DefaultMode)
		cfg.Clock.Mode = DefaultMode
	}
	cfg.Clock.Version = strings.ToLower(strings.TrimSpace(cfg.Clock.Version))
	if err := loader.validator.Var(cfg.Clock.Version, "oneof=kjv_only kjv_amplified"); err != nil {
		replace("version", cfg.Clock.Version, DefaultVersion)
		cfg.Clock.Version = DefaultVersion
	}
	if cfg.Clock.Interval <= 0 {
		replace("interval", cfg.Clock.Interval, DefaultInterval.String())
		cfg.Clock.Interval = DefaultInterval
	}
	if err := loader.validator.Var(cfg.Clock.FallbackOrder, "oneof=verse_first chapter_first"); err != nil {
		replace("fallback_order", cfg.Clock.FallbackOrder, DefaultFallbackOrder)
		cfg.Clock.FallbackOrder = DefaultFallbackOrder
	}
	if cfg.Clock.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Clock.Timezone); err != nil {
			replace("timezone", cfg.Clock.Timezone, "Local")
			cfg.Clock.Timezone = ""
		}
	}
}

func warnReplaced(field string, value any, fallback string) string {
	slog.Warn("invalid configuration value replaced by default",
		"key", "clock."+field,
		"value", value,
		"default", fallback,
	)
	return fmt.Sprintf("clock.%s %v is invalid, using %s", field, value, fallback)
}

// Location returns the configured time zone, or the local one.
func (c ClockConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
