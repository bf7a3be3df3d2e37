// Package config loads the CLI configuration: defaults, an optional
// housecast.yaml, and HOUSECAST_* environment overrides, in ascending
// precedence. The library itself never reads configuration; it takes
// explicit options.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys to environment names, so model.max_order
// becomes HOUSECAST_MODEL_MAX_ORDER.
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config is the full CLI configuration.
type Config struct {
	Data     DataConfig     `mapstructure:"data"`
	Model    ModelConfig    `mapstructure:"model"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DataConfig locates the input frame.
type DataConfig struct {
	// Path is the wide CSV of price series, one column per zipcode.
	Path string `mapstructure:"path"`
}

// ModelConfig steers order selection and fitting.
type ModelConfig struct {
	Backend        string  `mapstructure:"backend"`
	SeasonalPeriod int     `mapstructure:"seasonal_period"`
	MaxOrder       int     `mapstructure:"max_order"`
	Criterion      string  `mapstructure:"criterion"`
	Threshold      float64 `mapstructure:"threshold"`
}

// ForecastConfig steers the projection horizon and intervals.
type ForecastConfig struct {
	YearsFuture int     `mapstructure:"years_future"`
	YearsPast   int     `mapstructure:"years_past"`
	Confidence  float64 `mapstructure:"confidence"`
}

// LoggingConfig steers CLI logging.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Model.Threshold <= 0 || c.Model.Threshold >= 1 {
		return fmt.Errorf("model.threshold must be in (0, 1), got %v", c.Model.Threshold)
	}
	if c.Model.SeasonalPeriod < 0 {
		return fmt.Errorf("model.seasonal_period must be non-negative, got %d", c.Model.SeasonalPeriod)
	}
	if c.Model.MaxOrder < 0 {
		return fmt.Errorf("model.max_order must be non-negative, got %d", c.Model.MaxOrder)
	}
	switch c.Model.Criterion {
	case "", "aic", "aicc", "bic":
	default:
		return fmt.Errorf("model.criterion must be aic, aicc, or bic, got %q", c.Model.Criterion)
	}
	if c.Forecast.YearsFuture < 1 {
		return fmt.Errorf("forecast.years_future must be positive, got %d", c.Forecast.YearsFuture)
	}
	if c.Forecast.Confidence <= 0 || c.Forecast.Confidence >= 1 {
		return fmt.Errorf("forecast.confidence must be in (0, 1), got %v", c.Forecast.Confidence)
	}
	return nil
}

// Load reads configuration. With a non-empty path, that file is required;
// otherwise housecast.yaml is searched in the working directory and
// ~/.housecast, and its absence just means defaults plus environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("housecast")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.housecast")
	}

	setDefaults(v)

	v.SetEnvPrefix("HOUSECAST")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configPath != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return parse(v)
}

func parse(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "")

	v.SetDefault("model.backend", "sarima")
	v.SetDefault("model.seasonal_period", 12)
	v.SetDefault("model.max_order", 5)
	v.SetDefault("model.criterion", "aic")
	v.SetDefault("model.threshold", 0.85)

	v.SetDefault("forecast.years_future", 2)
	v.SetDefault("forecast.years_past", 5)
	v.SetDefault("forecast.confidence", 0.95)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
}

// Default returns the configuration with every field at its default.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := parse(v)
	if err != nil {
		panic(err)
	}
	return cfg
}
