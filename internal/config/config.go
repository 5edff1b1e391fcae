// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Jagbo/zenrent-sub000/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Transform struct {
		RoundingPrecision         int    `mapstructure:"rounding_precision" yaml:"rounding_precision"`
		CurrencyCode              string `mapstructure:"currency_code" yaml:"currency_code"`
		ValidateOutput            bool   `mapstructure:"validate_output" yaml:"validate_output"`
		IncludeNonMandatoryFields bool   `mapstructure:"include_non_mandatory_fields" yaml:"include_non_mandatory_fields"`
		RequirePropertyID         bool   `mapstructure:"require_property_id" yaml:"require_property_id"`
		LogErrors                 bool   `mapstructure:"log_errors" yaml:"log_errors"`
		Debug                     bool   `mapstructure:"debug" yaml:"debug"`
	} `mapstructure:"transform" yaml:"transform"`

	Errors struct {
		DedupeWindowMinutes int    `mapstructure:"dedupe_window_minutes" yaml:"dedupe_window_minutes"`
		AuditLogFile        string `mapstructure:"audit_log_file" yaml:"audit_log_file"`
	} `mapstructure:"errors" yaml:"errors"`

	Categories struct {
		KeywordsFile string `mapstructure:"keywords_file" yaml:"keywords_file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.zenrent")
	v.AddConfigPath(".zenrent")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ZENRENT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("transform.rounding_precision", 2)
	v.SetDefault("transform.currency_code", "GBP")
	v.SetDefault("transform.validate_output", true)
	v.SetDefault("transform.include_non_mandatory_fields", true)
	v.SetDefault("transform.require_property_id", false)
	v.SetDefault("transform.log_errors", true)
	v.SetDefault("transform.debug", false)

	v.SetDefault("errors.dedupe_window_minutes", 30)
	v.SetDefault("errors.audit_log_file", "")

	v.SetDefault("categories.keywords_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Transform.RoundingPrecision < 0 || config.Transform.RoundingPrecision > 10 {
		return fmt.Errorf("transform.rounding_precision must be between 0 and 10, got: %d", config.Transform.RoundingPrecision)
	}

	if config.Errors.DedupeWindowMinutes < 0 {
		return fmt.Errorf("errors.dedupe_window_minutes must not be negative, got: %d", config.Errors.DedupeWindowMinutes)
	}

	return nil
}

// TransformationOptions converts the transform section into the options
// struct consumed by the transformers.
func (c *Config) TransformationOptions() models.TransformationOptions {
	return models.TransformationOptions{
		RoundingPrecision:         int32(c.Transform.RoundingPrecision),
		ValidateOutput:            c.Transform.ValidateOutput,
		IncludeNonMandatoryFields: c.Transform.IncludeNonMandatoryFields,
		CurrencyCode:              c.Transform.CurrencyCode,
		RequirePropertyID:         c.Transform.RequirePropertyID,
		Debug:                     c.Transform.Debug,
		LogErrors:                 c.Transform.LogErrors,
	}
}

// DedupeWindow returns the configured duplicate error window.
func (c *Config) DedupeWindow() time.Duration {
	return time.Duration(c.Errors.DedupeWindowMinutes) * time.Minute
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
