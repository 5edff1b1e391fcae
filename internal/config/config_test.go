package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	cfg, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Transform.RoundingPrecision)
	assert.Equal(t, "GBP", cfg.Transform.CurrencyCode)
	assert.True(t, cfg.Transform.ValidateOutput)
	assert.True(t, cfg.Transform.IncludeNonMandatoryFields)
	assert.True(t, cfg.Transform.LogErrors)
	assert.False(t, cfg.Transform.RequirePropertyID)
	assert.Equal(t, 30, cfg.Errors.DedupeWindowMinutes)
	assert.Empty(t, cfg.Errors.AuditLogFile)
	assert.Empty(t, cfg.Categories.KeywordsFile)
}

func TestInitializeConfig_EnvOverride(t *testing.T) {
	t.Setenv("ZENRENT_LOG_LEVEL", "debug")
	t.Setenv("ZENRENT_TRANSFORM_CURRENCY_CODE", "EUR")

	cfg, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "EUR", cfg.Transform.CurrencyCode)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.Transform.RoundingPrecision = 2
		cfg.Errors.DedupeWindowMinutes = 30
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"json format", func(cfg *Config) { cfg.Log.Format = "json" }, false},
		{"bad level", func(cfg *Config) { cfg.Log.Level = "verbose" }, true},
		{"bad format", func(cfg *Config) { cfg.Log.Format = "xml" }, true},
		{"precision too high", func(cfg *Config) { cfg.Transform.RoundingPrecision = 11 }, true},
		{"negative precision", func(cfg *Config) { cfg.Transform.RoundingPrecision = -1 }, true},
		{"negative dedupe window", func(cfg *Config) { cfg.Errors.DedupeWindowMinutes = -5 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransformationOptions(t *testing.T) {
	cfg := &Config{}
	cfg.Transform.RoundingPrecision = 2
	cfg.Transform.CurrencyCode = "GBP"
	cfg.Transform.ValidateOutput = true
	cfg.Transform.RequirePropertyID = true
	cfg.Transform.LogErrors = true

	opts := cfg.TransformationOptions()
	assert.Equal(t, int32(2), opts.RoundingPrecision)
	assert.Equal(t, "GBP", opts.CurrencyCode)
	assert.True(t, opts.ValidateOutput)
	assert.True(t, opts.RequirePropertyID)
	assert.True(t, opts.LogErrors)
	assert.False(t, opts.Debug)
}

func TestDedupeWindow(t *testing.T) {
	cfg := &Config{}
	cfg.Errors.DedupeWindowMinutes = 45
	assert.Equal(t, 45*time.Minute, cfg.DedupeWindow())
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	cfg.Log.Level = "nonsense"
	cfg.Log.Format = "text"
	logger = ConfigureLoggingFromConfig(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
