// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/navrex0/roastbot/internal/config"
	"github.com/navrex0/roastbot/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	originalDefault := slog.Default()
	defer slog.SetDefault(originalDefault)

	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug_level", logLevel: "debug"},
		{name: "info_level", logLevel: "info"},
		{name: "warn_level", logLevel: "warn"},
		{name: "error_level", logLevel: "error"},
		{name: "mixed_case_level", logLevel: "DeBuG"},
		{name: "invalid_level_falls_back_to_info", logLevel: "verbose"},
		{name: "empty_level_falls_back_to_info", logLevel: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)

			// Setup installs the logger as the process default
			assert.Equal(t, log, slog.Default())
		})
	}
}

func TestSetupLevelFiltering(t *testing.T) {
	originalDefault := slog.Default()
	defer slog.SetDefault(originalDefault)

	log, err := logger.Setup(config.ServerConfig{LogLevel: "warn"})
	require.NoError(t, err)

	assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, log.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestFromContextOrDefault(t *testing.T) {
	defaultLogger, _ := logger.GetTestLogger(t)
	customLogger, _ := logger.GetTestLogger(t)

	tests := []struct {
		name     string
		ctx      context.Context
		expected *slog.Logger
	}{
		{
			name:     "nil_context_returns_default",
			ctx:      nil,
			expected: defaultLogger,
		},
		{
			name:     "context_without_logger_returns_default",
			ctx:      context.Background(),
			expected: defaultLogger,
		},
		{
			name:     "context_with_logger_returns_context_logger",
			ctx:      logger.WithLogger(context.Background(), customLogger),
			expected: customLogger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logger.FromContextOrDefault(tt.ctx, defaultLogger)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestWithLogger(t *testing.T) {
	t.Run("valid_logger", func(t *testing.T) {
		customLogger, _ := logger.GetTestLogger(t)
		ctx := logger.WithLogger(context.Background(), customLogger)

		retrievedLogger := logger.FromContext(ctx)
		assert.Equal(t, customLogger, retrievedLogger)
	})

	t.Run("nil_logger_panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.WithLogger(context.Background(), nil)
		})
	})
}

func TestTestLogBufferEntries(t *testing.T) {
	log, buf := logger.GetTestLogger(t)

	log.Info("first entry", slog.String("component", "test"))
	log.Debug("second entry", slog.Int("count", 2))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "first entry", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
	assert.Equal(t, "second entry", entries[1]["msg"])
	assert.Equal(t, float64(2), entries[1]["count"])

	logger.AssertLogContains(t, buf, "first entry")
	logger.AssertLogField(t, buf, "component", "test")
}
