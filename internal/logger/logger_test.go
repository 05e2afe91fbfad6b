package logger_test

import (
	"testing"

	"github.com/unations/tax-engine/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLoggerWithConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    logger.LoggerConfig
		wantLevel zapcore.Level
	}{
		{
			name:      "prod json at info",
			config:    logger.LoggerConfig{Level: "info", Stage: "prod", EnableJSON: true},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "local console at debug",
			config:    logger.LoggerConfig{Level: "debug", Stage: "local", EnableColor: true},
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "warning alias",
			config:    logger.LoggerConfig{Level: "WARNING", Stage: "dev", EnableJSON: true},
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "unknown level falls back to info",
			config:    logger.LoggerConfig{Level: "verbose", Stage: "test"},
			wantLevel: zapcore.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger.InitLoggerWithConfig(tt.config)
			require.NotNil(t, logger.Log)
			assert.True(t, logger.Log.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Log.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestForComponent(t *testing.T) {
	logger.InitLogger("test")
	l := logger.ForComponent(logger.ComponentCalculator)
	assert.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("component logger works") })
}

func TestInitLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	logger.InitLogger("prod")
	require.NotNil(t, logger.Log)
	assert.True(t, logger.Log.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, logger.Log.Core().Enabled(zapcore.WarnLevel))
}
