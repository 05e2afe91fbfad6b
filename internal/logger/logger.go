package logger

import (
	"os"
	"strings"

	"github.com/unations/tax-engine/internal/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It stays nil until InitLogger runs; the
// package helpers fall back to a no-op logger meanwhile.
var Log *zap.Logger

// LogComponent tags log lines with the engine component that produced them
type LogComponent string

const (
	ComponentAPI        LogComponent = "api"
	ComponentDB         LogComponent = "database"
	ComponentCache      LogComponent = "cache"
	ComponentCalculator LogComponent = "calculator"
	ComponentExemption  LogComponent = "exemption"
	ComponentFiling     LogComponent = "filing"
	ComponentCompliance LogComponent = "compliance"
	ComponentMiddleware LogComponent = "middleware"
	ComponentWorker     LogComponent = "worker"
)

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level       string `json:"level"`
	Stage       string `json:"stage"`
	EnableJSON  bool   `json:"enable_json"`
	EnableColor bool   `json:"enable_color"`
}

// InitLogger configures Log for a deployment stage. Deployed stages log JSON
// for CloudWatch; local runs get a coloured console. LOG_LEVEL overrides info.
func InitLogger(stage string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	InitLoggerWithConfig(LoggerConfig{
		Level:       level,
		Stage:       stage,
		EnableJSON:  stage == constants.ProdEnvironment || stage == "dev",
		EnableColor: stage == "local",
	})
}

// InitLoggerWithConfig replaces Log with a logger built from config
func InitLoggerWithConfig(config LoggerConfig) {
	level := parseLevel(config.Level)

	var zapConfig zap.Config
	if config.EnableJSON {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.TimeKey = "timestamp"
		zapConfig.EncoderConfig.MessageKey = "message"
		zapConfig.InitialFields = map[string]interface{}{
			"service": constants.ServiceName,
			"stage":   config.Stage,
		}
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if config.EnableColor {
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zapConfig.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// stack traces in prod only when debugging
	zapConfig.DisableStacktrace = config.Stage == constants.ProdEnvironment && level > zapcore.DebugLevel

	built, err := zapConfig.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = built
}

// parseLevel accepts zap level names plus "warning"; anything else is info
func parseLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return zapcore.WarnLevel
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil || level < zapcore.DebugLevel || level > zapcore.FatalLevel {
		return zapcore.InfoLevel
	}
	return level
}

func ensure() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

// ForComponent returns a child logger tagged with the given component
func ForComponent(component LogComponent) *zap.Logger {
	return ensure().With(zap.String("component", string(component)))
}

func Info(msg string, fields ...zapcore.Field)  { ensure().Info(msg, fields...) }
func Error(msg string, fields ...zapcore.Field) { ensure().Error(msg, fields...) }
func Debug(msg string, fields ...zapcore.Field) { ensure().Debug(msg, fields...) }
func Warn(msg string, fields ...zapcore.Field)  { ensure().Warn(msg, fields...) }

// Fatal logs at FatalLevel and exits the process
func Fatal(msg string, fields ...zapcore.Field) { ensure().Fatal(msg, fields...) }

// With creates a child logger carrying fields
func With(fields ...zapcore.Field) *zap.Logger {
	return ensure().With(fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return ensure().Sync()
}
