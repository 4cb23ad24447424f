// Package logging holds the zap logger shared by the catalog, conversion
// table and CLI. Library code logs at debug level only, so the default
// logger stays quiet.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger
var Logger *zap.Logger

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level; unknown levels mean warn
	Level string `json:"level" env:"DIMENSIONAL_LOG_LEVEL"`

	// Format is json or console
	Format string `json:"format" env:"DIMENSIONAL_LOG_FORMAT"`

	// Output is stdout, stderr or a file path
	Output string `json:"output" env:"DIMENSIONAL_LOG_OUTPUT"`
}

// DefaultConfig logs warnings and errors to stderr
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// Initialize replaces the global logger
func Initialize(cfg Config) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	sink, err := openSink(cfg.Output)
	if err != nil {
		return err
	}

	Logger = zap.New(zapcore.NewCore(newEncoder(cfg.Format), sink, level), zap.AddCaller())
	return nil
}

// InitializeDefault installs the DefaultConfig logger
func InitializeDefault() {
	_ = Initialize(DefaultConfig())
}

func newEncoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr", "":
		return zapcore.AddSync(os.Stderr), nil
	}

	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}

// Sync flushes the logger
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// Named returns a child logger for a component
func Named(component string) *zap.Logger {
	return Logger.Named(component)
}

// Debug logs at debug level
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Error logs at error level
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func init() {
	InitializeDefault()
}
