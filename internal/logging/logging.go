// Package logging builds the zap loggers used across shape-census.
//
// Logs always go to stderr: stdout carries CLI reports and the MCP protocol.
package logging

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// EnvLogLevel names the environment variable that can force debug logging.
const EnvLogLevel = "SHAPE_CENSUS_LOG_LEVEL"

// NewLoggerConfig returns the console config shared by every logger:
// ISO8601 timestamps, colored levels, short callers and no stacktraces.
func NewLoggerConfig() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// DebugFromEnv reports whether EnvLogLevel asks for debug output.
func DebugFromEnv() bool {
	return strings.EqualFold(os.Getenv(EnvLogLevel), "debug")
}

// NewLogger returns a named logger at info level, or debug level when debug
// is set. It falls back to a no-op logger if zap cannot open stderr.
func NewLogger(name string, debug bool) *zap.SugaredLogger {
	cfg := NewLoggerConfig()
	if debug {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Named(name).Sugar()
}

// NewTestLogger returns a debug logger that writes through tb.
func NewTestLogger(tb testing.TB) *zap.SugaredLogger {
	return zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel)).Sugar()
}

// NewObservedTestLogger is like NewTestLogger but also records every entry
// so tests can assert on what was logged.
func NewObservedTestLogger(tb testing.TB) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	tee := zapcore.NewTee(zaptest.NewLogger(tb, zaptest.Level(zap.DebugLevel)).Core(), core)
	return zap.New(tee).Sugar(), logs
}
