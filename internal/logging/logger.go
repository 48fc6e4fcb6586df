// Package logging provides the single shared logger used across the
// organizer core: the pipeline, the scheduler loop, and the CLI all take a
// *Logger rather than reaching for a package-level global.
//
// The call surface (Info/Warn/Error/Debug/Success/Count/Fatal, plus the
// formatted *f variants) sits on top of a zap.SugaredLogger, so log output
// gets structured fields, proper level filtering, and JSON output for free
// instead of a bespoke line format.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Settings controls where logs go and how verbose they are.
//
// Modes:
//   - NoLogs=true  => human-readable console encoding to stdout, no files.
//   - NoLogs=false => JSON lines written to LogDir/deskcraft.log, with
//     stdout/stderr also receiving output.
type Settings struct {
	NoLogs bool
	LogDir string
}

// Logger wraps a zap.SugaredLogger with the COUNT/SUCCESS custom levels
// the organizer core's run-summary reporting relies on, gated by an
// optional logging.json config file.
type Logger struct {
	sugar  *zap.SugaredLogger
	levels map[string]bool
}

// New initializes a Logger.
//
// Behavior:
//   - Reads configDir/logging.json (if present) to determine which custom
//     levels (COUNT, SUCCESS) are enabled; DEBUG/INFO/WARN/ERROR are always
//     passed through to zap's own level filter.
//   - If settings.NoLogs is false, settings.LogDir must be set and is
//     created eagerly so permission problems surface at startup rather than
//     mid-run.
func New(configDir string, settings Settings) (*Logger, error) {
	levels, err := loadLevels(configDir)
	if err != nil {
		return nil, err
	}

	zapLogger, err := buildZapLogger(settings)
	if err != nil {
		return nil, err
	}

	return &Logger{sugar: zapLogger.Sugar(), levels: levels}, nil
}

func buildZapLogger(settings Settings) (*zap.Logger, error) {
	if settings.NoLogs {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.OutputPaths = []string{"stdout"}
		return cfg.Build()
	}

	if settings.LogDir == "" {
		return nil, fmt.Errorf("log dir is empty (settings.LogDir)")
	}
	if err := os.MkdirAll(settings.LogDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logFile := filepath.Join(settings.LogDir, "deskcraft.log")

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{logFile, "stdout"}
	cfg.ErrorOutputPaths = []string{logFile, "stderr"}
	return cfg.Build()
}

// loadLevels loads the COUNT/SUCCESS enable flags from logging.json.
//
// Policy for unknown levels (fail-open): if logging.json doesn't mention a
// level, it is treated as enabled rather than silently dropped.
func loadLevels(configDir string) (map[string]bool, error) {
	path := filepath.Join(configDir, "logging.json")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{"COUNT": true, "SUCCESS": true}, nil
		}
		return nil, fmt.Errorf("stat logging config: %w", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logging config: %w", err)
	}

	var levels map[string]bool
	if err := json.Unmarshal(b, &levels); err != nil {
		return nil, fmt.Errorf("parse logging config: %w", err)
	}
	return levels, nil
}

// Enabled reports whether a custom level (COUNT, SUCCESS) is turned on.
// Standard zap levels are gated by zap itself, not by this map.
func (l *Logger) Enabled(level string) bool {
	level = strings.ToUpper(strings.TrimSpace(level))
	enabled, ok := l.levels[level]
	return !ok || enabled
}

func (l *Logger) Debug(msg string) { l.sugar.Debug(msg) }
func (l *Logger) Info(msg string)  { l.sugar.Info(msg) }
func (l *Logger) Warn(msg string)  { l.sugar.Warn(msg) }
func (l *Logger) Error(msg string) { l.sugar.Error(msg) }

// Success logs an operation that completed as intended. Routed through
// Info with a "level":"SUCCESS" field so log consumers can filter on it
// without a bespoke file.
func (l *Logger) Success(msg string) {
	if !l.Enabled("SUCCESS") {
		return
	}
	l.sugar.Infow(msg, "level", "SUCCESS")
}

// Count logs a summary counter (files moved/skipped/errored per run). Kept
// distinct from Info so run summaries are easy to grep out of JSON logs.
func (l *Logger) Count(msg string) {
	if !l.Enabled("COUNT") {
		return
	}
	l.sugar.Infow(msg, "level", "COUNT")
}

// Fatal logs the message and exits the process with code 1.
//
// IMPORTANT: os.Exit terminates immediately; deferred Sync()/Close() calls
// do not run. Use only for unrecoverable startup failures.
func (l *Logger) Fatal(msg string) { l.sugar.Fatal(msg) }

func (l *Logger) Debugf(format string, args ...any)   { l.Debug(fmt.Sprintf(format, args...)) }
func (l *Logger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)    { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l *Logger) Successf(format string, args ...any) { l.Success(fmt.Sprintf(format, args...)) }
func (l *Logger) Countf(format string, args ...any)   { l.Count(fmt.Sprintf(format, args...)) }
func (l *Logger) Fatalf(format string, args ...any)   { l.Fatal(fmt.Sprintf(format, args...)) }

// Sync flushes any buffered log entries. Callers should defer this after a
// successful New().
func (l *Logger) Sync() error { return l.sugar.Sync() }
