// Package logging configures the process-wide slog logger. Interactive runs
// log human-readable text to stdout; the desktop app additionally tees into
// a size-rotated file so a session can be reconstructed after a crash
// report.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger builds a slog logger writing to w. json selects the JSON handler
// over the text handler.
func Logger(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// RotatingWriter returns a writer that appends to path and rotates the file
// at 10 MB, keeping three old copies.
func RotatingWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

// Setup installs the default logger: stdout plus a rotating log file when
// logDir is non-empty. Returns the logger for callers that want to hold it.
func Setup(logDir string, level slog.Level) *slog.Logger {
	var w io.Writer = os.Stdout
	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err == nil {
			w = io.MultiWriter(os.Stdout, RotatingWriter(filepath.Join(logDir, "radview.log")))
		}
	}
	logger := Logger(w, false, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a level name to a slog.Level, defaulting to Info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
