// Package logger provides the process-wide leveled logging API.
//
// The printf-style package functions are the only logging surface the rest
// of the codebase uses. Output format and destination are configured once
// at startup; the text format uses tint for readable terminal output, the
// json format uses the standard structured handler.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var (
	mu       sync.RWMutex
	level    = new(slog.LevelVar)
	delegate = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	}))
)

// Configure replaces the process logger per the logging configuration.
//
// format is "text" or "json"; output is "stdout", "stderr" or a file path
// (opened in append mode). Returns an error only when the output file
// cannot be opened.
func Configure(levelName, format, output string) error {
	SetLevel(levelName)

	var w io.Writer
	switch output {
	case "", "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log output: %w", err)
		}
		w = f
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		})
	}

	mu.Lock()
	delegate = slog.New(handler)
	mu.Unlock()
	return nil
}

// SetLevel adjusts the minimum level (DEBUG, INFO, WARN, ERROR).
func SetLevel(name string) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "INFO":
		level.Set(slog.LevelInfo)
	case "WARN":
		level.Set(slog.LevelWarn)
	case "ERROR":
		level.Set(slog.LevelError)
	}
}

func log(lvl slog.Level, format string, v ...any) {
	mu.RLock()
	l := delegate
	mu.RUnlock()
	if !l.Enabled(context.Background(), lvl) {
		return
	}
	l.Log(context.Background(), lvl, fmt.Sprintf(format, v...))
}

func Debug(format string, v ...any) {
	log(slog.LevelDebug, format, v...)
}

func Info(format string, v ...any) {
	log(slog.LevelInfo, format, v...)
}

func Warn(format string, v ...any) {
	log(slog.LevelWarn, format, v...)
}

func Error(format string, v ...any) {
	log(slog.LevelError, format, v...)
}
