// log.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package log provides the logger used throughout astmops: a dual-handler
// slog.Logger that writes structured JSON to a rotating file and prints
// warnings and errors as text to stderr.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"slices"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with nil-safe methods (a nil *Logger silently
// discards Debug/Info and still emits Warn/Error via the default slog
// logger) and a callstack attribute on every record.
type Logger struct {
	*slog.Logger
	LogFile string
	Start   time.Time
}

// New creates a Logger that writes JSON records to dir/astmops.log
// (rotated via lumberjack) and text warnings/errors to stderr.
func New(level string, dir string) *Logger {
	if dir == "" {
		dir = "."
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "astmops.log"),
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	}

	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "":
		// keep default
	default:
		fmt.Fprintf(os.Stderr, "%s: invalid log level, using info\n", level)
	}

	h := newHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		Start:   time.Now(),
	}

	l.Info("astmops run starting", slog.Time("start", l.Start))

	if bi, ok := debug.ReadBuildInfo(); ok {
		l.Info("build", slog.String("go_version", bi.GoVersion), slog.String("path", bi.Path))
	}
	l.Info("system", slog.String("goarch", runtime.GOARCH), slog.String("goos", runtime.GOOS))

	return l
}

func (l *Logger) Debug(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(nil, slog.LevelDebug) {
		args = append([]any{slog.Any("callstack", Callstack(nil).Strings())}, args...)
		l.Logger.Debug(msg, args...)
	}
}

func (l *Logger) Debugf(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(nil, slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(msg, args...), slog.Any("callstack", Callstack(nil).Strings()))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(nil, slog.LevelInfo) {
		args = append([]any{slog.Any("callstack", Callstack(nil).Strings())}, args...)
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l != nil && l.Logger.Enabled(nil, slog.LevelInfo) {
		l.Logger.Info(fmt.Sprintf(msg, args...), slog.Any("callstack", Callstack(nil).Strings()))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	args = append([]any{slog.Any("callstack", Callstack(nil).Strings())}, args...)
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	if l == nil {
		slog.Warn(fmt.Sprintf(msg, args...), slog.Any("callstack", Callstack(nil).Strings()))
	} else {
		l.Logger.Warn(fmt.Sprintf(msg, args...), slog.Any("callstack", Callstack(nil).Strings()))
	}
}

func (l *Logger) Error(msg string, args ...any) {
	args = append([]any{slog.Any("callstack", Callstack(nil).Strings())}, args...)
	if l == nil {
		slog.Error(msg, args...)
	} else {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) Errorf(msg string, args ...any) {
	if l == nil {
		slog.Error(fmt.Sprintf(msg, args...), slog.Any("callstack", Callstack(nil).Strings()))
	} else {
		l.Logger.Error(fmt.Sprintf(msg, args...), slog.Any("callstack", Callstack(nil).Strings()))
	}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		Start:   l.Start,
	}
}

///////////////////////////////////////////////////////////////////////////

// handler sends records to a JSON handler (for the rotated log file) and
// a text handler (warnings/errors to stderr).
type handler struct {
	json slog.Handler
	txt  slog.Handler
}

func newHandler(w io.Writer, opts *slog.HandlerOptions) *handler {
	return &handler{
		json: slog.NewJSONHandler(w, opts),
		txt:  slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.json.Enabled(ctx, level) || h.txt.Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, rec slog.Record) error {
	if h.txt.Enabled(ctx, rec.Level) {
		_ = h.txt.Handle(ctx, rec)
	}
	if h.json.Enabled(ctx, rec.Level) {
		return h.json.Handle(ctx, rec)
	}
	return nil
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{
		json: h.json.WithAttrs(slices.Clone(attrs)),
		txt:  h.txt.WithAttrs(slices.Clone(attrs)),
	}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return &handler{
		json: h.json.WithGroup(name),
		txt:  h.txt.WithGroup(name),
	}
}
