// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// sync client.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// Application code passes *Logger by pointer and obtains request-scoped
// loggers via FromContext or FromRequest.
//
// Passwords, derived keys and snapshot contents are never logged.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
}

// NewLogger builds a JSON logger writing to w with a "role" field, a
// timestamp and the calling function name.
func NewLogger(w io.Writer, role, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).Level(lvl).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewClientLogger writes to a "logs" file next to the executable so the
// terminal stays free for command output. It falls back to stderr when the
// file cannot be opened.
func NewClientLogger(role, level string) *Logger {
	var out io.Writer = os.Stderr

	execPath, err := os.Executable()
	if err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "logs")
		logFile, openErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr == nil {
			out = logFile
		}
	}

	return NewLogger(out, role, level)
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// ForFamily returns a child logger tagged with the family id.
func (l *Logger) ForFamily(familyID string) *Logger {
	return &Logger{l.With().Str("family_id", familyID).Logger()}
}

// WithContext attaches the logger to ctx for FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or a disabled logger
// when there is none.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
