// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType represents the type of logging handler.
type HandlerType string

const (
	// JSONHandler outputs structured JSON logs.
	JSONHandler HandlerType = "json"
	// TextHandler outputs key=value text logs.
	TextHandler HandlerType = "text"
	// ConsoleHandler outputs human-readable colored logs.
	ConsoleHandler HandlerType = "console"
)

// Level represents log level.
type Level = slog.Level

const (
	// LevelDebug is the debug log level.
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var bgCtx = context.Background()

// redactedKeys are attribute keys whose values never reach the output.
// Route payloads loaded from manifests may carry upstream credentials.
var redactedKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"secret":        {},
	"api_key":       {},
	"authorization": {},
}

// Logger is a structured logger for the route tooling.
//
// Thread-safety: All public methods are safe for concurrent use.
type Logger struct {
	handlerType    HandlerType
	output         io.Writer
	level          *slog.LevelVar
	serviceName    string
	serviceVersion string
	addSource      bool
	replaceAttr    func(groups []string, a slog.Attr) slog.Attr
	customLogger   *slog.Logger
	useCustom      bool

	slogger *slog.Logger
}

// New creates a Logger. Without options it writes JSON at info level to stdout.
//
// Example:
//
//	logger, err := logging.New(
//	    logging.WithConsoleHandler(),
//	    logging.WithDebugLevel(),
//	)
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		handlerType: JSONHandler,
		output:      os.Stdout,
		level:       new(slog.LevelVar),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	l.slogger = slog.New(l.handler())

	return l, nil
}

// MustNew creates a Logger and panics on invalid configuration.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("logging: %v", err))
	}

	return l
}

// Validate checks the configuration.
func (l *Logger) Validate() error {
	if l.useCustom {
		if l.customLogger == nil {
			return ErrNilLogger
		}

		return nil
	}
	if l.output == nil {
		return ErrNilOutput
	}
	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHandler, l.handlerType)
	}

	return nil
}

func (l *Logger) handler() slog.Handler {
	if l.useCustom {
		return l.customLogger.Handler()
	}

	opts := &slog.HandlerOptions{
		Level:       l.level,
		AddSource:   l.addSource,
		ReplaceAttr: l.buildReplaceAttr(),
	}

	var h slog.Handler
	switch l.handlerType {
	case TextHandler:
		h = slog.NewTextHandler(l.output, opts)
	case ConsoleHandler:
		h = newConsoleHandler(l.output, opts)
	default:
		h = slog.NewJSONHandler(l.output, opts)
	}

	var attrs []slog.Attr
	if l.serviceName != "" {
		attrs = append(attrs, slog.String("service", l.serviceName))
	}
	if l.serviceVersion != "" {
		attrs = append(attrs, slog.String("version", l.serviceVersion))
	}
	if len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}

	return h
}

func (l *Logger) buildReplaceAttr() func(groups []string, a slog.Attr) slog.Attr {
	user := l.replaceAttr

	return func(groups []string, a slog.Attr) slog.Attr {
		if _, ok := redactedKeys[strings.ToLower(a.Key)]; ok {
			a = slog.String(a.Key, "***REDACTED***")
		}
		if user != nil {
			return user(groups, a)
		}

		return a
	}
}

// Logger returns the underlying slog.Logger.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// With returns a slog.Logger carrying the given attributes.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slogger.With(args...)
}

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	if !l.slogger.Enabled(bgCtx, level) {
		return
	}
	l.slogger.Log(bgCtx, level, msg, args...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level Level) error {
	if l.useCustom {
		return ErrCannotChangeLevel
	}
	l.level.Set(level)

	return nil
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}

	return level, nil
}
