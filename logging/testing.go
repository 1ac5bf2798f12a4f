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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// LogEntry represents a parsed log entry for testing.
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
	Attrs   map[string]any
}

// NewTestLogger creates a [Logger] for testing with an in-memory buffer.
// The returned buffer can be used with [ParseJSONLogEntries] to inspect log output.
func NewTestLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := MustNew(
		WithJSONHandler(),
		WithOutput(buf),
		WithLevel(LevelDebug),
	)

	return logger, buf
}

// ParseJSONLogEntries parses JSON log lines from buf without consuming it.
func ParseJSONLogEntries(buf *bytes.Buffer) ([]LogEntry, error) {
	var entries []LogEntry

	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal(line, &raw); err != nil {
			return nil, fmt.Errorf("parse log line %q: %w", line, err)
		}

		entry := LogEntry{Attrs: make(map[string]any)}
		for k, v := range raw {
			switch k {
			case slog.TimeKey:
				if s, ok := v.(string); ok {
					entry.Time, _ = time.Parse(time.RFC3339Nano, s)
				}
			case slog.LevelKey:
				entry.Level, _ = v.(string)
			case slog.MessageKey:
				entry.Message, _ = v.(string)
			default:
				entry.Attrs[k] = v
			}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// TestHelper wraps a test logger and its buffer.
type TestHelper struct {
	t      testing.TB
	Logger *Logger
	buf    *bytes.Buffer
}

// NewTestHelper creates a TestHelper with a debug-level JSON logger.
func NewTestHelper(t testing.TB) *TestHelper {
	t.Helper()
	logger, buf := NewTestLogger()

	return &TestHelper{t: t, Logger: logger, buf: buf}
}

// Logs returns every entry written so far. It fails the test on parse errors.
func (th *TestHelper) Logs() []LogEntry {
	th.t.Helper()
	entries, err := ParseJSONLogEntries(th.buf)
	require.NoError(th.t, err)

	return entries
}

// LastLog returns the most recent entry. It fails the test if there is none.
func (th *TestHelper) LastLog() LogEntry {
	th.t.Helper()
	entries := th.Logs()
	require.NotEmpty(th.t, entries, "no log entries found")

	return entries[len(entries)-1]
}

// ContainsLog reports whether any entry has the given message.
func (th *TestHelper) ContainsLog(msg string) bool {
	th.t.Helper()
	for _, entry := range th.Logs() {
		if entry.Message == msg {
			return true
		}
	}

	return false
}

// CountLevel returns the number of entries at level ("DEBUG", "INFO", ...).
func (th *TestHelper) CountLevel(level string) int {
	th.t.Helper()
	count := 0
	for _, entry := range th.Logs() {
		if entry.Level == level {
			count++
		}
	}

	return count
}

// Reset clears the buffer.
func (th *TestHelper) Reset() {
	th.buf.Reset()
}
