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
	"log/slog"
	"slices"

	"rivaas.dev/pathtrie/trie"
)

// DiagnosticHandler returns a [trie.DiagnosticHandler] that logs every
// registration diagnostic at warn level. The record carries the diagnostic
// kind under "kind" and each event field as its own attribute, in key order.
//
// Example:
//
//	logger := logging.MustNew(logging.WithConsoleHandler())
//	t := trie.New[string](trie.WithDiagnostics(logging.DiagnosticHandler(logger)))
func DiagnosticHandler(l *Logger) trie.DiagnosticHandler {
	return trie.DiagnosticHandlerFunc(func(e trie.DiagnosticEvent) {
		l.log(LevelWarn, e.Message, diagnosticArgs(e)...)
	})
}

func diagnosticArgs(e trie.DiagnosticEvent) []any {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	args := make([]any, 0, len(keys)+1)
	args = append(args, slog.String("kind", string(e.Kind)))
	for _, k := range keys {
		args = append(args, slog.Any(k, e.Fields[k]))
	}

	return args
}
