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

package trie

// DiagnosticEvent reports a registration anomaly.
//
// Diagnostics are optional: the tree behaves the same whether they are
// collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagParamNameConflict is emitted when a plain parameter is registered
	// under a different name than the one already bound at its position.
	// The earlier name is used for the new route.
	DiagParamNameConflict DiagnosticKind = "param_name_conflict"

	// DiagUnreachableRoute is emitted when a pattern has segments after a
	// catch-all. Such a route is stored but can never be matched.
	DiagUnreachableRoute DiagnosticKind = "route_unreachable"

	// DiagDuplicateRoute is emitted when the same method and pattern are
	// registered again.
	DiagDuplicateRoute DiagnosticKind = "route_duplicate"
)

// DiagnosticHandler receives diagnostic events from the tree.
//
// Example with logging:
//
//	handler := trie.DiagnosticHandlerFunc(func(e trie.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	t := trie.New[string](trie.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
