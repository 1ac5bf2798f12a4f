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

// Package logging provides structured logging for the route tooling, built
// on [log/slog].
//
// A [Logger] is configured with functional options and writes JSON, text or
// colored console output:
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithServiceName("pathtrie"),
//	)
//	logger.Info("routes loaded", "count", 42)
//
// Attributes named password, token, secret, api_key or authorization are
// redacted.
//
// # Trie diagnostics
//
// [DiagnosticHandler] adapts a Logger into a trie.DiagnosticHandler, so
// parameter name conflicts, unreachable routes and duplicate registrations
// are reported while routes are registered:
//
//	t := trie.New[string](trie.WithDiagnostics(logging.DiagnosticHandler(logger)))
//
// # Testing
//
// [NewTestLogger], [ParseJSONLogEntries] and [TestHelper] capture and inspect
// log output in tests.
package logging
