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

package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat indicates a manifest format with no registered codec.
	ErrUnknownFormat = errors.New("unknown manifest format")

	// ErrMissingHandler indicates a route with neither a handler nor a name,
	// after defaults are applied.
	ErrMissingHandler = errors.New("route has no handler")
)

// Error is a manifest error with the context it occurred in.
type Error struct {
	Source    string // File path or "inline"
	Field     string // Offending field such as "routes[2]" (optional)
	Operation string // "read", "decode", "validate", "bind", "merge", "build" or "encode"
	Err       error  // The underlying error
}

// Error returns a formatted error message with context information.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("manifest error in %s.%s during %s: %v",
			e.Source, e.Field, e.Operation, e.Err)
	}

	return fmt.Sprintf("manifest error in %s during %s: %v",
		e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(source, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}

func newFieldError(source, field, operation string, err error) *Error {
	return &Error{
		Source:    source,
		Field:     field,
		Operation: operation,
		Err:       err,
	}
}
