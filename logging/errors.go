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

import "errors"

// Error types for better error handling and testing.
var (
	// ErrNilLogger indicates a nil custom logger was provided.
	ErrNilLogger = errors.New("custom logger is nil")

	// ErrInvalidHandler indicates an unsupported handler type.
	ErrInvalidHandler = errors.New("invalid handler type")

	// ErrNilOutput indicates a nil output writer was provided.
	ErrNilOutput = errors.New("output writer is nil")

	// ErrInvalidLevel indicates a level name that does not parse.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrCannotChangeLevel indicates the level cannot be changed on a custom logger.
	ErrCannotChangeLevel = errors.New("cannot change level on custom logger")
)
