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

package metrics

import "errors"

var (
	// ErrNilMeterProvider indicates a nil meter provider was provided.
	ErrNilMeterProvider = errors.New("meter provider is nil")

	// ErrInvalidBuckets indicates histogram bucket boundaries that are empty
	// or not strictly increasing.
	ErrInvalidBuckets = errors.New("bucket boundaries must be non-empty and strictly increasing")

	// ErrEmptyMatcherName indicates an empty matcher name.
	ErrEmptyMatcherName = errors.New("matcher name cannot be empty")
)
