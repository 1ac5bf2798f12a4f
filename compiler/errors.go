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

package compiler

import "errors"

var (
	// ErrWildcardChildren indicates that a node reached through a catch-all
	// has descendants. Catch-alls are terminal for compilation.
	ErrWildcardChildren = errors.New("wildcard node has children")

	// ErrNoEncoder indicates that a payload has no Go source encoding.
	// Payloads of custom types implement [SourceEncoder] to provide one.
	ErrNoEncoder = errors.New("payload has no source encoding")

	// ErrInvalidName indicates that a routine or package name is not a Go identifier.
	ErrInvalidName = errors.New("name is not a valid Go identifier")

	// ErrMismatch indicates that a compiled matcher disagreed with the tree.
	ErrMismatch = errors.New("compiled matcher disagrees with tree")

	// ErrBloomFilterSizeZero indicates that the bloom filter size must be greater than zero.
	ErrBloomFilterSizeZero = errors.New("bloom filter size must be non-zero")

	// ErrBloomHashFunctionsInvalid indicates that the number of bloom hash functions must be positive.
	ErrBloomHashFunctionsInvalid = errors.New("bloom hash functions must be positive")
)
