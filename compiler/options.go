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

import (
	"go/token"
	"strconv"
)

const (
	// DefaultBloomThreshold is the static table size from which negative
	// lookups are screened by a bloom filter. Below it, the map is probed directly.
	DefaultBloomThreshold = 10

	// DefaultPackageName is the qualifier generated source uses for the trie package.
	DefaultPackageName = "trie"

	// TriePackagePath is the import path of the trie package.
	TriePackagePath = "rivaas.dev/pathtrie/trie"

	bloomBitsPerKey = 10
	bloomHashFuncs  = 3
)

// Option configures compilation.
type Option func(*options)

type options struct {
	matchAll       bool
	packageName    string
	bloomThreshold int
	encoder        Encoder
}

func defaultOptions() *options {
	return &options{
		packageName:    DefaultPackageName,
		bloomThreshold: DefaultBloomThreshold,
	}
}

func newOptions(opts []Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if !token.IsIdentifier(o.packageName) {
		return nil, &NameError{Kind: "package", Name: o.packageName}
	}

	return o, nil
}

// WithMatchAll makes [Source] and [File] emit a routine returning every
// match, most specific first, instead of the first one.
func WithMatchAll() Option {
	return func(o *options) {
		o.matchAll = true
	}
}

// WithPackageName sets the identifier generated source uses to refer to the
// trie package. The default is "trie"; any other name is emitted as an
// import alias by [File].
func WithPackageName(name string) Option {
	return func(o *options) {
		o.packageName = name
	}
}

// WithBloomThreshold sets the number of static paths from which the compiled
// static table is screened by a bloom filter. Zero or a negative value
// disables the filter.
func WithBloomThreshold(n int) Option {
	return func(o *options) {
		o.bloomThreshold = n
	}
}

// WithEncoder sets the payload encoder used by [Source] and [File].
// The encoder is tried first; when it returns [ErrNoEncoder] the built-in
// encoding is used.
func WithEncoder(enc Encoder) Option {
	return func(o *options) {
		o.encoder = enc
	}
}

// NameError reports an identifier that cannot be used in generated source.
type NameError struct {
	Kind string // "routine" or "package"
	Name string
}

func (e *NameError) Error() string {
	return "compiler: " + e.Kind + " name " + strconv.Quote(e.Name) + ": " + ErrInvalidName.Error()
}

func (e *NameError) Unwrap() error {
	return ErrInvalidName
}
