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

import (
	"regexp"
	"strings"
)

// Match is the result of a successful lookup.
type Match[T any] struct {
	Data   T                 // Payload supplied at registration
	Params map[string]string // Extracted parameters; nil when the route has none
}

// ParamEntry describes how one captured segment becomes parameter values.
type ParamEntry struct {
	Index    int            // Segment index in the request path
	Name     string         // Parameter name (empty when Pattern is set)
	Pattern  *regexp.Regexp // Sub-pattern for mixed literal/dynamic segments
	Optional bool           // The segment may be missing at the end of the path
	CatchAll bool           // Captures segments[Index:] joined by "/"
}

// Record is one registration: the caller's payload plus the recipe for
// turning matched segments into parameters.
type Record[T any] struct {
	data     T
	method   string
	pattern  string
	params   []ParamEntry
	weight   int  // Number of sub-pattern conditions
	optional bool // Last parameter is optional-trailing
}

func newRecord[T any](method string, p *pattern, data T) *Record[T] {
	rec := &Record[T]{
		data:    data,
		method:  method,
		pattern: p.normalized,
		params:  p.entries,
	}
	for _, e := range p.entries {
		if e.Pattern != nil {
			rec.weight++
		}
	}
	if n := len(p.entries); n > 0 {
		rec.optional = p.entries[n-1].Optional
	}

	return rec
}

// Data returns the payload.
func (r *Record[T]) Data() T {
	return r.data
}

// Method returns the method key the record is registered under.
func (r *Record[T]) Method() string {
	return r.method
}

// Pattern returns the normalized pattern the record was registered with.
func (r *Record[T]) Pattern() string {
	return r.pattern
}

// Params returns the parameter map of the record.
// The returned slice must not be modified.
func (r *Record[T]) Params() []ParamEntry {
	return r.params
}

// Weight returns the number of sub-pattern conditions of the record.
func (r *Record[T]) Weight() int {
	return r.weight
}

// Optional reports whether the record's last parameter is optional-trailing.
func (r *Record[T]) Optional() bool {
	return r.optional
}

// Eligible reports whether every sub-pattern of the record accepts its segment.
func (r *Record[T]) Eligible(segs []string) bool {
	if r.weight == 0 {
		return true
	}
	for i := range r.params {
		e := &r.params[i]
		if e.Pattern == nil {
			continue
		}
		if e.Index >= len(segs) || !e.Pattern.MatchString(segs[e.Index]) {
			return false
		}
	}

	return true
}

// Extract builds the parameter mapping for segs.
// Optional parameters whose segment is missing are left out.
func (r *Record[T]) Extract(segs []string) map[string]string {
	if len(r.params) == 0 {
		return nil
	}

	params := make(map[string]string, len(r.params))
	for i := range r.params {
		e := &r.params[i]
		switch {
		case e.CatchAll:
			if e.Index < len(segs) {
				params[e.Name] = strings.Join(segs[e.Index:], "/")
			} else {
				params[e.Name] = ""
			}
		case e.Index >= len(segs):
			// optional segment absent
		case e.Pattern != nil:
			extractGroups(e.Pattern, segs[e.Index], params)
		default:
			params[e.Name] = segs[e.Index]
		}
	}

	return params
}

// extractGroups copies the named groups of re matched against s into params.
func extractGroups(re *regexp.Regexp, s string, params map[string]string) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return
	}
	for i, name := range re.SubexpNames() {
		if i > 0 && name != "" {
			params[name] = m[i]
		}
	}
}
