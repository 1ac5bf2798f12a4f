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
	"fmt"
	"maps"
	"sort"
	"strings"

	"rivaas.dev/pathtrie/trie"
)

// Probe is one request used to check a compiled matcher against its tree.
type Probe struct {
	Method string
	Path   string
}

// Probes derives requests from the registered routes: each pattern with its
// dynamic segments filled in, with a trailing slash, with one segment more
// and one segment less, under its own method and under the method "PROBE".
// The result is sorted and free of duplicates.
func Probes[T any](t *trie.Tree[T]) []Probe {
	seen := make(map[Probe]struct{})
	add := func(method, path string) {
		seen[Probe{Method: method, Path: path}] = struct{}{}
	}

	t.Walk(func(rec *trie.Record[T]) bool {
		method := rec.Method()
		if method == trie.MethodAny {
			method = "GET"
		}
		segs := sample(rec.Pattern())
		path := "/" + strings.Join(segs, "/")

		for _, m := range []string{method, "PROBE"} {
			add(m, path)
			add(m, path+"/")
			add(m, path+"/extra")
			if len(segs) > 0 {
				add(m, "/"+strings.Join(segs[:len(segs)-1], "/"))
			}
		}

		return true
	})

	probes := make([]Probe, 0, len(seen))
	for p := range seen {
		probes = append(probes, p)
	}
	sort.Slice(probes, func(i, j int) bool {
		if probes[i].Path != probes[j].Path {
			return probes[i].Path < probes[j].Path
		}
		return probes[i].Method < probes[j].Method
	})

	return probes
}

// sample fills the dynamic segments of a normalized pattern with values.
func sample(pattern string) []string {
	segs := trie.SplitPath(pattern)
	out := make([]string, 0, len(segs)+1)
	for i, s := range segs {
		switch {
		case strings.HasPrefix(s, "**"):
			out = append(out, "rest", "of", "path")
		case s == "*" || isPlainParam(s):
			out = append(out, fmt.Sprintf("v%d", i))
		case strings.Contains(s, ":"):
			out = append(out, fillMixed(s))
		default:
			out = append(out, s)
		}
	}

	return out
}

// isPlainParam reports whether s is exactly ":name" or ":name?".
func isPlainParam(s string) bool {
	s = strings.TrimSuffix(s, "?")
	if len(s) < 2 || s[0] != ':' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return false
		}
	}

	return true
}

// fillMixed replaces each ":name" token of a mixed segment with "x".
func fillMixed(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			b.WriteByte(s[i])
			continue
		}
		b.WriteByte('x')
		for i+1 < len(s) && isWordByte(s[i+1]) {
			i++
		}
	}

	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// Verify runs every probe through fn and t.Lookup and reports the first
// disagreement. Payloads are compared with [trie.Tree.Equal].
func Verify[T any](t *trie.Tree[T], fn Func[T], probes []Probe) error {
	for _, p := range probes {
		want, wantOK := t.Lookup(p.Method, p.Path)
		got, gotOK := fn(p.Method, p.Path)
		if wantOK != gotOK {
			return fmt.Errorf("%w: %s %s: tree hit=%t, compiled hit=%t", ErrMismatch, p.Method, p.Path, wantOK, gotOK)
		}
		if !wantOK {
			continue
		}
		if err := sameMatch(t, want, got); err != nil {
			return fmt.Errorf("%s %s: %w", p.Method, p.Path, err)
		}
	}

	return nil
}

// VerifyAll is [Verify] for match-all routines.
func VerifyAll[T any](t *trie.Tree[T], fn AllFunc[T], probes []Probe) error {
	for _, p := range probes {
		want := t.LookupAll(p.Method, p.Path)
		got := fn(p.Method, p.Path)
		if len(want) != len(got) {
			return fmt.Errorf("%w: %s %s: tree has %d matches, compiled has %d", ErrMismatch, p.Method, p.Path, len(want), len(got))
		}
		for i := range want {
			if err := sameMatch(t, want[i], got[i]); err != nil {
				return fmt.Errorf("%s %s: match %d: %w", p.Method, p.Path, i, err)
			}
		}
	}

	return nil
}

func sameMatch[T any](t *trie.Tree[T], want, got trie.Match[T]) error {
	if !t.Equal(want.Data, got.Data) {
		return fmt.Errorf("%w: payload differs", ErrMismatch)
	}
	if (want.Params == nil) != (got.Params == nil) || !maps.Equal(want.Params, got.Params) {
		return fmt.Errorf("%w: params %v, compiled %v", ErrMismatch, want.Params, got.Params)
	}

	return nil
}
