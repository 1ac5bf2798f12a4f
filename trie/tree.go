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
	"fmt"
	"sort"
)

// MethodAny is the method key whose records match every method.
const MethodAny = ""

// Tree is a route index: the trie root plus a flat index of fully static
// paths, used to answer requests for dynamic-free routes without descending
// the trie.
//
// Thread safety: Insert and Remove must not run concurrently with each other
// or with lookups. Register all routes first, then serve lookups; lookups
// perform no writes and are safe for concurrent use. To change routes while
// serving, build a new Tree and swap it in atomically.
type Tree[T any] struct {
	root        *Node[T]
	staticIndex map[string]*Node[T] // Normalized static path -> node
	size        int
	diagnostics DiagnosticHandler
	equal       func(a, b T) bool
}

// Option configures a [Tree].
type Option func(*options)

type options struct {
	diagnostics DiagnosticHandler
	equal       any
}

// WithDiagnostics sets a handler for registration diagnostics such as
// parameter name conflicts and unreachable routes.
//
// Example:
//
//	t := trie.New[string](trie.WithDiagnostics(trie.DiagnosticHandlerFunc(func(e trie.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(o *options) {
		o.diagnostics = handler
	}
}

// WithEqual sets the payload equality used by [Tree.Remove].
// The function must have the signature func(a, b T) bool for the tree's T,
// otherwise New panics.
//
// Without it, pointers, funcs and channels compare by identity and
// everything else by [reflect.DeepEqual].
func WithEqual[T any](equal func(a, b T) bool) Option {
	return func(o *options) {
		o.equal = equal
	}
}

// New creates an empty Tree.
func New[T any](opts ...Option) *Tree[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	t := &Tree[T]{
		root:        newNode[T]("/"),
		staticIndex: make(map[string]*Node[T], 16),
		diagnostics: o.diagnostics,
		equal:       sameData[T],
	}
	if o.equal != nil {
		eq, ok := o.equal.(func(a, b T) bool)
		if !ok {
			panic(fmt.Sprintf("trie: WithEqual: want func(a, b %T) bool, got %T", *new(T), o.equal))
		}
		t.equal = eq
	}

	return t
}

// Root returns the root node, which represents the path "/".
func (t *Tree[T]) Root() *Node[T] {
	return t.root
}

// StaticPaths returns the fully static paths in the static index, sorted.
func (t *Tree[T]) StaticPaths() []string {
	paths := make([]string, 0, len(t.staticIndex))
	for p := range t.staticIndex {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

// StaticNode returns the node indexed under the normalized static path, or nil.
func (t *Tree[T]) StaticNode(path string) *Node[T] {
	return t.staticIndex[path]
}

// Len returns the number of registered records.
func (t *Tree[T]) Len() int {
	return t.size
}

// Equal reports whether two payloads are equal under the tree's equality,
// the one [Tree.Remove] uses.
func (t *Tree[T]) Equal(a, b T) bool {
	return t.equal(a, b)
}

// Insert registers data for method and pattern.
//
// Pattern syntax ("/" separates segments, empty segments are ignored):
//   - users         literal segment
//   - :id           parameter; :id? may be missing at the end of the path
//   - file-:name.:ext  mixed segment, matched with a sub-pattern
//   - *             unnamed single-segment parameter (_0, _1, ...), may be missing at the end
//   - **            catch-all of the remaining path, bound to "_", may be empty
//   - **:path       catch-all of the remaining path bound to "path" (also **path)
//
// A "*" segment is stored on the param child like any other single-segment
// parameter. The wildcard child is only used by "**" and "**:name", which
// span the rest of the path.
//
// Use [MethodAny] to register a record that matches every method.
// Records under the same method and position are tried in insertion order;
// a duplicate registration is appended after the existing ones and never wins.
//
// Insert panics with [ErrInvalidPattern] when a mixed segment does not
// compile; this is a configuration error caught at startup.
func (t *Tree[T]) Insert(method, path string, data T) {
	p, err := parsePattern(path)
	if err != nil {
		panic(err)
	}
	method = NormalizeMethod(method)

	n := t.root
	for _, seg := range p.segments {
		switch seg.kind {
		case segStatic:
			n = n.staticChild(seg.text)
		case segParam:
			n = n.paramChild()
			if seg.plain {
				t.bindParamName(n, p, seg.entry)
			}
		case segWildcard:
			n = n.wildcardChild()
		}
	}
	if p.pastCatchAll() {
		t.emit(DiagUnreachableRoute, "route continues past a catch-all segment and can never match", map[string]any{
			"method":  method,
			"pattern": p.normalized,
		})
	}

	for _, rec := range n.Records(method) {
		if rec.pattern == p.normalized {
			t.emit(DiagDuplicateRoute, "route registered more than once; the first registration wins", map[string]any{
				"method":  method,
				"pattern": p.normalized,
			})

			break
		}
	}

	n.addRecord(method, newRecord(method, p, data))
	t.size++

	if !p.dynamic {
		t.staticIndex[p.normalized] = n
	}
}

// bindParamName applies the first-registered-name rule to a plain parameter.
//
// A node has a single param child, so two routes naming the same position
// differently share it. The first plain name registered there is used for
// every later plain registration at that position.
func (t *Tree[T]) bindParamName(n *Node[T], p *pattern, entry int) {
	name := p.entries[entry].Name
	switch {
	case n.paramName == "":
		n.paramName = name
		n.key = ":" + name
	case n.paramName != name:
		t.emit(DiagParamNameConflict, "parameter name differs from the one registered first at this position", map[string]any{
			"pattern":    p.normalized,
			"registered": n.paramName,
			"ignored":    name,
		})
		p.entries[entry].Name = n.paramName
	}
}

// Walk calls fn for every record in the tree, depth first: the node's own
// records (by sorted method), then static children in sorted order, then
// the param child, then the wildcard child. Walk stops when fn returns false.
func (t *Tree[T]) Walk(fn func(rec *Record[T]) bool) {
	walk(t.root, fn)
}

func walk[T any](n *Node[T], fn func(rec *Record[T]) bool) bool {
	for _, m := range n.Methods() {
		for _, rec := range n.methods[m].records {
			if !fn(rec) {
				return false
			}
		}
	}
	for _, k := range n.StaticKeys() {
		if !walk(n.static[k], fn) {
			return false
		}
	}
	if n.param != nil && !walk(n.param, fn) {
		return false
	}
	if n.wildcard != nil && !walk(n.wildcard, fn) {
		return false
	}

	return true
}

// emit sends a diagnostic event if a handler is configured.
func (t *Tree[T]) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if t.diagnostics != nil {
		t.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}
