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
	"strings"

	"rivaas.dev/pathtrie/trie"
)

// Func is a compiled single-match routine. It returns the same result as
// [trie.Tree.Lookup] on the tree it was compiled from.
type Func[T any] func(method, path string) (trie.Match[T], bool)

// AllFunc is a compiled match-all routine. It returns the same result as
// [trie.Tree.LookupAll] on the tree it was compiled from.
type AllFunc[T any] func(method, path string) []trie.Match[T]

// Compile flattens t into a single-match routine.
//
// The routine is a tree of closures built once: method dispatch, literal
// comparisons and parameter keys are fixed at build time, so a call only
// compares segments and allocates the result. It holds no mutable state and
// is safe for concurrent use. Later changes to t are not reflected.
//
// Compile fails with [ErrWildcardChildren] when a catch-all has descendants.
func Compile[T any](t *trie.Tree[T], opts ...Option) (Func[T], error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	c, err := newCompilation(t)
	if err != nil {
		return nil, err
	}

	table, err := c.staticTable(t, o.bloomThreshold)
	if err != nil {
		return nil, err
	}
	root := c.matcher(t.Root(), 0)

	return func(method, path string) (trie.Match[T], bool) {
		method = trie.NormalizeMethod(method)
		path = trie.TrimTrailingSlash(path)

		if e := table.lookup(method, path); e != nil {
			return trie.Match[T]{Data: e.data}, true
		}

		segs := trie.SplitPath(path)
		e := root(method, segs)
		if e == nil {
			return trie.Match[T]{}, false
		}

		return trie.Match[T]{Data: e.data, Params: e.extract(segs)}, true
	}, nil
}

// CompileAll flattens t into a match-all routine.
// See [Compile] for the build-time guarantees.
func CompileAll[T any](t *trie.Tree[T], opts ...Option) (AllFunc[T], error) {
	if _, err := newOptions(opts); err != nil {
		return nil, err
	}
	c, err := newCompilation(t)
	if err != nil {
		return nil, err
	}
	root := c.collector(t.Root(), 0)

	return func(method, path string) []trie.Match[T] {
		method = trie.NormalizeMethod(method)
		segs := trie.SplitPath(trie.TrimTrailingSlash(path))

		var groups [][]*entry[T]
		root(method, segs, &groups)
		if len(groups) == 0 {
			return nil
		}

		var out []trie.Match[T]
		for g := len(groups) - 1; g >= 0; g-- {
			for _, e := range groups[g] {
				out = append(out, trie.Match[T]{Data: e.data, Params: e.extract(segs)})
			}
		}

		return out
	}, nil
}

// Validate reports whether t can be compiled.
func Validate[T any](t *trie.Tree[T]) error {
	return validate(t.Root(), "")
}

// validate rejects catch-all nodes that have descendants.
func validate[T any](n *trie.Node[T], prefix string) error {
	for _, k := range n.StaticKeys() {
		if err := validate(n.Static(k), prefix+"/"+k); err != nil {
			return err
		}
	}
	if p := n.Param(); p != nil {
		if err := validate(p, prefix+"/"+p.Key()); err != nil {
			return err
		}
	}
	if w := n.Wildcard(); w != nil && w.HasChildren() {
		return fmt.Errorf("%w: %s/%s", ErrWildcardChildren, prefix, w.Key())
	}

	return nil
}

// compilation holds per-build state shared by the closures it produces.
type compilation[T any] struct {
	entries map[*trie.Record[T]]*entry[T]
}

func newCompilation[T any](t *trie.Tree[T]) (*compilation[T], error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	return &compilation[T]{entries: make(map[*trie.Record[T]]*entry[T], t.Len())}, nil
}

// entry is a compiled record.
type entry[T any] struct {
	data     T
	optional bool
	accept   func(segs []string) bool // Nil when the record has no sub-patterns
	binders  []func(segs []string, params map[string]string)
}

// eligible reports whether every sub-pattern of the record accepts segs.
func (e *entry[T]) eligible(segs []string) bool {
	return e.accept == nil || e.accept(segs)
}

// extract builds the parameter map. It returns nil for records without parameters.
func (e *entry[T]) extract(segs []string) map[string]string {
	if len(e.binders) == 0 {
		return nil
	}
	params := make(map[string]string, len(e.binders))
	for _, bind := range e.binders {
		bind(segs, params)
	}

	return params
}

// compiled returns the compiled form of rec, building it once per compilation.
func (c *compilation[T]) compiled(rec *trie.Record[T]) *entry[T] {
	if e := c.entries[rec]; e != nil {
		return e
	}

	e := &entry[T]{data: rec.Data(), optional: rec.Optional()}
	var conds []trie.ParamEntry
	for _, p := range rec.Params() {
		e.binders = append(e.binders, binder(p))
		if p.Pattern != nil {
			conds = append(conds, p)
		}
	}
	switch len(conds) {
	case 0:
	case 1:
		idx, re := conds[0].Index, conds[0].Pattern
		e.accept = func(segs []string) bool {
			return idx < len(segs) && re.MatchString(segs[idx])
		}
	default:
		e.accept = func(segs []string) bool {
			for _, p := range conds {
				if p.Index >= len(segs) || !p.Pattern.MatchString(segs[p.Index]) {
					return false
				}
			}

			return true
		}
	}
	c.entries[rec] = e

	return e
}

// binder returns the extraction step for one parameter entry.
func binder(p trie.ParamEntry) func(segs []string, params map[string]string) {
	idx, name := p.Index, p.Name
	switch {
	case p.CatchAll:
		return func(segs []string, params map[string]string) {
			if idx < len(segs) {
				params[name] = strings.Join(segs[idx:], "/")
			} else {
				params[name] = ""
			}
		}
	case p.Pattern != nil:
		re := p.Pattern
		names := re.SubexpNames()
		return func(segs []string, params map[string]string) {
			if idx >= len(segs) {
				return
			}
			m := re.FindStringSubmatch(segs[idx])
			if m == nil {
				return
			}
			for i, n := range names {
				if i > 0 && n != "" {
					params[n] = m[i]
				}
			}
		}
	default:
		return func(segs []string, params map[string]string) {
			if idx < len(segs) {
				params[name] = segs[idx]
			}
		}
	}
}

// resolver returns the records a node answers for a method, in resolution
// order. A nil resolver answers nothing.
type resolver[T any] func(method string) []*entry[T]

// dispatch builds the method dispatch of n. With trailing set, only records
// whose last parameter is optional are kept; a method key with no such
// records still shadows the any-method records, as in [trie.Node.Resolve].
func (c *compilation[T]) dispatch(n *trie.Node[T], trailing bool) resolver[T] {
	methods := n.Methods()
	if len(methods) == 0 {
		return nil
	}

	byMethod := make(map[string][]*entry[T], len(methods))
	for _, m := range methods {
		var list []*entry[T]
		for _, rec := range n.Records(m) {
			if trailing && !rec.Optional() {
				continue
			}
			list = append(list, c.compiled(rec))
		}
		byMethod[m] = list
	}

	anyRecs, hasAny := byMethod[trie.MethodAny]
	delete(byMethod, trie.MethodAny)

	switch len(byMethod) {
	case 0:
		return func(string) []*entry[T] { return anyRecs }
	case 1:
		key := methods[len(methods)-1]
		recs := byMethod[key]
		if !hasAny {
			return func(method string) []*entry[T] {
				if method == key {
					return recs
				}
				return nil
			}
		}
		return func(method string) []*entry[T] {
			if method == key {
				return recs
			}
			return anyRecs
		}
	default:
		return func(method string) []*entry[T] {
			if recs, ok := byMethod[method]; ok {
				return recs
			}
			return anyRecs
		}
	}
}

// first returns the first eligible record r answers for method.
func first[T any](r resolver[T], method string, segs []string) *entry[T] {
	if r == nil {
		return nil
	}
	for _, e := range r(method) {
		if e.eligible(segs) {
			return e
		}
	}

	return nil
}

// all returns every eligible record r answers for method.
func all[T any](r resolver[T], method string, segs []string) []*entry[T] {
	if r == nil {
		return nil
	}
	recs := r(method)
	if len(recs) == 0 {
		return nil
	}

	var out []*entry[T]
	for _, e := range recs {
		if e.eligible(segs) {
			out = append(out, e)
		}
	}

	return out
}
