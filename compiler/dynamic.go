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

import "rivaas.dev/pathtrie/trie"

// matcher returns the first record reachable from a node for segs.
type matcher[T any] func(method string, segs []string) *entry[T]

// collector appends every non-empty leaf group reachable from a node.
type collector[T any] func(method string, segs []string, groups *[][]*entry[T])

// matcher lowers n, found at the given depth, into a closure.
//
// The depth is fixed at build time: a node at depth d is only ever reached
// with d segments consumed. At every level the literal children are tried
// first, then the param child, then the catch-all records. A branch that
// yields nothing falls through to the next one.
func (c *compilation[T]) matcher(n *trie.Node[T], depth int) matcher[T] {
	own := c.dispatch(n, false)

	var (
		param      matcher[T]
		paramTrail resolver[T]
		wildAll    resolver[T]
		wildTrail  resolver[T]
	)
	if p := n.Param(); p != nil {
		param = c.matcher(p, depth+1)
		paramTrail = c.dispatch(p, true)
	}
	if w := n.Wildcard(); w != nil {
		wildAll = c.dispatch(w, false)
		wildTrail = c.dispatch(w, true)
	}
	static := c.staticMatcher(n, depth)

	return func(method string, segs []string) *entry[T] {
		if len(segs) == depth {
			if e := first(own, method, segs); e != nil {
				return e
			}
			// An optional trailing parameter may be absent.
			if e := first(paramTrail, method, segs); e != nil {
				return e
			}

			return first(wildTrail, method, segs)
		}

		seg := segs[depth]
		if static != nil {
			if e := static(seg, method, segs); e != nil {
				return e
			}
		}
		if param != nil && seg != "" {
			if e := param(method, segs); e != nil {
				return e
			}
		}

		return first(wildAll, method, segs)
	}
}

// staticMatcher lowers the literal children of n. A single child compiles
// to one string comparison; more children use a map.
func (c *compilation[T]) staticMatcher(n *trie.Node[T], depth int) func(seg, method string, segs []string) *entry[T] {
	keys := n.StaticKeys()
	switch len(keys) {
	case 0:
		return nil
	case 1:
		key := keys[0]
		child := c.matcher(n.Static(key), depth+1)
		return func(seg, method string, segs []string) *entry[T] {
			if seg != key {
				return nil
			}
			return child(method, segs)
		}
	default:
		children := make(map[string]matcher[T], len(keys))
		for _, k := range keys {
			children[k] = c.matcher(n.Static(k), depth+1)
		}
		return func(seg, method string, segs []string) *entry[T] {
			if child := children[seg]; child != nil {
				return child(method, segs)
			}
			return nil
		}
	}
}

// collector lowers n into a match-all closure.
//
// Groups are appended least specific first: the catch-all group, then the
// param subtree, then the literal subtree, then the node's own records.
// The caller emits them in reverse.
func (c *compilation[T]) collector(n *trie.Node[T], depth int) collector[T] {
	own := c.dispatch(n, false)

	var (
		param      collector[T]
		paramTrail resolver[T]
		wildAll    resolver[T]
		wildTrail  resolver[T]
		static     map[string]collector[T]
	)
	if p := n.Param(); p != nil {
		param = c.collector(p, depth+1)
		paramTrail = c.dispatch(p, true)
	}
	if w := n.Wildcard(); w != nil {
		wildAll = c.dispatch(w, false)
		wildTrail = c.dispatch(w, true)
	}
	if keys := n.StaticKeys(); len(keys) > 0 {
		static = make(map[string]collector[T], len(keys))
		for _, k := range keys {
			static[k] = c.collector(n.Static(k), depth+1)
		}
	}

	return func(method string, segs []string, groups *[][]*entry[T]) {
		add := func(recs []*entry[T]) {
			if len(recs) > 0 {
				*groups = append(*groups, recs)
			}
		}

		if len(segs) == depth {
			add(all(wildTrail, method, segs))
			add(all(paramTrail, method, segs))
			add(all(own, method, segs))

			return
		}
		add(all(wildAll, method, segs))

		seg := segs[depth]
		if param != nil && seg != "" {
			param(method, segs, groups)
		}
		if child := static[seg]; child != nil {
			child(method, segs, groups)
		}
	}
}
