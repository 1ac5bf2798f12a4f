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

// Lookup returns the best match for method and path.
//
// Precedence at every level is static child, then param child, then
// wildcard child, with backtracking when a branch yields no record. At a leaf
// the records registered for method are used, falling back to [MethodAny].
// A trailing slash is ignored.
func (t *Tree[T]) Lookup(method, path string) (Match[T], bool) {
	method = NormalizeMethod(method)
	path = TrimTrailingSlash(path)

	// Fast path: static routes skip the trie walk entirely.
	if n := t.staticIndex[path]; n != nil {
		if recs := n.Resolve(method); len(recs) > 0 {
			return Match[T]{Data: recs[0].data}, true
		}
	}

	segs := SplitPath(path)
	rec := find(t.root, method, segs, 0)
	if rec == nil {
		return Match[T]{}, false
	}

	return Match[T]{Data: rec.data, Params: rec.Extract(segs)}, true
}

// find returns the first record reachable from n for segs[i:].
func find[T any](n *Node[T], method string, segs []string, i int) *Record[T] {
	if i == len(segs) {
		if rec := n.firstEligible(method, segs, false); rec != nil {
			return rec
		}
		// An optional trailing parameter may be absent.
		if n.param != nil {
			if rec := n.param.firstEligible(method, segs, true); rec != nil {
				return rec
			}
		}
		if n.wildcard != nil {
			return n.wildcard.firstEligible(method, segs, true)
		}

		return nil
	}

	seg := segs[i]
	if child := n.static[seg]; child != nil {
		if rec := find(child, method, segs, i+1); rec != nil {
			return rec
		}
	}
	if n.param != nil && seg != "" {
		if rec := find(n.param, method, segs, i+1); rec != nil {
			return rec
		}
	}
	if n.wildcard != nil {
		return n.wildcard.firstEligible(method, segs, false)
	}

	return nil
}

// LookupAll returns every match for method and path, most specific first.
// The first element, if any, is the result of [Tree.Lookup].
// It returns nil when nothing matches.
func (t *Tree[T]) LookupAll(method, path string) []Match[T] {
	method = NormalizeMethod(method)
	path = TrimTrailingSlash(path)
	segs := SplitPath(path)

	var groups [][]*Record[T]
	collect(t.root, method, segs, 0, &groups)
	if len(groups) == 0 {
		return nil
	}

	var out []Match[T]
	for g := len(groups) - 1; g >= 0; g-- {
		for _, rec := range groups[g] {
			out = append(out, Match[T]{Data: rec.data, Params: rec.Extract(segs)})
		}
	}

	return out
}

// collect appends every non-empty leaf group reachable from n, least
// specific first. Groups are later emitted in reverse, which puts deeper and
// more literal matches ahead of shallower and more general ones while keeping
// the record order inside a leaf.
func collect[T any](n *Node[T], method string, segs []string, i int, groups *[][]*Record[T]) {
	add := func(recs []*Record[T]) {
		if len(recs) > 0 {
			*groups = append(*groups, recs)
		}
	}

	if n.wildcard != nil {
		add(n.wildcard.eligible(method, segs, i == len(segs)))
	}

	if i == len(segs) {
		if n.param != nil {
			add(n.param.eligible(method, segs, true))
		}
		add(n.eligible(method, segs, false))

		return
	}

	seg := segs[i]
	if n.param != nil && seg != "" {
		collect(n.param, method, segs, i+1, groups)
	}
	if child := n.static[seg]; child != nil {
		collect(child, method, segs, i+1, groups)
	}
}
