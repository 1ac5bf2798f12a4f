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

// Remove deletes the first record registered for method and pattern whose
// payload equals data. Nodes left without records and children are pruned.
//
// It reports whether a record was removed. Removing a registration that does
// not exist is a no-op.
func (t *Tree[T]) Remove(method, path string, data T) bool {
	p, err := parsePattern(path)
	if err != nil {
		return false
	}
	method = NormalizeMethod(method)

	trail := make([]*Node[T], 1, len(p.segments)+1)
	trail[0] = t.root
	n := t.root
	for _, seg := range p.segments {
		switch seg.kind {
		case segStatic:
			n = n.static[seg.text]
		case segParam:
			n = n.param
		case segWildcard:
			n = n.wildcard
		}
		if n == nil {
			return false
		}
		trail = append(trail, n)
	}

	removed := n.removeRecord(method, func(rec *Record[T]) bool {
		return rec.pattern == p.normalized && t.equal(rec.data, data)
	})
	if !removed {
		return false
	}
	t.size--

	if !p.dynamic && len(n.methods) == 0 {
		delete(t.staticIndex, p.normalized)
	}
	t.prune(trail, p.segments)

	return true
}

// prune detaches empty nodes along trail, deepest first.
// trail[i+1] is the child of trail[i] reached through segs[i].
func (t *Tree[T]) prune(trail []*Node[T], segs []segment) {
	for i := len(trail) - 1; i > 0; i-- {
		child := trail[i]
		if !child.isEmpty() {
			return
		}

		parent := trail[i-1]
		switch seg := segs[i-1]; seg.kind {
		case segStatic:
			delete(parent.static, seg.text)
			if len(parent.static) == 0 {
				parent.static = nil
			}
		case segParam:
			parent.param = nil
		case segWildcard:
			parent.wildcard = nil
		}
	}
}
