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
	"slices"
	"sort"
)

// Node is a node in the route tree.
//
// Each node has three kinds of children:
//   - static: per-segment children keyed by the literal segment
//   - param: a single child matching any one non-empty segment (:id, *, file-:name.:ext)
//   - wildcard: a single child capturing the remainder of the path (**, **:path)
//
// Records registered on the node are kept per method. The empty method key
// ([MethodAny]) holds records that match every method.
//
// Thread safety: nodes are mutated only by [Tree.Insert] and [Tree.Remove].
// Once registration is complete, a node is safe for concurrent reads.
type Node[T any] struct {
	key       string              // Debug label (segment, ":name", "**")
	static    map[string]*Node[T] // Literal segment children
	param     *Node[T]            // Parameter child (at most one)
	paramName string              // First plain name registered on this param node
	wildcard  *Node[T]            // Wildcard child (at most one)
	methods   map[string]*methodRecords[T]
}

// methodRecords keeps the records of one method key in insertion order,
// which is also the resolution order.
type methodRecords[T any] struct {
	records []*Record[T]
}

func newNode[T any](key string) *Node[T] {
	return &Node[T]{key: key}
}

// Key returns the debug label of the node.
func (n *Node[T]) Key() string {
	return n.key
}

// Static returns the static child for segment, or nil.
func (n *Node[T]) Static(segment string) *Node[T] {
	return n.static[segment]
}

// StaticKeys returns the literal segments of the static children in sorted order.
func (n *Node[T]) StaticKeys() []string {
	keys := make([]string, 0, len(n.static))
	for k := range n.static {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Param returns the parameter child, or nil.
func (n *Node[T]) Param() *Node[T] {
	return n.param
}

// Wildcard returns the wildcard child, or nil.
func (n *Node[T]) Wildcard() *Node[T] {
	return n.wildcard
}

// HasChildren reports whether the node has any static, param or wildcard child.
func (n *Node[T]) HasChildren() bool {
	return len(n.static) > 0 || n.param != nil || n.wildcard != nil
}

// Methods returns the method keys registered on the node in sorted order.
// The any-method key ([MethodAny]) sorts first.
func (n *Node[T]) Methods() []string {
	keys := make([]string, 0, len(n.methods))
	for k := range n.methods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Records returns the records registered under exactly this method key,
// in insertion order. The returned slice must not be modified.
func (n *Node[T]) Records(method string) []*Record[T] {
	if mr := n.methods[method]; mr != nil {
		return mr.records
	}

	return nil
}

// Resolve returns the records for method, falling back to the any-method
// records when the method itself has none. The returned slice is in
// insertion order and must not be modified.
func (n *Node[T]) Resolve(method string) []*Record[T] {
	if n.methods == nil {
		return nil
	}
	if mr := n.methods[method]; mr != nil {
		return mr.records
	}
	if mr := n.methods[MethodAny]; mr != nil {
		return mr.records
	}

	return nil
}

// isEmpty reports whether the node holds nothing and can be pruned.
func (n *Node[T]) isEmpty() bool {
	return len(n.methods) == 0 && !n.HasChildren()
}

// staticChild returns the static child for segment, creating it if needed.
func (n *Node[T]) staticChild(segment string) *Node[T] {
	if child := n.static[segment]; child != nil {
		return child
	}
	if n.static == nil {
		n.static = make(map[string]*Node[T], 4)
	}
	child := newNode[T](segment)
	n.static[segment] = child

	return child
}

// paramChild returns the param child, creating it if needed.
func (n *Node[T]) paramChild() *Node[T] {
	if n.param == nil {
		n.param = newNode[T]("*")
	}

	return n.param
}

// wildcardChild returns the wildcard child, creating it if needed.
func (n *Node[T]) wildcardChild() *Node[T] {
	if n.wildcard == nil {
		n.wildcard = newNode[T]("**")
	}

	return n.wildcard
}

// addRecord appends rec under method, keeping insertion order.
func (n *Node[T]) addRecord(method string, rec *Record[T]) {
	if n.methods == nil {
		n.methods = make(map[string]*methodRecords[T], 2)
	}
	mr := n.methods[method]
	if mr == nil {
		mr = &methodRecords[T]{}
		n.methods[method] = mr
	}
	mr.records = append(mr.records, rec)
}

// removeRecord drops the first record under method for which match returns true.
func (n *Node[T]) removeRecord(method string, match func(*Record[T]) bool) bool {
	mr := n.methods[method]
	if mr == nil {
		return false
	}
	i := slices.IndexFunc(mr.records, match)
	if i < 0 {
		return false
	}
	// A fresh slice keeps earlier Records results intact.
	mr.records = slices.Concat(mr.records[:i], mr.records[i+1:])
	if len(mr.records) == 0 {
		delete(n.methods, method)
		if len(n.methods) == 0 {
			n.methods = nil
		}
	}

	return true
}

// firstEligible returns the first record for method that accepts segs.
// When trailing is set, only records whose last parameter is optional
// qualify: the node sits one segment deeper than the request path.
func (n *Node[T]) firstEligible(method string, segs []string, trailing bool) *Record[T] {
	for _, rec := range n.Resolve(method) {
		if trailing && !rec.optional {
			continue
		}
		if rec.Eligible(segs) {
			return rec
		}
	}

	return nil
}

// eligible returns every record for method that accepts segs.
func (n *Node[T]) eligible(method string, segs []string, trailing bool) []*Record[T] {
	recs := n.Resolve(method)
	if len(recs) == 0 {
		return nil
	}

	var out []*Record[T]
	for _, rec := range recs {
		if trailing && !rec.optional {
			continue
		}
		if rec.Eligible(segs) {
			out = append(out, rec)
		}
	}

	return out
}
