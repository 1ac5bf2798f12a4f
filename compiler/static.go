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

// staticTable answers fully literal paths without walking the tree.
// Large tables are screened by a bloom filter first, since most misses on a
// static path are not static routes at all.
type staticTable[T any] struct {
	routes map[string]resolver[T]
	bloom  *BloomFilter
}

// staticTable builds the table from the tree's static index.
func (c *compilation[T]) staticTable(t *trie.Tree[T], bloomThreshold int) (*staticTable[T], error) {
	paths := t.StaticPaths()
	st := &staticTable[T]{routes: make(map[string]resolver[T], len(paths))}
	for _, p := range paths {
		if r := c.dispatch(t.StaticNode(p), false); r != nil {
			st.routes[p] = r
		}
	}

	if bloomThreshold > 0 && len(st.routes) >= bloomThreshold {
		//nolint:gosec // G115: route counts are small and positive
		bf, err := NewBloomFilter(uint64(len(st.routes)*bloomBitsPerKey), bloomHashFuncs)
		if err != nil {
			return nil, err
		}
		for p := range st.routes {
			bf.Add(p)
		}
		st.bloom = bf
	}

	return st, nil
}

// lookup returns the first record for a static path, or nil when the path
// is not a static route or has no record for method.
func (st *staticTable[T]) lookup(method, path string) *entry[T] {
	if len(st.routes) == 0 {
		return nil
	}
	if st.bloom != nil && !st.bloom.Test(path) {
		return nil
	}

	r, ok := st.routes[path]
	if !ok {
		return nil
	}
	if recs := r(method); len(recs) > 0 {
		return recs[0]
	}

	return nil
}
