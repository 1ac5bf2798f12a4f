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

// Package compiler flattens a finished [trie.Tree] into a specialized
// matching routine.
//
// A tree answers a lookup by walking its nodes and resolving methods at the
// leaf. Once registration is complete that work can be done ahead of time:
// the compiler lowers every node into code that only compares request
// segments, with method dispatch, literal comparisons and parameter keys
// fixed at build time.
//
// # Outputs
//
// Two forms are produced from the same tree:
//
//  1. [Compile] and [CompileAll] build a tree of closures that can be called
//     directly. The result is safe for concurrent use.
//  2. [Source] and [File] render equivalent Go source text for code
//     generation. Payloads are written with an [Encoder]; custom payload
//     types implement [SourceEncoder].
//
// Both agree with [trie.Tree.Lookup] and [trie.Tree.LookupAll] on every
// request: the same precedence (literal, then parameter, then catch-all,
// with backtracking), the same method fallback, and the same parameters.
// [Verify] and [VerifyAll] check that agreement against a set of [Probe]s.
//
// # Static Table
//
// Fully literal routes are answered from a hash table before any segment is
// inspected. When the table holds at least [DefaultBloomThreshold] paths, a
// [BloomFilter] screens out paths that are definitely not static routes.
//
// # Restrictions
//
// A catch-all is terminal. Routes registered below a catch-all can never
// match in the tree; compiling such a tree fails with [ErrWildcardChildren].
//
// # Example
//
//	t := trie.New[string]()
//	t.Insert("GET", "/users/:id", "show-user")
//
//	match, err := compiler.Compile(t)
//	if err != nil {
//	    return err
//	}
//	m, ok := match("GET", "/users/42") // {show-user map[id:42]}, true
package compiler
