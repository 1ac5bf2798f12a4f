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

// Package trie provides a path-matching route index.
//
// A [Tree] maps (method, path pattern) registrations to caller-supplied
// payloads and answers lookups for concrete request paths, extracting named
// parameters along the way.
//
// # Pattern Syntax
//
//   - /users            literal segment
//   - /users/:id        named parameter
//   - /users/:id?       named parameter that may be missing at the end
//   - /files/:name.:ext mixed literal and parameter segment
//   - /blob/*           unnamed parameter bound to _0, _1, ...
//   - /static/**        catch-all of the rest of the path, bound to "_"
//   - /files/**:path    catch-all bound to "path" (also written **path)
//
// Empty segments and a trailing slash are ignored when registering.
//
// # Matching
//
// At every level a literal segment is tried first, then the parameter child,
// then the catch-all. [Tree.Lookup] returns the first match found this way;
// [Tree.LookupAll] returns every match, most specific first. Several records
// at the same position and method are tried in insertion order, so the first
// registered one wins [Tree.Lookup]; a record whose mixed segment rejects the
// request is skipped. Records for the
// exact method are preferred; records registered under [MethodAny] answer
// every method that has none of its own at that position.
//
// # Parameter Names
//
// A position in the tree has a single parameter child. When two routes name
// the same position differently, the first registered name is used for both,
// and a [DiagParamNameConflict] diagnostic is emitted:
//
//	t := trie.New[string]()
//	t.Insert("GET", "/users/:id", "by-id")
//	t.Insert("GET", "/users/:slug/posts", "posts")
//	m, _ := t.Lookup("GET", "/users/alice/posts")
//	// m.Params is {"id": "alice"}
//
// # Concurrency
//
// Register every route first, then serve lookups. Lookups do not write and
// are safe for concurrent use; Insert and Remove are not. For a flattened
// matcher built from a finished tree, see package compiler.
package trie
