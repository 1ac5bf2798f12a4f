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

package trie_test

import (
	"fmt"

	"rivaas.dev/pathtrie/trie"
)

// ExampleTree_Lookup demonstrates registering routes and matching a path.
func ExampleTree_Lookup() {
	t := trie.New[string]()
	t.Insert("GET", "/users/:id", "show-user")
	t.Insert("GET", "/users/me", "current-user")

	m, ok := t.Lookup("GET", "/users/42")
	fmt.Println(ok, m.Data, m.Params["id"])

	m, ok = t.Lookup("GET", "/users/me/")
	fmt.Println(ok, m.Data)

	_, ok = t.Lookup("POST", "/users/42")
	fmt.Println(ok)
	// Output:
	// true show-user 42
	// true current-user
	// false
}

// ExampleTree_LookupAll demonstrates most-specific-first ordering.
func ExampleTree_LookupAll() {
	t := trie.New[string]()
	t.Insert(trie.MethodAny, "/api/**", "fallback")
	t.Insert("GET", "/api/:resource", "collection")
	t.Insert("GET", "/api/health", "health")

	for _, m := range t.LookupAll("GET", "/api/health") {
		fmt.Println(m.Data)
	}
	// Output:
	// health
	// collection
	// fallback
}

// ExampleTree_Remove demonstrates removing a registration.
func ExampleTree_Remove() {
	t := trie.New[string]()
	t.Insert("GET", "/files/**:path", "files")

	m, _ := t.Lookup("GET", "/files/a/b.txt")
	fmt.Println(m.Params["path"])

	fmt.Println(t.Remove("GET", "/files/**:path", "files"))
	_, ok := t.Lookup("GET", "/files/a/b.txt")
	fmt.Println(ok)
	// Output:
	// a/b.txt
	// true
	// false
}
