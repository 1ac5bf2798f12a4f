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

// Package manifest loads declarative route tables and registers them in a
// trie.Tree.
//
// A manifest is a YAML, TOML or JSON document:
//
//	package: routes
//	name: Match
//	defaults:
//	  methods: [GET]
//	  tags:
//	    team: core
//	routes:
//	  - name: listUsers
//	    pattern: /users
//	  - pattern: /users/:id
//	    methods: GET, PUT
//	    handler: users.show
//	  - pattern: /files/**:path
//	    methods: ["*"]
//	    handler: files.serve
//
// Loading runs in stages, each reported as the Operation of an [Error]:
//
//  1. decode: the format's codec turns the document into a map
//  2. validate: the map is checked against an embedded JSON Schema
//  3. bind: the map is decoded into [Manifest]
//  4. merge: the defaults block fills in what each route leaves empty
//
// A route's handler is its payload; it defaults to the route name. Methods
// may be a list or a comma-separated string. "ANY", "*" or no methods at all
// register the route for every method.
//
//	m, err := manifest.LoadFile("routes.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tree, err := m.Build()
package manifest
