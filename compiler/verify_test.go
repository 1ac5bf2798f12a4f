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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/pathtrie/trie"
)

func TestProbes(t *testing.T) {
	t.Parallel()

	tree := trie.New[string]()
	tree.Insert("POST", "/users/:id", "u")
	tree.Insert(trie.MethodAny, "/files/**:path", "f")
	tree.Insert("GET", "/img/:name.png", "i")

	probes := Probes(tree)
	assert.Contains(t, probes, Probe{Method: "POST", Path: "/users/v1"})
	assert.Contains(t, probes, Probe{Method: "POST", Path: "/users/v1/"})
	assert.Contains(t, probes, Probe{Method: "PROBE", Path: "/users/v1/extra"})
	assert.Contains(t, probes, Probe{Method: "POST", Path: "/users"})
	assert.Contains(t, probes, Probe{Method: "GET", Path: "/files/rest/of/path"})
	assert.Contains(t, probes, Probe{Method: "GET", Path: "/img/x.png"})

	for i := 1; i < len(probes); i++ {
		assert.NotEqual(t, probes[i-1], probes[i])
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()

	tree := routeTree(t)
	match, err := Compile(tree)
	require.NoError(t, err)
	require.NoError(t, Verify(tree, match, Probes(tree)))

	matchAll, err := CompileAll(tree)
	require.NoError(t, err)
	require.NoError(t, VerifyAll(tree, matchAll, Probes(tree)))
}

func TestVerifyDetectsMismatch(t *testing.T) {
	t.Parallel()

	tree := trie.New[string]()
	tree.Insert("GET", "/users/:id", "user")

	wrongData := func(string, string) (trie.Match[string], bool) {
		return trie.Match[string]{Data: "other", Params: map[string]string{"id": "v1"}}, true
	}
	err := Verify(tree, wrongData, []Probe{{Method: "GET", Path: "/users/v1"}})
	require.ErrorIs(t, err, ErrMismatch)

	wrongParams := func(string, string) (trie.Match[string], bool) {
		return trie.Match[string]{Data: "user"}, true
	}
	err = Verify(tree, wrongParams, []Probe{{Method: "GET", Path: "/users/v1"}})
	require.ErrorIs(t, err, ErrMismatch)

	alwaysHit := func(string, string) (trie.Match[string], bool) {
		return trie.Match[string]{Data: "user"}, true
	}
	err = Verify(tree, alwaysHit, []Probe{{Method: "GET", Path: "/nope"}})
	require.ErrorIs(t, err, ErrMismatch)

	none := func(string, string) []trie.Match[string] { return nil }
	err = VerifyAll(tree, none, []Probe{{Method: "GET", Path: "/users/1"}})
	require.ErrorIs(t, err, ErrMismatch)
}
