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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("payload mismatch is a no-op", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/users/:id", "X")

		assert.False(t, tree.Remove("GET", "/users/:id", "Y"))
		assert.False(t, tree.Remove("POST", "/users/:id", "X"))
		assert.False(t, tree.Remove("GET", "/users/:id/posts", "X"))
		assert.False(t, tree.Remove("GET", "/missing", "X"))
		assert.Equal(t, 1, tree.Len())

		_, ok := tree.Lookup("GET", "/users/1")
		assert.True(t, ok)
	})

	t.Run("static route drops its index entry", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/a/b", "ab")
		require.Equal(t, []string{"/a/b"}, tree.StaticPaths())

		require.True(t, tree.Remove("get", "/a/b/", "ab"))
		assert.Empty(t, tree.StaticPaths())
		assert.False(t, tree.Root().HasChildren())

		_, ok := tree.Lookup("GET", "/a/b")
		assert.False(t, ok)
	})

	t.Run("index entry kept while other methods remain", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/a", "get")
		tree.Insert("POST", "/a", "post")

		require.True(t, tree.Remove("GET", "/a", "get"))
		assert.Equal(t, []string{"/a"}, tree.StaticPaths())

		m, ok := tree.Lookup("POST", "/a")
		require.True(t, ok)
		assert.Equal(t, "post", m.Data)
	})

	t.Run("removes only the matching duplicate", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/d", "one")
		tree.Insert("GET", "/d", "two")

		require.True(t, tree.Remove("GET", "/d", "two"))
		all := tree.LookupAll("GET", "/d")
		require.Len(t, all, 1)
		assert.Equal(t, "one", all[0].Data)
	})

	t.Run("keeps descendants", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/users/:id", "user")
		tree.Insert("GET", "/users/:id/posts", "posts")

		require.True(t, tree.Remove("GET", "/users/:id", "user"))

		_, ok := tree.Lookup("GET", "/users/1")
		assert.False(t, ok)

		m, ok := tree.Lookup("GET", "/users/1/posts")
		require.True(t, ok)
		assert.Equal(t, "posts", m.Data)
		assert.Equal(t, map[string]string{"id": "1"}, m.Params)
	})

	t.Run("catch-all and mixed segments", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/files/**:path", "files")
		tree.Insert("GET", "/img/:name.png", "png")

		require.True(t, tree.Remove("GET", "/files/**:path", "files"))
		require.True(t, tree.Remove("GET", "/img/:name.png", "png"))
		assert.Equal(t, 0, tree.Len())
		assert.False(t, tree.Root().HasChildren())
	})

	t.Run("pattern must match exactly", func(t *testing.T) {
		t.Parallel()

		tree := New[string]()
		tree.Insert("GET", "/img/:name.png", "v")

		// Same trie position, different pattern.
		assert.False(t, tree.Remove("GET", "/img/:name.jpg", "v"))
		assert.Equal(t, 1, tree.Len())
	})
}

func TestRemoveByIdentity(t *testing.T) {
	t.Parallel()

	type route struct{ name string }

	a := &route{name: "same"}
	b := &route{name: "same"}

	tree := New[*route]()
	tree.Insert("GET", "/r", a)

	assert.False(t, tree.Remove("GET", "/r", b))
	assert.True(t, tree.Remove("GET", "/r", a))
}

func TestRemoveFuncPayload(t *testing.T) {
	t.Parallel()

	handler := func() string { return "handler" }

	tree := New[func() string]()
	tree.Insert("GET", "/f", handler)

	assert.True(t, tree.Remove("GET", "/f", handler))
	assert.Equal(t, 0, tree.Len())
}

func TestRemoveWithEqual(t *testing.T) {
	t.Parallel()

	type route struct {
		id    int
		label string
	}

	tree := New[route](WithEqual(func(a, b route) bool { return a.id == b.id }))
	tree.Insert("GET", "/r", route{id: 1, label: "old"})

	assert.True(t, tree.Remove("GET", "/r", route{id: 1, label: "new"}))
}
