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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// diagnosticRecorder collects diagnostic events for assertions.
type diagnosticRecorder struct {
	mu     sync.Mutex
	events []DiagnosticEvent
}

func (r *diagnosticRecorder) OnDiagnostic(e DiagnosticEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *diagnosticRecorder) kinds() []DiagnosticKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]DiagnosticKind, 0, len(r.events))
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}

	return kinds
}

// TreeTestSuite tests registration and lookup on a Tree.
type TreeTestSuite struct {
	suite.Suite

	diags *diagnosticRecorder
	tree  *Tree[string]
}

func (suite *TreeTestSuite) SetupTest() {
	suite.diags = &diagnosticRecorder{}
	suite.tree = New[string](WithDiagnostics(suite.diags))
}

// TestParamLookup covers a single named parameter.
func (suite *TreeTestSuite) TestParamLookup() {
	suite.tree.Insert("GET", "/users/:id", "X")

	m, ok := suite.tree.Lookup("GET", "/users/42")
	suite.Require().True(ok)
	suite.Equal("X", m.Data)
	suite.Equal(map[string]string{"id": "42"}, m.Params)
}

// TestStaticBeatsParam covers literal precedence over a parameter.
func (suite *TreeTestSuite) TestStaticBeatsParam() {
	suite.tree.Insert("GET", "/users/:id", "X")
	suite.tree.Insert("GET", "/users/me", "Y")

	m, ok := suite.tree.Lookup("GET", "/users/me")
	suite.Require().True(ok)
	suite.Equal("Y", m.Data)
	suite.Empty(m.Params)

	m, ok = suite.tree.Lookup("GET", "/users/you")
	suite.Require().True(ok)
	suite.Equal("X", m.Data)
	suite.Equal(map[string]string{"id": "you"}, m.Params)
}

// TestNamedCatchAll covers a catch-all bound to a name.
func (suite *TreeTestSuite) TestNamedCatchAll() {
	suite.tree.Insert("GET", "/files/**path", "F")
	suite.tree.Insert("GET", "/assets/**:rest", "A")

	m, ok := suite.tree.Lookup("GET", "/files/a/b/c")
	suite.Require().True(ok)
	suite.Equal("F", m.Data)
	suite.Equal(map[string]string{"path": "a/b/c"}, m.Params)

	m, ok = suite.tree.Lookup("GET", "/assets/css/app.css")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"rest": "css/app.css"}, m.Params)

	// A named catch-all needs at least one segment.
	_, ok = suite.tree.Lookup("GET", "/files")
	suite.False(ok)
}

// TestMethodMiss covers a method with no registrations.
func (suite *TreeTestSuite) TestMethodMiss() {
	suite.tree.Insert("GET", "/users/:id", "X")

	_, ok := suite.tree.Lookup("POST", "/users/42")
	suite.False(ok)
}

// TestSegmentCount covers exact segment-count matching.
func (suite *TreeTestSuite) TestSegmentCount() {
	suite.tree.Insert("GET", "/a/:id", "first")
	suite.tree.Insert("GET", "/a/:id/b", "second")

	m, ok := suite.tree.Lookup("GET", "/a/1")
	suite.Require().True(ok)
	suite.Equal("first", m.Data)
	suite.Equal(map[string]string{"id": "1"}, m.Params)

	all := suite.tree.LookupAll("GET", "/a/1")
	suite.Len(all, 1)

	m, ok = suite.tree.Lookup("GET", "/a/1/b")
	suite.Require().True(ok)
	suite.Equal("second", m.Data)

	_, ok = suite.tree.Lookup("GET", "/a/1/b/c")
	suite.False(ok)
}

// TestRemoveThenMiss covers the removal round trip.
func (suite *TreeTestSuite) TestRemoveThenMiss() {
	suite.tree.Insert("GET", "/users/:id", "X")
	suite.True(suite.tree.Remove("GET", "/users/:id", "X"))

	_, ok := suite.tree.Lookup("GET", "/users/42")
	suite.False(ok)
	suite.Equal(0, suite.tree.Len())
	suite.False(suite.tree.Root().HasChildren())
}

// TestBacktracking covers falling back to the param branch after a
// literal branch dead-ends.
func (suite *TreeTestSuite) TestBacktracking() {
	suite.tree.Insert("GET", "/a/b/c", "static")
	suite.tree.Insert("GET", "/a/:x/d", "param")
	suite.tree.Insert("GET", "/a/**", "rest")

	m, ok := suite.tree.Lookup("GET", "/a/b/d")
	suite.Require().True(ok)
	suite.Equal("param", m.Data)
	suite.Equal(map[string]string{"x": "b"}, m.Params)

	m, ok = suite.tree.Lookup("GET", "/a/b/e")
	suite.Require().True(ok)
	suite.Equal("rest", m.Data)
	suite.Equal(map[string]string{"_": "b/e"}, m.Params)
}

// TestTrailingSlash covers trailing slash equivalence.
func (suite *TreeTestSuite) TestTrailingSlash() {
	suite.tree.Insert("GET", "/a/b", "ab")
	suite.tree.Insert("GET", "/p/:id/", "p")
	suite.tree.Insert("GET", "/", "root")

	for _, path := range []string{"/a/b", "/p/1", "/", ""} {
		suite.Run(path, func() {
			plain, ok1 := suite.tree.Lookup("GET", path)
			slashed, ok2 := suite.tree.Lookup("GET", path+"/")
			suite.True(ok1)
			suite.Equal(ok1, ok2)
			suite.Equal(plain, slashed)
		})
	}
}

// TestMethodResolution covers the any-method fallback and case folding.
func (suite *TreeTestSuite) TestMethodResolution() {
	suite.tree.Insert(MethodAny, "/h", "any")
	suite.tree.Insert("get", "/h", "get")
	suite.tree.Insert(MethodAny, "/users/me", "any-me")
	suite.tree.Insert("GET", "/users/:id", "get-id")

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/h", "get"},
		{"get", "/h", "get"},
		{"POST", "/h", "any"},
		{"GET", "/users/me", "any-me"},
		{"GET", "/users/7", "get-id"},
	}
	for _, tt := range tests {
		suite.Run(tt.method+" "+tt.path, func() {
			m, ok := suite.tree.Lookup(tt.method, tt.path)
			suite.Require().True(ok)
			suite.Equal(tt.want, m.Data)
		})
	}

	_, ok := suite.tree.Lookup("POST", "/users/7")
	suite.False(ok)

	// A method key with no eligible record still shadows the any-method records.
	suite.tree.Insert(MethodAny, "/img/:file", "any-img")
	suite.tree.Insert("GET", "/img/:name.png", "get-png")

	_, ok = suite.tree.Lookup("GET", "/img/a.jpg")
	suite.False(ok)
	m, ok := suite.tree.Lookup("POST", "/img/a.jpg")
	suite.Require().True(ok)
	suite.Equal("any-img", m.Data)
}

// TestOptionalParam covers optional trailing parameters.
func (suite *TreeTestSuite) TestOptionalParam() {
	suite.tree.Insert("GET", "/users/:id?", "opt")

	m, ok := suite.tree.Lookup("GET", "/users")
	suite.Require().True(ok)
	suite.Equal("opt", m.Data)
	suite.Empty(m.Params)

	m, ok = suite.tree.Lookup("GET", "/users/7")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"id": "7"}, m.Params)
}

// TestUnnamedParam covers "*" segments.
func (suite *TreeTestSuite) TestUnnamedParam() {
	suite.tree.Insert("GET", "/blob/*", "b")
	suite.tree.Insert("GET", "/pair/*/*", "p")

	blob := suite.tree.Root().Static("blob")
	suite.Require().NotNil(blob.Param())
	suite.Nil(blob.Wildcard())

	m, ok := suite.tree.Lookup("GET", "/blob/x")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"_0": "x"}, m.Params)

	m, ok = suite.tree.Lookup("GET", "/blob")
	suite.Require().True(ok)
	suite.Equal("b", m.Data)
	suite.Empty(m.Params)

	_, ok = suite.tree.Lookup("GET", "/blob/x/y")
	suite.False(ok)

	m, ok = suite.tree.Lookup("GET", "/pair/a/b")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"_0": "a", "_1": "b"}, m.Params)
}

// TestBareCatchAll covers "**", which may match zero segments.
func (suite *TreeTestSuite) TestBareCatchAll() {
	suite.tree.Insert("GET", "/static/**", "s")

	m, ok := suite.tree.Lookup("GET", "/static")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"_": ""}, m.Params)

	m, ok = suite.tree.Lookup("GET", "/static/css/app.css")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"_": "css/app.css"}, m.Params)
}

// TestMixedSegment covers segments mixing literal text and parameters.
func (suite *TreeTestSuite) TestMixedSegment() {
	suite.tree.Insert("GET", "/files/:name.:ext", "mixed")

	m, ok := suite.tree.Lookup("GET", "/files/report.pdf")
	suite.Require().True(ok)
	suite.Equal("mixed", m.Data)
	suite.Equal(map[string]string{"name": "report", "ext": "pdf"}, m.Params)

	m, ok = suite.tree.Lookup("GET", "/files/a.b.c")
	suite.Require().True(ok)
	suite.Equal(map[string]string{"name": "a.b", "ext": "c"}, m.Params)

	_, ok = suite.tree.Lookup("GET", "/files/noext")
	suite.False(ok)
}

// TestInsertionOrderWins covers several records under one method key:
// the first registered record wins and match-all keeps insertion order.
// A record whose sub-pattern rejects the segment is skipped.
func (suite *TreeTestSuite) TestInsertionOrderWins() {
	suite.tree.Insert("GET", "/img/:id", "plain")
	suite.tree.Insert("GET", "/img/file-:name", "file")
	suite.tree.Insert("GET", "/doc/:name.pdf", "pdf")
	suite.tree.Insert("GET", "/doc/:file", "doc")

	m, ok := suite.tree.Lookup("GET", "/img/file-a")
	suite.Require().True(ok)
	suite.Equal("plain", m.Data)
	suite.Equal(map[string]string{"id": "file-a"}, m.Params)

	all := suite.tree.LookupAll("GET", "/img/file-a")
	suite.Require().Len(all, 2)
	suite.Equal("plain", all[0].Data)
	suite.Equal("file", all[1].Data)
	suite.Equal(map[string]string{"name": "a"}, all[1].Params)

	m, ok = suite.tree.Lookup("GET", "/doc/a.pdf")
	suite.Require().True(ok)
	suite.Equal("pdf", m.Data)
	suite.Equal(map[string]string{"name": "a"}, m.Params)

	m, ok = suite.tree.Lookup("GET", "/doc/a.txt")
	suite.Require().True(ok)
	suite.Equal("doc", m.Data)
	suite.Equal(map[string]string{"file": "a.txt"}, m.Params)

	all = suite.tree.LookupAll("GET", "/doc/a.pdf")
	suite.Require().Len(all, 2)
	suite.Equal("pdf", all[0].Data)
	suite.Equal("doc", all[1].Data)
}

// TestEmptySegment covers interior empty request segments.
func (suite *TreeTestSuite) TestEmptySegment() {
	suite.tree.Insert("GET", "/a/:x/b", "p")
	suite.tree.Insert("GET", "/c/d", "s")

	_, ok := suite.tree.Lookup("GET", "/a//b")
	suite.False(ok)
	_, ok = suite.tree.Lookup("GET", "/c//d")
	suite.False(ok)

	// Empty segments in patterns are ignored.
	suite.tree.Insert("GET", "//e///f/", "e")
	m, ok := suite.tree.Lookup("GET", "/e/f")
	suite.Require().True(ok)
	suite.Equal("e", m.Data)
}

// TestParamNameConflict documents the first-registered-name rule.
func (suite *TreeTestSuite) TestParamNameConflict() {
	suite.tree.Insert("GET", "/users/:id", "by-id")
	suite.tree.Insert("GET", "/users/:slug/posts", "posts")

	m, ok := suite.tree.Lookup("GET", "/users/alice/posts")
	suite.Require().True(ok)
	suite.Equal("posts", m.Data)
	suite.Equal(map[string]string{"id": "alice"}, m.Params)
	suite.Equal(":id", suite.tree.Root().Static("users").Param().Key())

	suite.Require().Len(suite.diags.events, 1)
	e := suite.diags.events[0]
	suite.Equal(DiagParamNameConflict, e.Kind)
	suite.Equal("id", e.Fields["registered"])
	suite.Equal("slug", e.Fields["ignored"])
}

// TestUnreachableRoute covers segments registered past a catch-all.
func (suite *TreeTestSuite) TestUnreachableRoute() {
	suite.tree.Insert("GET", "/a/**/b", "never")

	suite.Equal([]DiagnosticKind{DiagUnreachableRoute}, suite.diags.kinds())
	_, ok := suite.tree.Lookup("GET", "/a/x/b")
	suite.False(ok)
	suite.Equal(1, suite.tree.Len())
}

// TestDuplicateRoute covers repeated registrations.
func (suite *TreeTestSuite) TestDuplicateRoute() {
	suite.tree.Insert("GET", "/d", "one")
	suite.tree.Insert("GET", "/d/", "two")

	suite.Equal([]DiagnosticKind{DiagDuplicateRoute}, suite.diags.kinds())
	suite.Equal(2, suite.tree.Len())

	m, ok := suite.tree.Lookup("GET", "/d")
	suite.Require().True(ok)
	suite.Equal("one", m.Data)

	all := suite.tree.LookupAll("GET", "/d")
	suite.Require().Len(all, 2)
	suite.Equal("one", all[0].Data)
	suite.Equal("two", all[1].Data)
}

// TestLookupAllOrder covers most-specific-first ordering.
func (suite *TreeTestSuite) TestLookupAllOrder() {
	suite.tree.Insert("GET", "/api/**", "catchall")
	suite.tree.Insert("GET", "/api/:res", "param")
	suite.tree.Insert("GET", "/api/users", "static")

	all := suite.tree.LookupAll("GET", "/api/users")
	suite.Require().Len(all, 3)
	suite.Equal("static", all[0].Data)
	suite.Equal("param", all[1].Data)
	suite.Equal(map[string]string{"res": "users"}, all[1].Params)
	suite.Equal("catchall", all[2].Data)
	suite.Equal(map[string]string{"_": "users"}, all[2].Params)

	first, ok := suite.tree.Lookup("GET", "/api/users")
	suite.Require().True(ok)
	suite.Equal(all[0], first)

	all = suite.tree.LookupAll("GET", "/api")
	suite.Require().Len(all, 1)
	suite.Equal("catchall", all[0].Data)

	suite.Nil(suite.tree.LookupAll("GET", "/other"))
	suite.Nil(suite.tree.LookupAll("POST", "/api/users"))
}

// TestStaticIndex covers which paths are indexed.
func (suite *TreeTestSuite) TestStaticIndex() {
	suite.tree.Insert("GET", "/", "root")
	suite.tree.Insert("GET", "/a/b/", "ab")
	suite.tree.Insert("GET", "/a/:id", "dyn")

	suite.Equal([]string{"/", "/a/b"}, suite.tree.StaticPaths())
	suite.Same(suite.tree.Root(), suite.tree.StaticNode("/"))
	suite.Same(suite.tree.Root().Static("a").Static("b"), suite.tree.StaticNode("/a/b"))
	suite.Nil(suite.tree.StaticNode("/a/:id"))
}

// TestWalk covers record enumeration order.
func (suite *TreeTestSuite) TestWalk() {
	suite.tree.Insert("GET", "/b", "b")
	suite.tree.Insert("POST", "/a", "a-post")
	suite.tree.Insert("GET", "/a", "a-get")
	suite.tree.Insert("GET", "/:id", "param")
	suite.tree.Insert("GET", "/**", "rest")
	suite.tree.Insert("GET", "/", "root")

	var got []string
	suite.tree.Walk(func(rec *Record[string]) bool {
		got = append(got, rec.Method()+" "+rec.Pattern()+" "+rec.Data())
		return true
	})
	suite.Equal([]string{
		"GET / root",
		"GET /a a-get",
		"POST /a a-post",
		"GET /b b",
		"GET /:id param",
		"GET /** rest",
	}, got)

	count := 0
	suite.tree.Walk(func(*Record[string]) bool {
		count++
		return count < 2
	})
	suite.Equal(2, count)
}

func TestTreeTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TreeTestSuite))
}

// TestConcurrentLookups runs lookups in parallel against a finished tree.
func TestConcurrentLookups(t *testing.T) {
	t.Parallel()

	tree := New[int]()
	tree.Insert("GET", "/users/:id", 1)
	tree.Insert("GET", "/users/me", 2)
	tree.Insert("GET", "/files/**path", 3)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 500 {
				m, ok := tree.Lookup("GET", "/users/42")
				if !assert.True(t, ok) || !assert.Equal(t, 1, m.Data) {
					return
				}
				all := tree.LookupAll("GET", "/files/a/b")
				if !assert.Len(t, all, 1) {
					return
				}
			}
		})
	}
	wg.Wait()
}

// TestWithEqualTypeMismatch covers the panic on a mistyped equality option.
func TestWithEqualTypeMismatch(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		New[string](WithEqual(func(a, b int) bool { return a == b }))
	})
	require.NotPanics(t, func() {
		New[string](WithEqual(func(a, b string) bool { return a == b }))
	})
}
