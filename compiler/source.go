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
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"regexp"
	"strings"
	"text/template"

	"rivaas.dev/pathtrie/trie"
)

var sourceTemplate = template.Must(template.New("source").Parse(`
{{- if .File -}}
// Code generated by pathtrie. DO NOT EDIT.

package {{.Package}}

import (
{{- range .StdImports}}
	"{{.}}"
{{- end}}

	{{.TrieImport}}
)
{{end}}
{{- range .Regexps}}
var {{.Name}} = regexp.MustCompile({{printf "%q" .Expr}})
{{- end}}

// {{.Name}} {{.Doc}}
func {{.Name}}(method, path string) {{.Results}} {
{{.Body -}}
}
`))

// sourceData feeds sourceTemplate.
type sourceData struct {
	File       bool
	Package    string
	StdImports []string
	TrieImport string
	Regexps    []regexpVar
	Name       string
	Doc        string
	Results    string
	Body       string
}

type regexpVar struct {
	Name string
	Expr string
}

// Source renders t as Go source for a routine named name.
//
// The output is a list of declarations: the routine and, for routes with
// mixed segments, package-level compiled sub-patterns. The embedding file
// must import "regexp" and "strings" where they are referenced, and the trie
// package under the name set by [WithPackageName]. Use [File] for a complete
// file.
//
// The routine has the signature
//
//	func name(method, path string) (trie.Match[any], bool)
//
// or, with [WithMatchAll],
//
//	func name(method, path string) []trie.Match[any]
//
// Payloads are written with the configured [Encoder]; a payload without an
// encoding fails with [ErrNoEncoder].
func Source[T any](t *trie.Tree[T], name string, opts ...Option) (string, error) {
	return render(t, "", name, opts)
}

// File renders t as a complete Go file in package pkg. See [Source].
func File[T any](t *trie.Tree[T], pkg, name string, opts ...Option) (string, error) {
	if !token.IsIdentifier(pkg) {
		return "", &NameError{Kind: "package", Name: pkg}
	}

	return render(t, pkg, name, opts)
}

func render[T any](t *trie.Tree[T], pkg, name string, opts []Option) (string, error) {
	if !token.IsIdentifier(name) {
		return "", &NameError{Kind: "routine", Name: name}
	}
	o, err := newOptions(opts)
	if err != nil {
		return "", err
	}
	if err := Validate(t); err != nil {
		return "", err
	}

	g := &generator[T]{
		o:       o,
		q:       o.packageName,
		name:    name,
		reNames: make(map[*regexp.Regexp]string),
		data:    make(map[*trie.Record[T]]string),
	}

	var body strings.Builder
	if o.matchAll {
		err = g.matchAllBody(&body, t)
	} else {
		err = g.singleBody(&body, t)
	}
	if err != nil {
		return "", err
	}

	sd := sourceData{
		File:    pkg != "",
		Package: pkg,
		Regexps: g.regexps,
		Name:    name,
		Body:    body.String(),
	}
	if o.matchAll {
		sd.Doc = "returns every route matching method and path, most specific first."
		sd.Results = "[]" + g.q + ".Match[any]"
	} else {
		sd.Doc = "returns the route matching method and path."
		sd.Results = "(" + g.q + ".Match[any], bool)"
	}
	if g.usesRegexp {
		sd.StdImports = append(sd.StdImports, "regexp")
	}
	if g.usesStrings {
		sd.StdImports = append(sd.StdImports, "strings")
	}
	sd.TrieImport = fmt.Sprintf("%q", TriePackagePath)
	if g.q != DefaultPackageName {
		sd.TrieImport = g.q + " " + sd.TrieImport
	}

	var buf bytes.Buffer
	if err := sourceTemplate.Execute(&buf, sd); err != nil {
		return "", fmt.Errorf("compiler: render %s: %w", name, err)
	}
	src, err := format.Source(bytes.TrimSpace(buf.Bytes()))
	if err != nil {
		return "", fmt.Errorf("compiler: format %s: %w", name, err)
	}

	out := string(src)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return out, nil
}

// generator lowers a tree into Go statements.
//
// Every node at depth d is emitted inside a branch where at least d segments
// are present, so "segs[d]" is always in range. A branch that finds nothing
// falls through to the next candidate, which gives the same backtracking
// order as the interpreted lookup.
//
// The emitting methods report whether their statements always return. Once
// a statement list terminates, nothing more is appended to it, so the output
// has no unreachable code.
type generator[T any] struct {
	o           *options
	q           string // Qualifier of the trie package
	name        string
	matchAll    bool
	regexps     []regexpVar
	reNames     map[*regexp.Regexp]string
	data        map[*trie.Record[T]]string
	usesStrings bool
	usesRegexp  bool
}

func (g *generator[T]) singleBody(b *strings.Builder, t *trie.Tree[T]) error {
	fmt.Fprintf(b, "method = %s.NormalizeMethod(method)\n", g.q)
	fmt.Fprintf(b, "path = %s.TrimTrailingSlash(path)\n", g.q)

	var cases strings.Builder
	for _, p := range t.StaticPaths() {
		var leaf strings.Builder
		if _, err := g.leaf(&leaf, t.StaticNode(p), false, 0); err != nil {
			return err
		}
		if leaf.Len() > 0 {
			fmt.Fprintf(&cases, "case %q:\n%s", p, leaf.String())
		}
	}
	if cases.Len() > 0 {
		fmt.Fprintf(b, "switch path {\n%s}\n", cases.String())
	}

	var walk strings.Builder
	done, err := g.node(&walk, t.Root(), 0)
	if err != nil {
		return err
	}
	if walk.Len() > 0 {
		fmt.Fprintf(b, "segs := %s.SplitPath(path)\n%s", g.q, walk.String())
	}
	if !done {
		fmt.Fprintf(b, "return %s.Match[any]{}, false\n", g.q)
	}

	return nil
}

func (g *generator[T]) matchAllBody(b *strings.Builder, t *trie.Tree[T]) error {
	g.matchAll = true

	var walk strings.Builder
	if err := g.collect(&walk, t.Root(), 0); err != nil {
		return err
	}
	if walk.Len() == 0 {
		b.WriteString("return nil\n")
		return nil
	}

	fmt.Fprintf(b, "method = %s.NormalizeMethod(method)\n", g.q)
	fmt.Fprintf(b, "segs := %s.SplitPath(%s.TrimTrailingSlash(path))\n", g.q, g.q)
	fmt.Fprintf(b, "var groups [][]%s.Match[any]\n", g.q)
	b.WriteString(walk.String())
	b.WriteString("if len(groups) == 0 {\nreturn nil\n}\n")
	fmt.Fprintf(b, "var out []%s.Match[any]\n", g.q)
	b.WriteString("for i := len(groups) - 1; i >= 0; i-- {\nout = append(out, groups[i]...)\n}\n")
	b.WriteString("return out\n")

	return nil
}

// node emits the single-match code for n at depth d and reports whether
// it always returns.
func (g *generator[T]) node(b *strings.Builder, n *trie.Node[T], d int) (bool, error) {
	var leaf strings.Builder
	exactDone, err := g.leaf(&leaf, n, false, d)
	if err != nil {
		return false, err
	}
	if p := n.Param(); p != nil && !exactDone {
		if exactDone, err = g.leaf(&leaf, p, true, d); err != nil {
			return false, err
		}
	}
	if w := n.Wildcard(); w != nil && !exactDone {
		if exactDone, err = g.leaf(&leaf, w, true, d); err != nil {
			return false, err
		}
	}

	var deeper strings.Builder
	var cases strings.Builder
	for _, k := range n.StaticKeys() {
		var child strings.Builder
		if _, err := g.node(&child, n.Static(k), d+1); err != nil {
			return false, err
		}
		if child.Len() > 0 {
			fmt.Fprintf(&cases, "case %q:\n%s", k, child.String())
		}
	}
	if cases.Len() > 0 {
		fmt.Fprintf(&deeper, "switch segs[%d] {\n%s}\n", d, cases.String())
	}
	if p := n.Param(); p != nil {
		var child strings.Builder
		if _, err := g.node(&child, p, d+1); err != nil {
			return false, err
		}
		if child.Len() > 0 {
			fmt.Fprintf(&deeper, "if segs[%d] != \"\" {\n%s}\n", d, child.String())
		}
	}
	deeperDone := false
	if w := n.Wildcard(); w != nil {
		if deeperDone, err = g.leaf(&deeper, w, false, d+1); err != nil {
			return false, err
		}
	}

	g.branch(b, d, leaf.String(), deeper.String())

	// Only "if ... else" with both arms returning terminates.
	return leaf.Len() > 0 && deeper.Len() > 0 && exactDone && deeperDone, nil
}

// collect emits the match-all code for n at depth d. Groups are appended
// in the same order as the interpreted lookup and reversed at the end.
func (g *generator[T]) collect(b *strings.Builder, n *trie.Node[T], d int) error {
	if w := n.Wildcard(); w != nil {
		var trail, rest strings.Builder
		if err := g.group(&trail, w, true, d); err != nil {
			return err
		}
		if err := g.group(&rest, w, false, d+1); err != nil {
			return err
		}
		g.branch(b, d, trail.String(), rest.String())
	}

	var leaf strings.Builder
	if p := n.Param(); p != nil {
		if err := g.group(&leaf, p, true, d); err != nil {
			return err
		}
	}
	if err := g.group(&leaf, n, false, d); err != nil {
		return err
	}

	var deeper strings.Builder
	if p := n.Param(); p != nil {
		var child strings.Builder
		if err := g.collect(&child, p, d+1); err != nil {
			return err
		}
		if child.Len() > 0 {
			fmt.Fprintf(&deeper, "if segs[%d] != \"\" {\n%s}\n", d, child.String())
		}
	}
	var cases strings.Builder
	for _, k := range n.StaticKeys() {
		var child strings.Builder
		if err := g.collect(&child, n.Static(k), d+1); err != nil {
			return err
		}
		if child.Len() > 0 {
			fmt.Fprintf(&cases, "case %q:\n%s", k, child.String())
		}
	}
	if cases.Len() > 0 {
		fmt.Fprintf(&deeper, "switch segs[%d] {\n%s}\n", d, cases.String())
	}

	g.branch(b, d, leaf.String(), deeper.String())

	return nil
}

// branch emits code that runs exact when d segments are present and
// deeper when more are.
func (g *generator[T]) branch(b *strings.Builder, d int, exact, deeper string) {
	switch {
	case exact != "" && deeper != "":
		fmt.Fprintf(b, "if len(segs) == %d {\n%s} else {\n%s}\n", d, exact, deeper)
	case exact != "":
		fmt.Fprintf(b, "if len(segs) == %d {\n%s}\n", d, exact)
	case deeper != "":
		fmt.Fprintf(b, "if len(segs) > %d {\n%s}\n", d, deeper)
	}
}

// group emits one match-all leaf group.
func (g *generator[T]) group(b *strings.Builder, n *trie.Node[T], trailing bool, avail int) error {
	var leaf strings.Builder
	if _, err := g.leaf(&leaf, n, trailing, avail); err != nil {
		return err
	}
	if leaf.Len() == 0 {
		return nil
	}
	fmt.Fprintf(b, "{\nvar g []%s.Match[any]\n%sif len(g) > 0 {\ngroups = append(groups, g)\n}\n}\n", g.q, leaf.String())

	return nil
}

// leaf emits the method dispatch of n and reports whether it always
// returns. avail is the number of request segments known to be present.
// With trailing set, only records whose last parameter is optional are
// considered.
func (g *generator[T]) leaf(b *strings.Builder, n *trie.Node[T], trailing bool, avail int) (bool, error) {
	methods := n.Methods()
	if len(methods) == 0 {
		return false, nil
	}

	records := func(m string) []*trie.Record[T] {
		var out []*trie.Record[T]
		for _, rec := range n.Records(m) {
			if !trailing || rec.Optional() {
				out = append(out, rec)
			}
		}
		return out
	}

	var anyRecs []*trie.Record[T]
	var specific []string
	for _, m := range methods {
		if m == trie.MethodAny {
			anyRecs = records(m)
		} else {
			specific = append(specific, m)
		}
	}

	if len(specific) == 0 {
		return g.records(b, anyRecs, avail)
	}

	// A switch terminates when it has a default and every clause returns.
	var sw strings.Builder
	done := len(anyRecs) > 0
	for _, m := range specific {
		fmt.Fprintf(&sw, "case %q:\n", m)
		caseDone, err := g.records(&sw, records(m), avail)
		if err != nil {
			return false, err
		}
		done = done && caseDone
	}
	if len(anyRecs) > 0 {
		sw.WriteString("default:\n")
		defaultDone, err := g.records(&sw, anyRecs, avail)
		if err != nil {
			return false, err
		}
		done = done && defaultDone
	}
	fmt.Fprintf(b, "switch method {\n%s}\n", sw.String())

	return done, nil
}

// records emits the records of one method key in insertion order and
// reports whether the emitted statements always return.
func (g *generator[T]) records(b *strings.Builder, recs []*trie.Record[T], avail int) (bool, error) {
	for _, rec := range recs {
		var conds []trie.ParamEntry
		eligible := true
		for _, p := range rec.Params() {
			if p.Pattern == nil {
				continue
			}
			if p.Index >= avail {
				eligible = false
				break
			}
			conds = append(conds, p)
		}
		if !eligible {
			continue
		}

		result, err := g.result(rec, avail)
		if err != nil {
			return false, err
		}
		for _, p := range conds {
			fmt.Fprintf(b, "if m%d := %s.FindStringSubmatch(segs[%d]); m%d != nil {\n",
				p.Index, g.subPattern(p.Pattern), p.Index, p.Index)
		}
		b.WriteString(result)
		b.WriteString(strings.Repeat("}\n", len(conds)))

		// An unconditional return ends the candidates of this key.
		if len(conds) == 0 && !g.matchAll {
			return true, nil
		}
	}

	return false, nil
}

// result emits the statement that produces a match for rec.
func (g *generator[T]) result(rec *trie.Record[T], avail int) (string, error) {
	data, err := g.encode(rec)
	if err != nil {
		return "", err
	}

	match := g.q + ".Match[any]{Data: " + data
	if params := g.params(rec, avail); params != "" {
		match += ", Params: " + params
	}
	match += "}"

	if g.matchAll {
		return "g = append(g, " + match + ")\n", nil
	}

	return "return " + match + ", true\n", nil
}

// params emits the parameter map literal of rec, or "" when it has none.
// Keys are fixed; a later entry with the same key replaces an earlier one.
func (g *generator[T]) params(rec *trie.Record[T], avail int) string {
	entries := rec.Params()
	if len(entries) == 0 {
		return ""
	}

	var keys []string
	values := make(map[string]string, len(entries))
	set := func(k, v string) {
		if _, ok := values[k]; !ok {
			keys = append(keys, k)
		}
		values[k] = v
	}
	for _, p := range entries {
		switch {
		case p.CatchAll:
			if p.Index < avail {
				g.usesStrings = true
				set(p.Name, fmt.Sprintf("strings.Join(segs[%d:], \"/\")", p.Index))
			} else {
				set(p.Name, `""`)
			}
		case p.Index >= avail:
			// optional segment absent
		case p.Pattern != nil:
			for i, name := range p.Pattern.SubexpNames() {
				if i > 0 && name != "" {
					set(name, fmt.Sprintf("m%d[%d]", p.Index, i))
				}
			}
		default:
			set(p.Name, fmt.Sprintf("segs[%d]", p.Index))
		}
	}

	var b strings.Builder
	b.WriteString("map[string]string{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %s", k, values[k])
	}
	b.WriteString("}")

	return b.String()
}

// subPattern returns the package-level variable holding re, declaring it once.
func (g *generator[T]) subPattern(re *regexp.Regexp) string {
	if name, ok := g.reNames[re]; ok {
		return name
	}
	name := fmt.Sprintf("%sRe%d", g.name, len(g.regexps))
	g.reNames[re] = name
	g.regexps = append(g.regexps, regexpVar{Name: name, Expr: re.String()})
	g.usesRegexp = true

	return name
}

// encode returns the Go expression of rec's payload.
func (g *generator[T]) encode(rec *trie.Record[T]) (string, error) {
	if s, ok := g.data[rec]; ok {
		return s, nil
	}
	s, err := g.o.encode(any(rec.Data()))
	if err != nil {
		return "", fmt.Errorf("compiler: %s %s: %w", rec.Method(), rec.Pattern(), err)
	}
	g.data[rec] = s

	return s, nil
}
