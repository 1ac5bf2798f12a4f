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
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultCatchAllName is the parameter name of a bare "**" segment.
const DefaultCatchAllName = "_"

// paramToken finds ":name" tokens inside a segment.
var paramToken = regexp.MustCompile(`:(\w+)`)

// plainParam matches a segment that is exactly ":name" or ":name?".
var plainParam = regexp.MustCompile(`^:(\w+)(\?)?$`)

type segmentKind uint8

const (
	segStatic   segmentKind = iota // users
	segParam                       // :id, *, file-:name.:ext
	segWildcard                    // **, **:path
)

// segment is one parsed pattern segment.
type segment struct {
	kind  segmentKind
	text  string // Literal text for static segments, raw text otherwise
	plain bool   // Param segment of the exact form ":name"
	entry int    // Index into pattern.entries for dynamic segments
}

// pattern is a parsed route pattern.
type pattern struct {
	normalized string
	segments   []segment
	entries    []ParamEntry
	dynamic    bool
}

// parsePattern splits raw into segments and builds its parameter map.
// Empty segments are ignored, so "/a//b/" and "/a/b" are the same pattern.
//
// It returns an error only when a mixed segment does not compile into a
// valid sub-pattern.
func parsePattern(raw string) (*pattern, error) {
	parts := strings.FieldsFunc(raw, isSlash)
	p := &pattern{
		normalized: "/" + strings.Join(parts, "/"),
		segments:   make([]segment, 0, len(parts)),
	}

	unnamed := 0
	for i, part := range parts {
		switch {
		case strings.HasPrefix(part, "**"):
			name := strings.TrimPrefix(part[2:], ":")
			optional := name == ""
			if optional {
				name = DefaultCatchAllName
			}
			p.addDynamic(segWildcard, part, false, ParamEntry{
				Index:    i,
				Name:     name,
				Optional: optional,
				CatchAll: true,
			})

		case part == "*":
			p.addDynamic(segParam, part, false, ParamEntry{
				Index:    i,
				Name:     "_" + strconv.Itoa(unnamed),
				Optional: true,
			})
			unnamed++

		case plainParam.MatchString(part):
			m := plainParam.FindStringSubmatch(part)
			p.addDynamic(segParam, part, true, ParamEntry{
				Index:    i,
				Name:     m[1],
				Optional: m[2] == "?",
			})

		case paramToken.MatchString(part):
			re, err := compileSegment(part)
			if err != nil {
				return nil, err
			}
			p.addDynamic(segParam, part, false, ParamEntry{
				Index:   i,
				Pattern: re,
			})

		default:
			p.segments = append(p.segments, segment{kind: segStatic, text: part})
		}
	}

	return p, nil
}

func isSlash(r rune) bool { return r == '/' }

// NormalizePattern returns pattern the way [Record.Pattern] reports it:
// empty segments and a trailing slash removed, with a leading slash.
func NormalizePattern(pattern string) string {
	return "/" + strings.Join(strings.FieldsFunc(pattern, isSlash), "/")
}

func (p *pattern) addDynamic(kind segmentKind, text string, plain bool, e ParamEntry) {
	p.segments = append(p.segments, segment{
		kind:  kind,
		text:  text,
		plain: plain,
		entry: len(p.entries),
	})
	p.entries = append(p.entries, e)
	p.dynamic = true
}

// compileSegment turns a mixed segment such as "file-:name.:ext" into an
// anchored regular expression with one named group per parameter.
func compileSegment(part string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')

	last := 0
	for _, loc := range paramToken.FindAllStringSubmatchIndex(part, -1) {
		b.WriteString(regexp.QuoteMeta(part[last:loc[0]]))
		b.WriteString("(?P<")
		b.WriteString(part[loc[2]:loc[3]])
		b.WriteString(">[^/]+)")
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(part[last:]))
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: segment %q: %w", ErrInvalidPattern, part, err)
	}

	return re, nil
}

// TrimTrailingSlash strips a single trailing slash, except for the root path.
func TrimTrailingSlash(path string) string {
	if len(path) > 1 && path[len(path)-1] == '/' {
		return path[:len(path)-1]
	}

	return path
}

// SplitPath splits a normalized request path into segments.
// The leading slash is dropped; interior empty segments are kept so
// "/a//b" never matches "/a/b".
func SplitPath(path string) []string {
	if path != "" && path[0] == '/' {
		path = path[1:]
	}
	if path == "" {
		return nil
	}

	return strings.Split(path, "/")
}

// NormalizeMethod upper-cases a method name. [MethodAny] is left as is.
func NormalizeMethod(method string) string {
	return strings.ToUpper(method)
}

// pastCatchAll reports whether the pattern has segments after a catch-all.
func (p *pattern) pastCatchAll() bool {
	for i, seg := range p.segments {
		if seg.kind == segWildcard && i < len(p.segments)-1 {
			return true
		}
	}

	return false
}
