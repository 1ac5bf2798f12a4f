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

package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"rivaas.dev/pathtrie/trie"
)

// InlineSource is the [Error.Source] of manifests parsed from memory.
const InlineSource = "inline"

// AnyMethod is the manifest spelling of [trie.MethodAny]. "*" is accepted too.
const AnyMethod = "ANY"

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	if err = c.AddResource("manifest.json", doc); err != nil {
		return nil, err
	}

	return c.Compile("manifest.json")
})

// Manifest is a declarative route table.
type Manifest struct {
	Package  string   `mapstructure:"package" json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty"`
	Name     string   `mapstructure:"name" json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	MatchAll bool     `mapstructure:"match_all" json:"match_all,omitempty" yaml:"match_all,omitempty" toml:"match_all,omitempty"`
	Defaults Defaults `mapstructure:"defaults" json:"-" yaml:"-" toml:"-"`
	Routes   []Route  `mapstructure:"routes" json:"routes" yaml:"routes" toml:"routes"`

	source string
}

// Defaults fill in fields a route leaves empty. Tags are merged key by key;
// a route's own tags win.
type Defaults struct {
	Methods []string          `mapstructure:"methods"`
	Handler string            `mapstructure:"handler"`
	Tags    map[string]string `mapstructure:"tags"`
}

// Route is one manifest entry. Its handler is the payload registered in the
// tree for every method.
type Route struct {
	Name    string            `mapstructure:"name" json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Pattern string            `mapstructure:"pattern" json:"pattern" yaml:"pattern" toml:"pattern"`
	Methods []string          `mapstructure:"methods" json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty"`
	Handler string            `mapstructure:"handler" json:"handler,omitempty" yaml:"handler,omitempty" toml:"handler,omitempty"`
	Tags    map[string]string `mapstructure:"tags" json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
}

// Source returns the file the manifest was loaded from, or [InlineSource].
func (m *Manifest) Source() string {
	if m.source == "" {
		return InlineSource
	}

	return m.source
}

// LoadFile reads a manifest, picking the format from the file extension.
func LoadFile(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, newError(path, "read", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, "read", err)
	}

	return parse(path, data, format)
}

// Parse decodes, validates and binds a manifest held in memory.
// Defaults are applied to every route.
//
// Errors are [*Error] values; schema violations wrap a
// [*jsonschema.ValidationError].
func Parse(data []byte, format Format) (*Manifest, error) {
	return parse(InlineSource, data, format)
}

func parse(source string, data []byte, format Format) (*Manifest, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, newError(source, "decode", err)
	}

	var raw map[string]any
	if err = c.Decode(data, &raw); err != nil {
		return nil, newError(source, "decode", err)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	values, _ := normalize(raw).(map[string]any)

	schema, err := compiledSchema()
	if err != nil {
		return nil, newError(source, "validate", err)
	}
	if err = schema.Validate(values); err != nil {
		return nil, newError(source, "validate", err)
	}

	m := &Manifest{source: source}
	if err = bind(values, m); err != nil {
		return nil, newError(source, "bind", err)
	}
	if err = m.applyDefaults(source); err != nil {
		return nil, err
	}

	return m, nil
}

func bind(values map[string]any, m *Manifest) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           m,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			stringMapHook,
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("failed to decode manifest: %w", err)
	}

	return nil
}

var stringMapType = reflect.TypeFor[map[string]string]()

// stringMapHook coerces tag values such as numbers and booleans to strings.
var stringMapHook mapstructure.DecodeHookFuncType = func(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != stringMapType {
		return data, nil
	}

	return cast.ToStringMapStringE(data)
}

// applyDefaults merges the defaults block into every route and normalizes
// method names.
func (m *Manifest) applyDefaults(source string) error {
	for i := range m.Routes {
		r := &m.Routes[i]
		field := fmt.Sprintf("routes[%d]", i)

		defaults := Route{
			Methods: slices.Clone(m.Defaults.Methods),
			Handler: m.Defaults.Handler,
			Tags:    maps.Clone(m.Defaults.Tags),
		}
		if err := mergo.Merge(r, defaults); err != nil {
			return newFieldError(source, field, "merge", err)
		}

		if r.Handler == "" {
			r.Handler = r.Name
		}
		if r.Handler == "" {
			return newFieldError(source, field, "validate", fmt.Errorf("%w: %s", ErrMissingHandler, r.Pattern))
		}
		r.Methods = normalizeMethods(r.Methods)
	}

	return nil
}

// normalizeMethods upper-cases and trims method names and drops duplicates.
// An empty list means every method.
func normalizeMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if m == "*" {
			m = AnyMethod
		}
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return []string{AnyMethod}
	}

	return out
}

// treeMethod maps a manifest method name to a tree method key.
func treeMethod(m string) string {
	if m == AnyMethod {
		return trie.MethodAny
	}

	return m
}

// Build registers every route in a new tree, in manifest order.
// Each route is inserted once per method with its handler as payload.
func (m *Manifest) Build(opts ...trie.Option) (t *trie.Tree[string], err error) {
	t = trie.New[string](opts...)

	var current string
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !errors.Is(perr, trie.ErrInvalidPattern) {
				panic(r)
			}
			t, err = nil, newFieldError(m.Source(), current, "build", perr)
		}
	}()

	for i, r := range m.Routes {
		current = fmt.Sprintf("routes[%d]", i)
		for _, method := range r.Methods {
			t.Insert(treeMethod(method), r.Pattern, r.Handler)
		}
	}

	return t, nil
}

// Find returns the first route registered for method and pattern. method
// is a tree method, so [trie.MethodAny] selects routes listing ANY; patterns
// are compared after [trie.NormalizePattern]. Records of a tree built by
// [Manifest.Build] always have a route.
func (m *Manifest) Find(method, pattern string) (Route, bool) {
	pattern = trie.NormalizePattern(pattern)
	method = trie.NormalizeMethod(method)
	for _, r := range m.Routes {
		if trie.NormalizePattern(r.Pattern) != pattern {
			continue
		}
		for _, rm := range r.Methods {
			if treeMethod(rm) == method {
				return r, true
			}
		}
	}

	return Route{}, false
}

// Encode writes the manifest, with defaults applied to its routes, in format.
func (m *Manifest) Encode(format Format) ([]byte, error) {
	c, err := codecFor(format)
	if err != nil {
		return nil, newError(m.Source(), "encode", err)
	}

	data, err := c.Encode(m)
	if err != nil {
		return nil, newError(m.Source(), "encode", err)
	}

	return data, nil
}

// normalize converts decoded documents to the shapes JSON Schema validation
// understands: []any for every list, map[string]any for every table.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = normalize(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[cast.ToString(k)] = normalize(e)
		}

		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return v
	}
}
