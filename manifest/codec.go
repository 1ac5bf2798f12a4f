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
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Format identifies a manifest encoding.
type Format string

const (
	// FormatYAML is a YAML manifest (.yaml, .yml).
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML manifest (.toml).
	FormatTOML Format = "toml"
	// FormatJSON is a JSON manifest (.json).
	FormatJSON Format = "json"
)

// Codec encodes and decodes manifests of one format.
// Implementations must be safe for concurrent use.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

var codecs = struct {
	sync.RWMutex
	m map[Format]Codec
}{
	m: map[Format]Codec{
		FormatYAML: yamlCodec{},
		FormatTOML: tomlCodec{},
		FormatJSON: jsonCodec{},
	},
}

// RegisterCodec registers c for format f, replacing any existing codec.
func RegisterCodec(f Format, c Codec) {
	codecs.Lock()
	defer codecs.Unlock()
	codecs.m[f] = c
}

func codecFor(f Format) (Codec, error) {
	codecs.RLock()
	defer codecs.RUnlock()
	c, ok := codecs.m[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	return c, nil
}

// FormatFromPath returns the format for a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
}

type yamlCodec struct{}

func (yamlCodec) Encode(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

type tomlCodec struct{}

func (tomlCodec) Encode(v any) ([]byte, error) {
	return toml.Marshal(v)
}

func (tomlCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
