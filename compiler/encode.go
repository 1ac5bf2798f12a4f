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
	"errors"
	"fmt"
	"math"
	"strconv"
)

// SourceEncoder is implemented by payloads that can be written as a Go
// expression in generated source.
//
// Example:
//
//	type Route struct{ Name string }
//
//	func (r Route) GoSource() (string, error) {
//	    return fmt.Sprintf("routes.Route{Name: %q}", r.Name), nil
//	}
type SourceEncoder interface {
	GoSource() (string, error)
}

// Encoder turns a payload into a Go expression. It returns an error wrapping
// [ErrNoEncoder] when it does not handle the value.
type Encoder func(v any) (string, error)

// Encode is the built-in payload encoding. It handles nil, [SourceEncoder],
// strings, booleans, and finite integer and floating-point numbers. Numbers
// other than int are written with a conversion so the generated value keeps
// its dynamic type.
func Encode(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "nil", nil
	case SourceEncoder:
		return x.GoSource()
	case string:
		return strconv.Quote(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return fmt.Sprintf("%T(%d)", x, x), nil
	case float32:
		return encodeFloat("float32", float64(x), 32)
	case float64:
		return encodeFloat("float64", x, 64)
	default:
		return "", fmt.Errorf("%w: %T", ErrNoEncoder, v)
	}
}

func encodeFloat(typ string, f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: non-finite %s", ErrNoEncoder, typ)
	}

	return typ + "(" + strconv.FormatFloat(f, 'g', -1, bitSize) + ")", nil
}

// encode applies the configured encoder, falling back to [Encode].
func (o *options) encode(v any) (string, error) {
	if o.encoder != nil {
		s, err := o.encoder(v)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrNoEncoder) {
			return "", err
		}
	}

	return Encode(v)
}
