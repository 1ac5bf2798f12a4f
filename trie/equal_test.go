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
)

func TestSameData(t *testing.T) {
	t.Parallel()

	type payload struct {
		ID   int
		Tags []string
	}

	p1 := &payload{ID: 1}
	p2 := &payload{ID: 1}
	ch := make(chan int)

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"equal strings", "x", "x", true},
		{"different strings", "x", "y", false},
		{"equal structs", payload{ID: 1, Tags: []string{"a"}}, payload{ID: 1, Tags: []string{"a"}}, true},
		{"different structs", payload{ID: 1}, payload{ID: 2}, false},
		{"same pointer", p1, p1, true},
		{"distinct pointers to equal values", p1, p2, false},
		{"same channel", ch, ch, true},
		{"different channels", ch, make(chan int), false},
		{"both nil", nil, nil, true},
		{"nil and value", nil, 1, false},
		{"different dynamic types", 1, int64(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sameData[any](tt.a, tt.b))
		})
	}
}
