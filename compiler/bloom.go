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

import "fmt"

// FNV-1a constants for inline string hashing. Hashing string bytes directly
// avoids the []byte conversion and interface calls of hash/fnv on the hot path.
const (
	fnvOffsetBasis = 14695981039346656037 // FNV-1a 64-bit offset basis
	fnvPrime       = 1099511628211        // FNV-1a 64-bit prime
)

// hashString returns the FNV-1a hash of s.
func hashString(s string) uint64 {
	hash := uint64(fnvOffsetBasis)
	for i := range len(s) {
		hash ^= uint64(s[i])
		hash *= fnvPrime
	}

	return hash
}

// BloomFilter is a bloom filter for negative lookups on the static table.
// A bloom filter answers:
//   - "definitely not in the set" (always accurate)
//   - "possibly in the set" (may be a false positive)
//
// Paths that are definitely absent skip the table probe.
//
// Hash functions are derived from one FNV-1a hash XORed with per-function seeds.
type BloomFilter struct {
	bits  []uint64 // Bit array (each uint64 holds 64 bits)
	size  uint64   // Total number of bits
	seeds []uint64 // Hash seeds for multiple hash functions
}

// NewBloomFilter creates a bloom filter with size bits and numHashFuncs hash functions.
func NewBloomFilter(size uint64, numHashFuncs int) (*BloomFilter, error) {
	if size == 0 {
		return nil, ErrBloomFilterSizeZero
	}
	if numHashFuncs <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBloomHashFunctionsInvalid, numHashFuncs)
	}

	bf := &BloomFilter{
		bits:  make([]uint64, (size+63)/64), // Round up to nearest 64-bit boundary
		size:  size,
		seeds: make([]uint64, numHashFuncs),
	}
	for i := range numHashFuncs {
		//nolint:gosec // G115: numHashFuncs is small, overflow impossible
		bf.seeds[i] = uint64(i + 1)
	}

	return bf, nil
}

// Add adds s to the filter.
func (bf *BloomFilter) Add(s string) {
	base := hashString(s)
	for _, seed := range bf.seeds {
		pos := (base ^ seed) % bf.size
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether s might be in the filter.
func (bf *BloomFilter) Test(s string) bool {
	return bf.TestHash(hashString(s))
}

// TestHash is Test with a precomputed FNV-1a hash.
// It exits on the first unset bit, since misses are the common case.
func (bf *BloomFilter) TestHash(base uint64) bool {
	for _, seed := range bf.seeds {
		pos := (base ^ seed) % bf.size
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}

	return true
}
