// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package helpers

import (
	"github.com/vellumlabs/morton-octree/morton"
)

// LinearCongruentialGenerator is a pseudo-random number generator
// whose magic numbers come from the 16-bit output used by Microsoft
// Visual Basic 6 and earlier, chosen so property tests get
// reproducible sequences without pulling in math/rand's seeding
// behaviour. See https://en.wikipedia.org/wiki/Linear_congruential_generator
type LinearCongruentialGenerator struct {
	seed uint64
}

// NewGenerator creates a new linear congruential generator.
func NewGenerator() *LinearCongruentialGenerator {
	return &LinearCongruentialGenerator{}
}

// Next returns the next random number in the sequence.
func (rng *LinearCongruentialGenerator) Next() uint16 {
	rng.seed = (rng.seed*1140671485 + 12820163) % 65536
	return uint16(rng.seed)
}

// Digit satisfies octree.RandomSource: a uniform digit in [0,8).
func (rng *LinearCongruentialGenerator) Digit() uint8 {
	return uint8(rng.Next() % 8)
}

// FullKey64 satisfies octree.RandomSource[morton.Key64]: a uniform
// 64-bit Morton-width integer, assembled from four 16-bit draws.
func (rng *LinearCongruentialGenerator) FullKey64() morton.Key64 {
	top := uint64(rng.Next())
	hi := uint64(rng.Next())
	mid := uint64(rng.Next())
	lo := uint64(rng.Next())
	return morton.Key64(top<<48 | hi<<32 | mid<<16 | lo)
}

// FullKey satisfies octree.RandomSource[morton.Key64] by delegating
// to FullKey64.
func (rng *LinearCongruentialGenerator) FullKey() morton.Key64 {
	return rng.FullKey64()
}

// SampleRegisterWrites generates count distinct (Morton, payload)
// pairs by drawing random lattice coordinates and encoding them,
// for use as property-test fixtures against either octree
// representation.
func SampleRegisterWrites(rng *LinearCongruentialGenerator, count int) ([]morton.Key64, []uint16) {
	keys := make([]morton.Key64, 0, count)
	payloads := make([]uint16, 0, count)
	seen := make(map[morton.Key64]struct{}, count)
	for len(keys) < count {
		x := uint32(rng.Next()) & ((1 << morton.DimBits64) - 1)
		y := uint32(rng.Next()) & ((1 << morton.DimBits64) - 1)
		z := uint32(rng.Next()) & ((1 << morton.DimBits64) - 1)
		m := morton.Encode64(x, y, z)
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		keys = append(keys, m)
		payloads = append(payloads, rng.Next())
	}
	return keys, payloads
}
