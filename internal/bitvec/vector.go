// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package bitvec

import "math/bits"

// Vector64 is a 64-bit descendant/leaf bit vector, one bit per stride slot.
// Stride is fixed at 6 bits, so 64 slots always fit exactly one word — no
// slice-backed bitset is needed here, unlike the arbitrary-length bitsets
// a long-lived routing table keeps per node.
type Vector64 uint64

// Test reports whether bit i is set.
func (v Vector64) Test(i uint) bool {
	return v&(1<<i) != 0
}

// Set sets bit i.
func (v *Vector64) Set(i uint) {
	*v |= 1 << i
}

// Count returns the population count (number of set bits).
func (v Vector64) Count() int {
	return bits.OnesCount64(uint64(v))
}

// Rank returns the number of set bits in [0, i], i.e. the popcount
// including bit i itself. Used to turn a stride slot into a dense array
// index: the child or leaf at slot i sits at Rank(i)-1 in the
// corresponding N or L sub-array, since Rank counts slot i whether or not
// it is actually the one we're resolving.
func (v Vector64) Rank(i uint) int {
	if i >= 63 {
		return v.Count()
	}
	return bits.OnesCount64(uint64(v) & ((2 << i) - 1))
}
