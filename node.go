// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package poptrie

import "github.com/poptrie/poptrie/internal/bitvec"

// directLeafBit marks a direct-pointing entry (or a logical D-slot) as a
// resolved leaf: the low 31 bits are then a fib_index instead of an index
// into n. fib_index values must never exceed 1<<31 - 1.
const directLeafBit = uint32(1) << 31

// nEntry is one slot of the internal node array N.
type nEntry struct {
	vector  bitvec.Vector64 // bit i set: child slot i is an internal node
	leafvec bitvec.Vector64 // bit i set: child slot i starts a new leaf run
	base1   int32           // first internal child's index into n, -1 if none
	base0   int32           // first leaf child's index into l, -1 if none
}

// lEntry is one slot of the leaf array L. Consecutive stride slots that
// share a fib_index are reference-compacted into a single lEntry.
type lEntry struct {
	fibIndex uint32
}

// dEntry is one slot of the direct-pointing array D.
type dEntry struct {
	// directIndex: if bit 31 is set, bits 0..30 are a fib_index and this
	// logical node is a leaf; otherwise it is an index into n.
	directIndex uint32
}

func leafDirectIndex(fibIndex uint32) uint32 {
	return directLeafBit | fibIndex
}

func isDirectLeaf(directIndex uint32) bool {
	return directIndex&directLeafBit != 0
}

func directLeafFib(directIndex uint32) uint32 {
	return directIndex &^ directLeafBit
}
