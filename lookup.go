// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package poptrie

import (
	"github.com/poptrie/poptrie/internal/bitvec"
	"github.com/poptrie/poptrie/internal/mtrie"
)

// Poptrie is a compiled, immutable longest-prefix-match lookup structure.
// Once returned from Builder.BuildPoptrie it is safe for concurrent
// read-only use by any number of goroutines; nothing about a Lookup call
// mutates shared state.
type Poptrie struct {
	n []nEntry
	l []lEntry
	d []dEntry
	s uint8
}

// InternalNodeCount returns the number of entries in the internal node
// array N. Diagnostic only.
func (p *Poptrie) InternalNodeCount() int {
	return len(p.n)
}

// LeafCount returns the number of entries in the leaf array L. Diagnostic
// only.
func (p *Poptrie) LeafCount() int {
	return len(p.l)
}

// Lookup answers the longest-prefix-match question for key, an IPv4
// destination address. It returns false when the descent ends in a node
// that has no leaf run at or before the key's slot, and never reads past
// the end of the compiled arrays. With a default route every key is
// covered. Without one, not every uncovered key reports false: an empty
// slot that follows a leaf run in the same node resolves to that run, and
// with direct pointing on, a D slot that no prefix reaches sends the
// descent to the root at offset s.
func (p *Poptrie) Lookup(key uint32) (fibIndex uint32, ok bool) {
	packed := bitvec.Pack(key)

	index := int(bitvec.Extract(packed, 0, int(p.s)))
	dHandle := p.d[index].directIndex

	if isDirectLeaf(dHandle) {
		return directLeafFib(dHandle), true
	}

	index = int(dHandle)
	offset := int(p.s)

	for {
		node := &p.n[index]
		v := uint(bitvec.Extract(packed, offset, mtrie.Stride))

		if !node.vector.Test(v) {
			break
		}

		index = int(node.base1) + node.vector.Rank(v) - 1
		offset += mtrie.Stride
	}

	node := &p.n[index]
	v := uint(bitvec.Extract(packed, offset, mtrie.Stride))

	rank := node.leafvec.Rank(v)
	if rank == 0 {
		return 0, false
	}

	leaf := p.l[int(node.base0)+rank-1]

	return leaf.fibIndex, true
}
