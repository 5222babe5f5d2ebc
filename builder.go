// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package poptrie

import (
	"fmt"

	"github.com/poptrie/poptrie/internal/mtrie"
)

// Builder accumulates (ip, prefixLen, fibIndex) tuples into a multiway trie
// and compiles them into a Poptrie. The zero value is not usable; create
// one with New.
type Builder struct {
	trie     *mtrie.Trie
	inserted int
}

// New returns an empty Builder. Stride is fixed at 6 bits.
func New() *Builder {
	return &Builder{trie: mtrie.New()}
}

// Insert adds a prefix/next-hop tuple to the builder. May be called any
// number of times before BuildPoptrie.
func (b *Builder) Insert(ip uint32, prefixLen uint8, fibIndex uint32) {
	b.trie.Insert(ip, prefixLen, fibIndex)
	b.inserted++
}

// validDirectBits are the only direct-pointing table widths this package
// accepts; any other value is rejected as a programmer error rather than
// silently permitted, the same way stride itself is a structural constant.
func validDirectBits(directBits uint8) bool {
	switch directBits {
	case 0, 6, 12, 18, 24:
		return true
	default:
		return false
	}
}

// BuildPoptrie consumes the builder and compiles its multiway trie into a
// Poptrie with a direct-pointing table of directBits bits (0 disables
// direct pointing). directBits must be one of 0, 6, 12, 18, 24; any other
// value is a programmer error and panics.
//
// If no prefixes were inserted, BuildPoptrie still returns a structurally
// valid Poptrie (every lookup on it reports no match) together with
// ErrEmpty, so a caller can choose to treat this as a configuration error
// without a nil check on the successful path.
func (b *Builder) BuildPoptrie(directBits uint8) (*Poptrie, error) {
	if !validDirectBits(directBits) {
		panic(fmt.Sprintf("poptrie: direct_bits %d is not 0, 6, 12, 18 or 24", directBits))
	}

	pt := compile(b.trie.Root, directBits)

	if b.inserted == 0 {
		return pt, ErrEmpty
	}

	return pt, nil
}
