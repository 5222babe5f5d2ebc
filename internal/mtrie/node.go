// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

// Package mtrie implements the stride-6 multiway trie that the Poptrie
// compiler consumes: controlled-prefix expansion ("hole punching") happens
// here, once, before compilation — the compiler and the lookup path both
// assume every leaf already reflects the winning longest-prefix-match.
package mtrie

// Stride is the fixed number of key bits consumed per trie level. A stride
// of 6 gives each internal node exactly 64 children, matching a 64-bit
// descendant bit vector one for one.
const Stride = 6

// Width is the number of child slots per node (1 << Stride).
const Width = 1 << Stride

// Node is one level of the multiway trie. A node is either a leaf (Leaf
// true, no live children) or internal (children may themselves be leaves
// or internal nodes, never both nil and non-leaf).
type Node struct {
	Children [Width]*Node

	Leaf bool

	// Populated only when Leaf is true.
	FibIndex    uint32
	IP          uint32
	PrefixLen   uint8
	PrefixValue uint32 // extract(ip, 0, Level)
	Level       uint8  // depth in bits from the root; multiple of Stride
}

func newLeaf(ip uint32, prefixLen uint8, fibIndex uint32, level uint8, prefixValue uint32) *Node {
	return &Node{
		Leaf:        true,
		FibIndex:    fibIndex,
		IP:          ip,
		PrefixLen:   prefixLen,
		Level:       level,
		PrefixValue: prefixValue,
	}
}
