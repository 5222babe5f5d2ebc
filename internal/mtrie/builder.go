// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package mtrie

import "github.com/poptrie/poptrie/internal/bitvec"

// Trie is the multiway trie builder: it owns the tree being constructed and
// is consumed (discarded) once the Poptrie compiler has walked it.
type Trie struct {
	Root *Node
}

// New returns an empty multiway trie with stride fixed at 6.
func New() *Trie {
	return &Trie{Root: &Node{}}
}

func extractIP(ip uint32, offset, length int) uint32 {
	return bitvec.Extract(bitvec.Pack(ip), offset, length)
}

// Insert adds (ip, prefixLen, fibIndex) to the trie, performing controlled
// prefix expansion (hole punching) whenever prefixLen doesn't land on a
// stride boundary, or whenever a shorter prefix needs pushing into an
// already-built subtree.
func (t *Trie) Insert(ip uint32, prefixLen uint8, fibIndex uint32) {
	current := t.Root
	var depth uint8

	for {
		nextDepth := depth + Stride
		idx := uint(extractIP(ip, int(depth), Stride))

		switch {
		case prefixLen == nextDepth:
			child := current.Children[idx]
			switch {
			case child == nil:
				current.Children[idx] = newLeaf(ip, prefixLen, fibIndex, nextDepth, extractIP(ip, 0, int(nextDepth)))
			case child.Leaf:
				// exact collision: last writer wins
				child.FibIndex = fibIndex
				child.IP = ip
				child.PrefixLen = prefixLen
				child.PrefixValue = extractIP(ip, 0, int(nextDepth))
				child.Level = nextDepth
			default:
				holepunch(ip, prefixLen, fibIndex, child, nextDepth, nextDepth+Stride)
			}
			return

		case prefixLen < nextDepth:
			holepunch(ip, prefixLen, fibIndex, current, depth, nextDepth)
			return

		default: // prefixLen > nextDepth, descend further
			child := current.Children[idx]
			switch {
			case child == nil:
				child = &Node{}
				current.Children[idx] = child
			case child.Leaf:
				promoted := &Node{}
				current.Children[idx] = promoted
				holepunch(child.IP, child.PrefixLen, child.FibIndex, promoted, nextDepth, nextDepth+Stride)
				child = promoted
			}
			current = child
			depth = nextDepth
		}
	}
}

// holepunch fills the contiguous range of child slots in node that the
// prefix (ip, prefixLen, fibIndex) covers at this node's depth (offset),
// whose children span [offset, level).
//
// prefixLen <= offset means the prefix was already fully consumed by the
// time we reached this node: fill every slot and recurse into internal
// children. Otherwise prefixLen still has offset..prefixLen fixed bits
// within this stride and prefixLen..level free bits, so only the slot
// range those free bits can take is filled.
func holepunch(ip uint32, prefixLen uint8, fibIndex uint32, node *Node, offset, level uint8) {
	var base, count uint32

	if prefixLen <= offset {
		base, count = 0, Width
	} else {
		fixedBits := int(prefixLen - offset)
		freeBits := uint(level - prefixLen)
		fixedVal := extractIP(ip, int(offset), fixedBits)
		base = fixedVal << freeBits
		count = 1 << freeBits
	}

	for v := uint32(0); v < count; v++ {
		slot := uint(base + v)
		child := node.Children[slot]

		switch {
		case child == nil:
			node.Children[slot] = newLeaf(ip, prefixLen, fibIndex, level, extractIP(ip, 0, int(level)))
		case child.Leaf:
			if child.PrefixLen < prefixLen {
				child.FibIndex = fibIndex
				child.IP = ip
				child.PrefixLen = prefixLen
				child.PrefixValue = extractIP(ip, 0, int(level))
				child.Level = level
			}
			// else: existing leaf has an equal-or-longer prefix, keep it
		default:
			holepunch(ip, prefixLen, fibIndex, child, offset+Stride, level+Stride)
		}
	}
}
