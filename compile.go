// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package poptrie

import (
	"github.com/gammazero/deque"

	"github.com/poptrie/poptrie/internal/mtrie"
)

// countNodes walks the multiway trie once to size the N and L arrays before
// the BFS sweep allocates them. internal counts every multiway node
// (including the root); leafRuns counts, per node, the number of maximal
// runs of identical fib_index among that node's leaf children — the same
// run-length rule the compiler itself applies while populating L.
func countNodes(n *mtrie.Node) (internal, leafRuns int) {
	internal = 1

	var haveLeaf bool
	var lastFib uint32

	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if child.Leaf {
			if !haveLeaf || child.FibIndex != lastFib {
				leafRuns++
				lastFib = child.FibIndex
				haveLeaf = true
			}
			continue
		}
		ci, cl := countNodes(child)
		internal += ci
		leafRuns += cl
	}

	return internal, leafRuns
}

type compileItem struct {
	mnode  *mtrie.Node
	index  int
	level  int    // depth of mnode in bits from the root
	prefix uint32 // the first level bits of the path to mnode
}

// compile performs the level-order sweep: the root seats at
// n[0], then a BFS worklist hands each multiway node its already-assigned
// N index, fills in its vector/leafvec/base1/base0 from its 64 children,
// and pushes any internal child onto the worklist with the N index it was
// just given. Leaf children are reference-compacted into L by run of
// identical fib_index. Direct-pointing entries are populated opportunistically
// while visiting each child, keyed off that child's depth relative to s.
func compile(root *mtrie.Node, directBits uint8) *Poptrie {
	internalCount, leafCount := countNodes(root)

	n := make([]nEntry, internalCount)
	dLen := 1
	if directBits > 0 {
		dLen = 1 << directBits
	}
	d := make([]dEntry, dLen)

	s := int(directBits)
	if s == 0 {
		// no node is ever visited as "a child at level 0" (only the root sits
		// there, and the root is never anyone's child), so the generic
		// direct-pointing population below can't seed D[0]; do it directly.
		d[0] = dEntry{directIndex: 0}
	}

	l := make([]lEntry, leafCount)

	work := deque.New[compileItem]()
	work.PushBack(compileItem{mnode: root, index: 0})

	nextFreeN := 1
	nextFreeL := 0

	for work.Len() > 0 {
		item := work.PopFront()
		entry := nEntry{base1: -1, base0: -1}

		var haveLeaf bool
		var lastFib uint32

		for i := 0; i < mtrie.Width; i++ {
			child := item.mnode.Children[i]
			if child == nil {
				continue
			}

			var childNIndex int
			childLevel := item.level + mtrie.Stride
			childPrefix := item.prefix<<mtrie.Stride | uint32(i)

			if child.Leaf {
				if !haveLeaf || child.FibIndex != lastFib {
					l[nextFreeL] = lEntry{fibIndex: child.FibIndex}
					entry.leafvec.Set(uint(i))
					if entry.base0 == -1 {
						entry.base0 = int32(nextFreeL)
					}
					nextFreeL++
					lastFib = child.FibIndex
					haveLeaf = true
				}
			} else {
				childNIndex = nextFreeN
				entry.vector.Set(uint(i))
				if entry.base1 == -1 {
					entry.base1 = int32(childNIndex)
				}
				nextFreeN++
				work.PushBack(compileItem{mnode: child, index: childNIndex, level: childLevel, prefix: childPrefix})
			}

			populateDirect(d, s, child, childLevel, childPrefix, childNIndex)
		}

		n[item.index] = entry
	}

	return &Poptrie{n: n, l: l, d: d, s: directBits}
}

// populateDirect seeds D while visiting a multiway child during the BFS
// sweep: a child sitting exactly at depth s gets its own D slot; a leaf
// sitting shallower than s covers every D slot under its prefix. Internal
// children shallower than s need no D entry of their own — they're
// subsumed by whichever of their descendants eventually lands exactly on
// depth s. level and prefix are the child's depth in bits and the path bits
// leading to its slot, taken from its position in the trie.
func populateDirect(d []dEntry, s int, child *mtrie.Node, level int, prefix uint32, childNIndex int) {
	if s == 0 {
		return
	}

	switch {
	case level == s:
		if child.Leaf {
			d[prefix] = dEntry{directIndex: leafDirectIndex(child.FibIndex)}
		} else {
			d[prefix] = dEntry{directIndex: uint32(childNIndex)}
		}

	case level < s && child.Leaf:
		shift := uint(s - level)
		base := prefix << shift
		count := uint32(1) << shift
		handle := dEntry{directIndex: leafDirectIndex(child.FibIndex)}
		for z := base; z < base+count; z++ {
			d[z] = handle
		}
	}
}
