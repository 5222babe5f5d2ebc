// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

package poptrie

import (
	"errors"
	"fmt"
	"io"
)

// Stats is a diagnostic snapshot of a compiled Poptrie's array sizes,
// beyond what InternalNodeCount/LeafCount alone report.
type Stats struct {
	InternalNodes int
	Leaves        int
	DirectEntries int
}

// Stats reports the sizes of the compiled N, L and D arrays.
func (p *Poptrie) Stats() Stats {
	return Stats{
		InternalNodes: len(p.n),
		Leaves:        len(p.l),
		DirectEntries: len(p.d),
	}
}

// Dump writes a line-oriented text representation of the compiled arrays
// to w, for debugging and for determinism checks: two builds from the same
// insertion order and direct_bits must dump identically.
func (p *Poptrie) Dump(w io.Writer) error {
	if w == nil {
		return errors.New("poptrie: nil writer")
	}

	if _, err := fmt.Fprintf(w, "direct_bits=%d entries=%d\n", p.s, len(p.d)); err != nil {
		return err
	}
	for i, e := range p.d {
		if _, err := fmt.Fprintf(w, "D[%d] direct_index=%#x\n", i, e.directIndex); err != nil {
			return err
		}
	}

	for i, e := range p.n {
		if _, err := fmt.Fprintf(w, "N[%d] vector=%#016x leafvec=%#016x base1=%d base0=%d\n",
			i, e.vector, e.leafvec, e.base1, e.base0); err != nil {
			return err
		}
	}

	for i, e := range p.l {
		if _, err := fmt.Fprintf(w, "L[%d] fib=%d\n", i, e.fibIndex); err != nil {
			return err
		}
	}

	return nil
}
