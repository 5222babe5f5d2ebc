// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

// Package loader reads the line-oriented prefix data files the Poptrie
// driver consumes. It sits outside the Poptrie core, which only cares
// about (ip, prefixLen, fibIndex) tuples, not text parsing.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/poptrie/poptrie"
)

// Destination is one parsed line: a prefix and the next-hop token it maps
// to, already resolved to a dense fib_index.
type Destination struct {
	IP        uint32
	PrefixLen uint8
	NextHop   string
	FibIndex  uint32
}

// Result is everything a driver needs from a dataset: the tuples in file
// order (ready to feed a poptrie.Builder or re-check for correctness) and
// the next_hop token to fib_index assignment, in first-seen order.
type Result struct {
	Destinations []Destination
	FibIndex     map[string]uint32
}

// Load reads path: one "A.B.C.D/len next_hop" entry per line, fib_index
// assigned to each distinct next_hop token in first-seen order.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &poptrie.IoFailure{Err: err}
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (*Result, error) {
	res := &Result{FibIndex: make(map[string]uint32)}

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &poptrie.MalformedPrefix{
				Line: lineNo,
				Err:  fmt.Errorf("expected 2 fields, got %d", len(fields)),
			}
		}

		pfx, err := netip.ParsePrefix(fields[0])
		if err != nil {
			return nil, &poptrie.MalformedPrefix{Line: lineNo, Err: err}
		}
		if !pfx.Addr().Is4() {
			return nil, &poptrie.MalformedPrefix{
				Line: lineNo,
				Err:  fmt.Errorf("%s is not an IPv4 prefix", fields[0]),
			}
		}

		nextHop := fields[1]
		fib, seen := res.FibIndex[nextHop]
		if !seen {
			fib = uint32(len(res.FibIndex))
			res.FibIndex[nextHop] = fib
		}

		addr4 := pfx.Addr().As4()
		ip := uint32(addr4[0])<<24 | uint32(addr4[1])<<16 | uint32(addr4[2])<<8 | uint32(addr4[3])

		res.Destinations = append(res.Destinations, Destination{
			IP:        ip,
			PrefixLen: uint8(pfx.Bits()),
			NextHop:   nextHop,
			FibIndex:  fib,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, &poptrie.IoFailure{Err: err}
	}

	return res, nil
}
