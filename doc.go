// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

// Package poptrie implements a longest-prefix-match lookup engine for IPv4
// forwarding tables, based on the Poptrie data structure of Asai and Ohara.
//
// A Builder ingests (prefix, length, next-hop) tuples into a multiway trie
// with stride-6 nodes, expanding shorter prefixes into every stride slot
// they cover. BuildPoptrie then compiles that trie, breadth first, into
// three flat arrays — internal nodes (N), leaves (L) and an optional
// direct-pointing table (D) — so that a lookup walks N and L using
// popcount-indexed child location instead of following pointers.
//
// Build is single threaded. Once compiled, a Poptrie is immutable and safe
// for concurrent read-only use by any number of goroutines.
package poptrie
