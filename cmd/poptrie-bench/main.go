// Copyright (c) 2025 The poptrie authors
// SPDX-License-Identifier: MIT

// Command poptrie-bench builds a Poptrie from a prefix data file, checks
// that every input prefix resolves to its own recorded next hop, then runs
// a threaded throughput measurement. It's an external harness exercising
// the lookup engine, not part of it.
package main

import (
	"flag"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/poptrie/poptrie"
	"github.com/poptrie/poptrie/loader"
)

var log zerolog.Logger

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func main() {
	dataset := flag.String("dataset", "testdata/destinations.txt", "path to the prefix data file")
	directBits := flag.Uint("direct-bits", 12, "direct-pointing width: 0, 6, 12, 18 or 24")
	workers := flag.Int("workers", 4, "number of concurrent lookup workers")
	flag.Parse()

	windows := []time.Duration{5 * time.Second, 10 * time.Second, 15 * time.Second, 20 * time.Second, 25 * time.Second}

	setupStart := time.Now()

	result, err := loader.Load(*dataset)
	if err != nil {
		log.Fatal().Err(err).Str("dataset", *dataset).Msg("loading dataset failed")
	}

	b := poptrie.New()
	for _, d := range result.Destinations {
		b.Insert(d.IP, d.PrefixLen, d.FibIndex)
	}

	pt, err := b.BuildPoptrie(uint8(*directBits))
	if err != nil {
		log.Fatal().Err(err).Msg("build failed")
	}

	log.Info().
		Dur("setup", time.Since(setupStart)).
		Int("destinations", len(result.Destinations)).
		Int("next_hops", len(result.FibIndex)).
		Int("internal_nodes", pt.InternalNodeCount()).
		Int("leaves", pt.LeafCount()).
		Msg("build complete")

	checkCorrectness(pt, result.Destinations)
	runThroughput(pt, result.Destinations, *workers, windows)
}

func checkCorrectness(pt *poptrie.Poptrie, destinations []loader.Destination) {
	var ok int
	for _, d := range destinations {
		if fib, found := pt.Lookup(d.IP); found && fib == d.FibIndex {
			ok++
		}
	}

	pct := 100 * float64(ok) / float64(len(destinations))
	log.Info().
		Int("matched", ok).
		Int("total", len(destinations)).
		Float64("percent", pct).
		Msg("correctness check")
}

// runThroughput spawns exactly the configured number of workers, each
// cycling a shared pseudo-random permutation of destination indices and
// cooperatively checking the deadline every 65536 (0x10000) iterations. The join
// loop waits on exactly that many goroutines, not a fixed count.
func runThroughput(pt *poptrie.Poptrie, destinations []loader.Destination, workers int, windows []time.Duration) {
	if len(destinations) == 0 || workers <= 0 {
		return
	}

	perm := rand.New(rand.NewPCG(42, 1)).Perm(len(destinations))
	keys := make([]uint32, len(perm))
	for i, p := range perm {
		keys[i] = destinations[p].IP
	}

	counters := make([]atomic.Uint64, workers)
	deadline := time.Now().Add(windows[len(windows)-1])
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var n uint64
			i := 0
			for {
				pt.Lookup(keys[i])
				n++
				i++
				if i == len(keys) {
					i = 0
				}
				if n&0xFFFF == 0 {
					counters[w].Store(n)
					if time.Now().After(deadline) {
						return
					}
				}
			}
		}(w)
	}

	for _, win := range windows {
		time.Sleep(time.Until(start.Add(win)))
		var total uint64
		for i := range counters {
			total += counters[i].Load()
		}
		elapsed := time.Since(start).Seconds()
		log.Info().
			Dur("window", win).
			Uint64("lookups", total).
			Float64("lookups_per_sec", float64(total)/elapsed).
			Msg("throughput")
	}

	wg.Wait()
}
