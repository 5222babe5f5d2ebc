package poptrie

import "testing"

func ip4(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}

// scenario A: a default route plus one more specific prefix, built with
// direct_bits=12.
func TestScenarioA(t *testing.T) {
	b := New()
	b.Insert(0, 0, 0)                    // 0.0.0.0/0 -> "X" (fib 0)
	b.Insert(ip4(10, 0, 0, 0), 8, 1)      // 10.0.0.0/8 -> "Y" (fib 1)

	pt, err := b.BuildPoptrie(12)
	if err != nil {
		t.Fatal(err)
	}

	if fib, ok := pt.Lookup(ip4(10, 1, 2, 3)); !ok || fib != 1 {
		t.Errorf("10.1.2.3: got (%d, %v), want (1, true)", fib, ok)
	}
	if fib, ok := pt.Lookup(ip4(11, 0, 0, 0)); !ok || fib != 0 {
		t.Errorf("11.0.0.0: got (%d, %v), want (0, true)", fib, ok)
	}
}

func TestScenarioB(t *testing.T) {
	b := New()
	b.Insert(ip4(192, 168, 0, 0), 16, 0) // "A"
	b.Insert(ip4(192, 168, 1, 0), 24, 1) // "B"

	pt, err := b.BuildPoptrie(12)
	if err != nil {
		t.Fatal(err)
	}

	if fib, ok := pt.Lookup(ip4(192, 168, 1, 77)); !ok || fib != 1 {
		t.Errorf("192.168.1.77: got (%d, %v), want (1, true)", fib, ok)
	}
	if fib, ok := pt.Lookup(ip4(192, 168, 2, 1)); !ok || fib != 0 {
		t.Errorf("192.168.2.1: got (%d, %v), want (0, true)", fib, ok)
	}
}

func TestScenarioCNonStrideAlignedLength(t *testing.T) {
	b := New()
	b.Insert(ip4(10, 0, 0, 0), 7, 0) // "P", covers 10.0.0.0-11.255.255.255

	pt, err := b.BuildPoptrie(0)
	if err != nil {
		t.Fatal(err)
	}

	for _, addr := range []uint32{ip4(10, 255, 255, 255), ip4(11, 255, 255, 255)} {
		if fib, ok := pt.Lookup(addr); !ok || fib != 0 {
			t.Errorf("%#x: got (%d, %v), want (0, true)", addr, fib, ok)
		}
	}
	// 12.0.0.0 is not covered by any prefix and there is no default route:
	// the returned fib index is unspecified, only "ok" and no panic or
	// out-of-bounds read are guaranteed.
	_, _ = pt.Lookup(ip4(12, 0, 0, 0))
}

func TestScenarioDMoreSpecificOverDefault(t *testing.T) {
	b := New()
	b.Insert(ip4(41, 206, 16, 0), 24, 0) // "R"
	b.Insert(0, 0, 1)                    // default "D"

	pt, err := b.BuildPoptrie(12)
	if err != nil {
		t.Fatal(err)
	}

	if fib, ok := pt.Lookup(ip4(41, 206, 16, 5)); !ok || fib != 0 {
		t.Errorf("41.206.16.5: got (%d, %v), want (0, true)", fib, ok)
	}
}

func TestScenarioEDirectPointingDisjointSubnets(t *testing.T) {
	b := New()
	want := make(map[uint32]uint32)

	for i := 0; i < 100; i++ {
		// 100 disjoint /16s, one per value of the first octet: each
		// lands under its own distinct /12-aligned parent in the trie, so
		// the direct-pointing table at s=12 exercises the
		// exactly-at-depth-s branch across the whole set.
		addr := ip4(byte(i), 0, 0, 0)
		b.Insert(addr, 16, uint32(i))
		want[addr] = uint32(i)
	}

	pt, err := b.BuildPoptrie(12)
	if err != nil {
		t.Fatal(err)
	}

	for addr, fib := range want {
		if got, ok := pt.Lookup(addr); !ok || got != fib {
			t.Errorf("%#x: got (%d, %v), want (%d, true)", addr, got, ok, fib)
		}
	}
}

func TestScenarioFDirectPointingDisabled(t *testing.T) {
	b := New()
	b.Insert(0, 0, 0)
	b.Insert(ip4(10, 0, 0, 0), 8, 1)

	pt, err := b.BuildPoptrie(0)
	if err != nil {
		t.Fatal(err)
	}

	if fib, ok := pt.Lookup(ip4(10, 1, 2, 3)); !ok || fib != 1 {
		t.Errorf("got (%d, %v), want (1, true)", fib, ok)
	}
}

func TestBuildEmptyReturnsErrEmptyAndSentinel(t *testing.T) {
	b := New()
	pt, err := b.BuildPoptrie(0)
	if err != ErrEmpty {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if _, ok := pt.Lookup(ip4(1, 2, 3, 4)); ok {
		t.Errorf("empty poptrie resolved a lookup, want no match")
	}
}

func TestBuildPoptrieInvalidDirectBitsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid direct_bits")
		}
	}()
	b := New()
	b.Insert(0, 0, 0)
	b.BuildPoptrie(3)
}

func TestNoDefaultRouteReturnsNoMatch(t *testing.T) {
	b := New()
	b.Insert(ip4(192, 168, 1, 0), 24, 0)

	pt, err := b.BuildPoptrie(0)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := pt.Lookup(ip4(8, 8, 8, 8)); ok {
		t.Errorf("expected no match for an address outside any prefix")
	}
}

// TestBuildIsDeterministic checks that the same insertion order and
// direct_bits produce bit-identical N/L/D arrays across independent builds.
func TestBuildIsDeterministic(t *testing.T) {
	inserts := []struct {
		ip  uint32
		l   uint8
		fib uint32
	}{
		{0, 0, 0},
		{ip4(10, 0, 0, 0), 8, 1},
		{ip4(192, 168, 0, 0), 16, 2},
		{ip4(192, 168, 1, 0), 24, 3},
	}

	build := func() *Poptrie {
		b := New()
		for _, ins := range inserts {
			b.Insert(ins.ip, ins.l, ins.fib)
		}
		pt, err := b.BuildPoptrie(12)
		if err != nil {
			t.Fatal(err)
		}
		return pt
	}

	a, c := build(), build()
	if a.InternalNodeCount() != c.InternalNodeCount() || a.LeafCount() != c.LeafCount() {
		t.Fatalf("array sizes differ: (%d,%d) vs (%d,%d)",
			a.InternalNodeCount(), a.LeafCount(), c.InternalNodeCount(), c.LeafCount())
	}
	for i := range a.n {
		if a.n[i] != c.n[i] {
			t.Fatalf("n[%d] differs: %+v vs %+v", i, a.n[i], c.n[i])
		}
	}
	for i := range a.l {
		if a.l[i] != c.l[i] {
			t.Fatalf("l[%d] differs: %+v vs %+v", i, a.l[i], c.l[i])
		}
	}
	for i := range a.d {
		if a.d[i] != c.d[i] {
			t.Fatalf("d[%d] differs: %+v vs %+v", i, a.d[i], c.d[i])
		}
	}
}
