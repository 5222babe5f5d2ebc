package bitvec

import "testing"

func TestVector64SetTestCount(t *testing.T) {
	var v Vector64
	v.Set(0)
	v.Set(5)
	v.Set(63)

	for _, i := range []uint{0, 5, 63} {
		if !v.Test(i) {
			t.Errorf("Test(%d) = false, want true", i)
		}
	}
	for _, i := range []uint{1, 4, 62} {
		if v.Test(i) {
			t.Errorf("Test(%d) = true, want false", i)
		}
	}
	if got := v.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}

func TestVector64Rank(t *testing.T) {
	var v Vector64
	v.Set(2)
	v.Set(5)
	v.Set(9)

	tests := []struct {
		i    uint
		want int
	}{
		{0, 0},
		{2, 1},
		{4, 1},
		{5, 2},
		{8, 2},
		{9, 3},
		{63, 3},
	}
	for _, tc := range tests {
		if got := v.Rank(tc.i); got != tc.want {
			t.Errorf("Rank(%d) = %d, want %d", tc.i, got, tc.want)
		}
	}
}
