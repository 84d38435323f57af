package prime

import "testing"

func TestIsqrtExact(t *testing.T) {
	cases := map[uint64]uint64{
		0: 0, 1: 1, 2: 1, 3: 1, 4: 2, 8: 2, 9: 3,
		99: 9, 100: 10, 101: 10,
		1<<40 + 1: 1048576,
	}
	for x, want := range cases {
		if got := isqrt(x); got != want {
			t.Errorf("isqrt(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestIcbrtExact(t *testing.T) {
	cases := map[uint64]uint64{
		0: 0, 1: 1, 7: 1, 8: 2, 26: 2, 27: 3, 999: 9, 1000: 10, 1001: 10,
	}
	for x, want := range cases {
		if got := icbrt(x); got != want {
			t.Errorf("icbrt(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestIrootMatchesIsqrtIcbrt(t *testing.T) {
	for x := uint64(2); x < 100000; x += 997 {
		if got, want := iroot(x, 2), isqrt(x); got != want {
			t.Errorf("iroot(%d, 2) = %d, want %d", x, got, want)
		}
		if got, want := iroot(x, 3), icbrt(x); got != want {
			t.Errorf("iroot(%d, 3) = %d, want %d", x, got, want)
		}
	}
}

func TestIpow(t *testing.T) {
	if got := ipow(2, 10); got != 1024 {
		t.Errorf("ipow(2,10) = %d, want 1024", got)
	}
	if got := ipow(3, 0); got != 1 {
		t.Errorf("ipow(3,0) = %d, want 1", got)
	}
}
