package prime

import "testing"

// Round-trips, spec.md §8 property 7: to_index(to_number(i)) == i for
// every valid index, and to_number(to_index(n)) == n for coprime n.
func TestFactorTableRoundTrip(t *testing.T) {
	ft := NewFactorTable(1000, 1)
	for i := uint64(0); i < 50; i++ {
		n := ft.toNumber(i)
		gotI := ft.toIndex(n)
		if gotI != i {
			t.Errorf("toIndex(toNumber(%d)=%d) = %d, want %d", i, n, gotI, i)
		}
	}
	for _, n := range wheel210 {
		gotN := ft.toNumber(ft.toIndex(n))
		if gotN != n {
			t.Errorf("toNumber(toIndex(%d)) = %d, want %d", n, gotN, n)
		}
	}
}

func TestFactorTableDRoundTrip(t *testing.T) {
	ftD := NewFactorTableD(200, 1000, 1)
	for i := uint64(0); i < 50; i++ {
		n := ftD.toNumber(i)
		gotI := ftD.toIndex(n)
		if gotI != i {
			t.Errorf("toIndex(toNumber(%d)=%d) = %d, want %d", i, n, gotI, i)
		}
	}
	for _, n := range wheel2310 {
		gotN := ftD.toNumber(ftD.toIndex(n))
		if gotN != n {
			t.Errorf("toNumber(toIndex(%d)) = %d, want %d", n, gotN, n)
		}
	}
}

func bruteMu(n uint64) int {
	if n == 1 {
		return 1
	}
	result := 1
	m := n
	for p := uint64(2); p*p <= m; p++ {
		if m%p == 0 {
			m /= p
			if m%p == 0 {
				return 0
			}
			result = -result
		}
	}
	if m > 1 {
		result = -result
	}
	return result
}

func bruteLpf(n uint64) uint64 {
	for p := uint64(2); p*p <= n; p++ {
		if n%p == 0 {
			return p
		}
	}
	return n
}

func TestFactorTableMuLpfAgainstBruteForce(t *testing.T) {
	ft := NewFactorTable(500, 1)
	for _, n := range wheel210 {
		if n < 2 || n > 500 {
			continue
		}
		if got, want := ft.Mu(n), bruteMu(n); got != want {
			t.Errorf("Mu(%d) = %d, want %d", n, got, want)
		}
		// lpf is encoded only for square-free n; a squareful entry is
		// stored as 0 (mu = 0), so Lpf is checked where mu != 0.
		if bruteMu(n) == 0 {
			continue
		}
		if got, want := ft.Lpf(n), bruteLpf(n); got != want {
			t.Errorf("Lpf(%d) = %d, want %d", n, got, want)
		}
	}
}

func bruteGpf(n uint64) uint64 {
	gpf := uint64(1)
	m := n
	for p := uint64(2); p*p <= m; p++ {
		for m%p == 0 {
			gpf = p
			m /= p
		}
	}
	if m > 1 {
		gpf = m
	}
	return gpf
}

// NewFactorTableD(y, z, ...) must zero every entry n <= z whose
// greatest prime factor exceeds y (spec.md §4.4 step 2, D-variant):
// those n can never contribute to the D-formula's hard-leaf sum.
func TestFactorTableDZeroesBeyondYBound(t *testing.T) {
	y, z := uint64(50), uint64(500)
	ftD := NewFactorTableD(y, z, 1)
	for q := uint64(0); q*2310 <= z; q++ {
		for _, r := range wheel2310 {
			n := q*2310 + r
			if n < 2 || n > z {
				continue
			}
			if bruteGpf(n) > y {
				if got := ftD.MuLpf(n); got != 0 {
					t.Errorf("MuLpf(%d) = %d, want 0 (gpf(%d)=%d > y=%d)", n, got, n, bruteGpf(n), y)
				}
			}
		}
	}
}
