package prime

import "testing"

// Algebraic identities, spec.md §8 property 6.
func TestPhiIdentities(t *testing.T) {
	primes := generatePrimesUpTo(1000, 1)
	pit := NewPiTable(1000, 1)
	cache := NewPhiCache(primes, pit)

	for _, x := range []uint64{0, 1, 17, 100, 997} {
		if got := cache.Phi(x, 0); got != int64(x) {
			t.Errorf("phi(%d, 0) = %d, want %d", x, got, x)
		}
	}

	for a := 0; a <= 6; a++ {
		if got := cache.Phi(0, a); got != 0 {
			t.Errorf("phi(0, %d) = %d, want 0", a, got)
		}
	}

	for _, x := range []uint64{50, 200, 997} {
		for a := 1; a <= 6; a++ {
			p := primes[a]
			want := cache.Phi(x, a-1) - cache.Phi(x/p, a-1)
			got := cache.Phi(x, a)
			if got != want {
				t.Errorf("phi(%d, %d) = %d, want phi(x,a-1)-phi(x/p_a,a-1) = %d", x, a, got, want)
			}
		}
	}
}

// phi_tiny must match the reference recursion for a <= 8.
func TestPhiTinyMatchesReference(t *testing.T) {
	primes := generatePrimesUpTo(100, 1)
	for a := 0; a <= 8; a++ {
		for x := uint64(0); x < 500; x += 7 {
			got := phiTinyValue(x, a)
			want := legendrePhi(x, a, primes)
			if got != want {
				t.Fatalf("phiTinyValue(%d, %d) = %d, want %d (legendrePhi)", x, a, got, want)
			}
		}
	}
}

func TestPhiCacheLookupAgreesWithPiTable(t *testing.T) {
	pit := NewPiTable(500, 1)
	primes := generatePrimesUpTo(500, 1)
	cache := NewPhiCache(primes, pit)
	for x := uint64(1); x < 500; x += 3 {
		got, ok := cache.lookupPi(x)
		if !ok {
			continue
		}
		want := pit.Pi(x)
		if got != want {
			t.Errorf("lookupPi(%d) = %d, want %d", x, got, want)
		}
	}
}
