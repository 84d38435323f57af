package prime

import (
	"math/big"
	"testing"
)

// Ground-truth anchors (OEIS A006880), spec.md §8 property 1. The
// larger anchors (10^7 and 10^8) are exercised in TestPiAnchorsLarge,
// split out so `go test -short` skips the slow ones.
func TestPiAnchorsSmall(t *testing.T) {
	anchors := []struct {
		x    uint64
		want int64
	}{
		{10, 4},
		{100, 25},
		{1000, 168},
		{10000, 1229},
		{100000, 9592},
		{1000000, 78498},
	}
	for _, a := range anchors {
		got, err := PiInt64(int64(a.x))
		if err != nil {
			t.Fatalf("PiInt64(%d): %v", a.x, err)
		}
		if got != a.want {
			t.Errorf("pi(%d) = %d, want %d", a.x, got, a.want)
		}
	}
}

func TestPiAnchorsLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large pi() anchors in -short mode")
	}
	anchors := []struct {
		x    uint64
		want int64
	}{
		{10000000, 664579},
		{100000000, 5761455},
	}
	for _, a := range anchors {
		got, err := PiInt64(int64(a.x))
		if err != nil {
			t.Fatalf("PiInt64(%d): %v", a.x, err)
		}
		if got != a.want {
			t.Errorf("pi(%d) = %d, want %d", a.x, got, a.want)
		}
	}
}

// Algorithm equivalence, spec.md §8 property 2: all three drivers
// produce the same integer for the same x.
func TestAlgorithmEquivalence(t *testing.T) {
	xs := []uint64{10000, 123457, 1000000}
	for _, x := range xs {
		lmoResult, err := runAlgorithm(AlgorithmLMO, x, 2, "test")
		if err != nil {
			t.Fatalf("lmo(%d): %v", x, err)
		}
		drResult, err := runAlgorithm(AlgorithmDeleglisRivat, x, 2, "test")
		if err != nil {
			t.Fatalf("dr(%d): %v", x, err)
		}
		gResult, err := runAlgorithm(AlgorithmGourdon, x, 2, "test")
		if err != nil {
			t.Fatalf("gourdon(%d): %v", x, err)
		}
		if lmoResult != drResult || drResult != gResult {
			t.Errorf("x=%d: lmo=%d dr=%d gourdon=%d disagree", x, lmoResult, drResult, gResult)
		}
	}
}

// alpha-invariance, spec.md §8 property 3.
func TestAlphaInvariance(t *testing.T) {
	x := uint64(500000)
	alphas := []float64{1, 2, 4, defaultAlpha(x)}
	var first int64
	for i, a := range alphas {
		got := piLMOParallel(x, a, 2, "test")
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Errorf("pi(%d, alpha=%v) = %d, want %d (alpha=%v)", x, a, got, first, alphas[0])
		}
	}
}

// thread-invariance, spec.md §8 property 4.
func TestThreadInvariance(t *testing.T) {
	x := uint64(500000)
	var first int64
	for i, threads := range []int{1, 2, 4, 8} {
		got, err := runAlgorithm(AlgorithmGourdon, x, threads, "test")
		if err != nil {
			t.Fatalf("threads=%d: %v", threads, err)
		}
		if i == 0 {
			first = got
			continue
		}
		if got != first {
			t.Errorf("pi(%d) with threads=%d = %d, want %d", x, threads, got, first)
		}
	}
}

// Boundary behavior, spec.md §8 property 5.
func TestPiBoundaryBehavior(t *testing.T) {
	for _, x := range []int64{-5, -1, 0, 1} {
		got, err := PiInt64(x)
		if err != nil {
			t.Fatalf("PiInt64(%d): %v", x, err)
		}
		if got != 0 {
			t.Errorf("pi(%d) = %d, want 0", x, got)
		}
	}

	pit := NewPiTable(10000, 2)
	maxCached := pit.MaxCached()
	want, err := PiInt64(int64(maxCached))
	if err != nil {
		t.Fatalf("PiInt64(%d): %v", maxCached, err)
	}
	if pit.Pi(maxCached) != want {
		t.Errorf("PiTable.Pi(max_cached=%d) = %d, want %d", maxCached, pit.Pi(maxCached), want)
	}
}

func TestPiZeroAndNegativeViaBigInt(t *testing.T) {
	for _, s := range []string{"-1000000", "-1", "0", "1"} {
		x, _ := new(big.Int).SetString(s, 10)
		got, err := Pi(x)
		if err != nil {
			t.Fatalf("Pi(%s): %v", s, err)
		}
		if got.Sign() != 0 {
			t.Errorf("Pi(%s) = %s, want 0", s, got.String())
		}
	}
}

// nth_prime round trips, spec.md §8 property 7.
func TestNthPrimeRoundTrip(t *testing.T) {
	primes := generatePrimesUpTo(10000, 1)
	for i := 1; i < len(primes); i++ {
		p := primes[i]
		got, err := PiInt64(int64(p))
		if err != nil {
			t.Fatalf("PiInt64(%d): %v", p, err)
		}
		if got != int64(i) {
			t.Fatalf("pi(%d) = %d, want %d", p, got, i)
		}
		np, err := NthPrime(uint64(i))
		if err != nil {
			t.Fatalf("NthPrime(%d): %v", i, err)
		}
		if np != p {
			t.Errorf("NthPrime(%d) = %d, want %d", i, np, p)
		}
	}
}

func TestDomainErrorOnOversizedX(t *testing.T) {
	maxBig, _ := new(big.Int).SetString(GetMaxX(), 10)
	tooBig := new(big.Int).Add(maxBig, big.NewInt(1))
	_, err := Pi(tooBig)
	if err == nil {
		t.Fatal("expected DomainError for x > GetMaxX(), got nil")
	}
	if _, ok := err.(*DomainError); !ok {
		t.Errorf("expected *DomainError, got %T", err)
	}
}

func TestParseXError(t *testing.T) {
	_, err := ParseX("not-a-number")
	if err == nil {
		t.Fatal("expected ParseError, got nil")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Errorf("expected *ParseError, got %T", err)
	}
}
