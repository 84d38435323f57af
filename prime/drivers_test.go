package prime

import "testing"

// π(x) = S1 + S2 + π(y) - 1 - P2 (LMO/DR), spec.md §8 property 6.
func TestLMODecomposition(t *testing.T) {
	x := uint64(200000)
	alpha := defaultAlpha(x)
	y := uint64(alpha * icbrtFloat(x))
	y = clampU64(y, icbrt(x), isqrt(x)-1)
	z := x / y
	c := getC(y)

	primes := generatePrimesUpTo(isqrt(x), 2)
	pit := NewPiTable(z, 2)
	ft := NewFactorTable(y, 2)

	p2 := P2(x, y, primes, pit, 2)
	s1 := S1(x, y, c, primes, pit, 2)
	piY := pit.lookupOrZero(y)
	sApprox := Li(float64(x)) - float64(piY-1) - float64(p2) - float64(s1)
	if sApprox < 0 {
		sApprox = 0
	}
	s2Easy := S2Easy(x, y, c, primes, pit)
	s2Hard := S2Hard(x, y, z, c, primes, pit, ft, sApprox, 2)

	decomposed := s1 + s2Easy + s2Hard + piY - 1 - p2
	want, err := PiInt64(int64(x))
	if err != nil {
		t.Fatalf("PiInt64(%d): %v", x, err)
	}
	if decomposed != want {
		t.Errorf("S1+S2+pi(y)-1-P2 = %d, want pi(%d) = %d", decomposed, x, want)
	}
}

// π(x) = A - B + C + D + Phi0 + Sigma (Gourdon), spec.md §8 property 6.
func TestGourdonDecomposition(t *testing.T) {
	x := uint64(200000)
	alphaY, alphaZ := defaultAlphaYZ(x)

	cbrtX := icbrt(x)
	sqrtX := isqrt(x)
	y := uint64(alphaY * float64(cbrtX))
	y = clampU64(y, cbrtX+1, sqrtX-1)
	z := uint64(alphaZ * float64(y))
	z = clampU64(z, y, sqrtX-1)
	k := getK(x)
	xStar := minU64(y, x/z)

	primes := generatePrimesUpTo(z, 2)
	pit := NewPiTable(y, 2)
	ftD := NewFactorTableD(y, z, 2)

	primesSqrtX := generatePrimesUpTo(sqrtX, 2)
	piXDivY := NewPiTable(x/y, 2)

	sigma := Sigma(x, y, z, xStar, k, primes, pit)
	phi0 := Phi0(x, z, k, primes, 2)
	aTerm := A(x, y, z, xStar, k, primes, 2)
	bTerm := B(x, y, primesSqrtX, piXDivY, 2)
	cTerm := C(x, y, z, xStar, k, primes, 2)
	dTerm := S2Hard(x, y, z, k, primes, pit, ftD, 0, 2)

	decomposed := aTerm - bTerm + cTerm + dTerm + phi0 + sigma
	want, err := PiInt64(int64(x))
	if err != nil {
		t.Fatalf("PiInt64(%d): %v", x, err)
	}
	if decomposed != want {
		t.Errorf("A-B+C+D+Phi0+Sigma = %d, want pi(%d) = %d", decomposed, x, want)
	}
}

func TestLiInverseInvertsLi(t *testing.T) {
	for _, want := range []float64{100, 10000, 1000000} {
		x := LiInverse(want)
		got := Li(x)
		if diff := got - want; diff < -want*1e-3 || diff > want*1e-3 {
			t.Errorf("Li(LiInverse(%v)) = %v, want ~%v", want, got, want)
		}
	}
}

func TestLiInverseSaturates(t *testing.T) {
	const maxSafeInt = 1 << 62
	got := LiInverse(1e300)
	if got > maxSafeInt {
		t.Errorf("LiInverse(1e300) = %v, want <= %v", got, float64(maxSafeInt))
	}
}

func TestRiemannRApproximatesPi(t *testing.T) {
	anchors := map[float64]float64{
		1000000:   78498,
		100000000: 5761455,
	}
	for x, want := range anchors {
		got := RiemannR(x)
		relErr := (got - want) / want
		if relErr < -0.01 || relErr > 0.01 {
			t.Errorf("RiemannR(%v) = %v, want within 1%% of %v", x, got, want)
		}
	}
}

func TestDefaultAlphaWithinBounds(t *testing.T) {
	for _, x := range []uint64{1000, 1000000, 1000000000} {
		a := defaultAlpha(x)
		if a < 1 {
			t.Errorf("defaultAlpha(%d) = %v, want >= 1", x, a)
		}
		maxAlpha := iroot(x, 6)
		if a > float64(maxAlpha)+1 {
			t.Errorf("defaultAlpha(%d) = %v, want <= x^(1/6) ~= %d", x, a, maxAlpha)
		}
	}
}
