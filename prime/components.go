package prime

// This file re-exports a handful of engine internals purely so
// cmd/primecount can drive and time individual components in
// isolation (spec.md §6's --P2/--S1/--S2-hard/--AC/--B/--D/--Phi0/
// --Sigma/--legendre flags). Library callers that just want pi(x)
// should use Pi, not these.

// GeneratePrimesUpTo returns the 1-indexed primes vector used
// throughout the package (primes[0] == 0, primes[1] == 2, ...).
func GeneratePrimesUpTo(n uint64, threads int) []uint64 {
	return generatePrimesUpTo(n, threads)
}

// DefaultAlpha is the LMO/Deléglise-Rivat tuning heuristic exposed for
// the CLI's --alpha-less component flags and for tests.
func DefaultAlpha(x uint64) float64 { return defaultAlpha(x) }

// DefaultAlphaYZ is the Gourdon tuning heuristic exposed the same way.
func DefaultAlphaYZ(x uint64) (float64, float64) { return defaultAlphaYZ(x) }

// Legendre computes pi(x) via Legendre's formula, phi(x,a) + a - 1
// where a = pi(x^(1/2)). It is the CLI's --legendre fallback for
// small x (spec.md §6) and exists purely as a cross-check: the
// combinatorial drivers dominate it for any x worth computing.
func Legendre(x uint64, threads int) int64 {
	if x < 2 {
		return 0
	}
	sqrtX := isqrt(x)
	primes := generatePrimesUpTo(sqrtX, threads)
	a := len(primes) - 1
	pit := NewPiTable(sqrtX, threads)
	cache := NewPhiCache(primes, pit)
	return cache.Phi(x, a) + int64(a) - 1
}

// Iroot returns floor(x^(1/n)), exposed for the CLI's Gourdon
// component flags which need y/z/xStar without running a full driver.
func Iroot(x uint64, n int) uint64 { return iroot(x, n) }

// GetK exposes Gourdon's k parameter the same way.
func GetK(x uint64) int { return getK(x) }

// ComponentInputs bundles the shared tables a component-level CLI flag
// needs to call one engine piece (P2, S1, S2_hard, A/B/C, Phi0, Sigma)
// without running a full driver.
type ComponentInputs struct {
	X, Y, Z, XStar uint64
	C, K           int
	Primes         []uint64 // spans up to sqrt(x): S1/S2_easy/S2_hard only ever index into primes[b] <= y/z, P2 needs the rest
	Pi             *PiTable // spans up to z = x/y, so both the within-y lookups and P2's pi(x/p) lookups land in range
	FactorTable    *FactorTable
}

// NewComponentInputs computes y/z/c/k/xStar and the primes/pi/factor
// tables the way piLMOParallel / piDeleglisRivat do, so CLI component
// flags and engine benchmarks exercise the real tuning path rather
// than ad-hoc numbers.
func NewComponentInputs(x uint64, alpha float64, threads int) ComponentInputs {
	if alpha <= 0 {
		alpha = defaultAlpha(x)
	}
	y := uint64(alpha * icbrtFloat(x))
	y = clampU64(y, icbrt(x), isqrt(x)-1)
	z := x / y
	c := getC(y)
	k := getK(x)
	xStar := minU64(y, x/z)
	primes := generatePrimesUpTo(isqrt(x), threads)
	pit := NewPiTable(z, threads)
	ft := NewFactorTable(y, threads)
	return ComponentInputs{X: x, Y: y, Z: z, XStar: xStar, C: c, K: k, Primes: primes, Pi: pit, FactorTable: ft}
}
