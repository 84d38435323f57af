package prime

import "time"

// piDeleglisRivat is the Deléglise-Rivat driver (spec.md §4.12):
// identical in shape to the LMO driver, but uses the FactorTable
// encoding inside S2_hard and the stronger easy/trivial split. The
// structural difference from piLMOParallel is the added s2TrivialSum
// term; both drivers share S2Easy and S2Hard, and this function is
// kept separate for that term and for the algorithm-name reported in
// logs/metrics.
func piDeleglisRivat(x uint64, alpha float64, threads int, computationID string) int64 {
	start := time.Now()
	if alpha <= 0 {
		alpha = defaultAlpha(x)
	}
	y := uint64(alpha * icbrtFloat(x))
	y = clampU64(y, icbrt(x), isqrt(x)-1)
	z := x / y
	c := getC(y)

	log := driverLog(computationID, "deleglise-rivat", formatX(x), alpha, threads)
	log.Debug("deleglise-rivat: computing primes and tables")

	// primes/pit span up to sqrt(x)/z rather than just y: S2_easy's
	// own b-loop already expects primes[b] up to sqrt(x), and P2's
	// pi(x/p) lookups need pi defined up to x/y = z.
	primes := generatePrimesUpTo(isqrt(x), threads)
	pit := NewPiTable(z, threads)
	ft := NewFactorTable(y, threads)

	p2 := P2(x, y, primes, pit, threads)
	s1 := S1(x, y, c, primes, pit, threads)

	piY := pit.lookupOrZero(y)
	sApprox := Li(float64(x)) - float64(piY-1) - float64(p2) - float64(s1)
	if sApprox < 0 {
		sApprox = 0
	}

	s2Trivial := s2TrivialSum(x, y, c, primes, pit)
	s2Easy := S2Easy(x, y, c, primes, pit)
	s2Hard := S2Hard(x, y, z, c, primes, pit, ft, sApprox, threads)
	s2 := s2Trivial + s2Easy + s2Hard

	result := s1 + s2 + piY - 1 - p2

	Metrics.driverDuration.WithLabelValues("deleglise-rivat").Observe(time.Since(start).Seconds())
	log.WithField("result", result).Debug("deleglise-rivat: done")

	return result
}

// s2TrivialSum is the DR trivial-leaf regime (spec.md §4.8 regime 3):
// a closed-form arithmetic-progression count for the range of (b, l)
// pairs where x/(p_b*p_l) is small enough that a pi-lookup isn't
// needed -- here, where p_b*p_l > sqrt(x), phi_xpq is always exactly
// 1, so the contribution per b collapses to (pi(y) - b).
func s2TrivialSum(x, y uint64, c int, primes []uint64, pi *PiTable) int64 {
	sqrtX := isqrt(x)
	piY := pi.lookupOrZero(y)
	var sum int64
	for b := c + 1; uint64(b) < uint64(len(primes)) && primes[b] <= y; b++ {
		p := primes[b]
		if p == 0 || p*p <= sqrtX {
			continue
		}
		sum += piY - int64(b)
	}
	return sum
}
