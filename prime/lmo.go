package prime

import "time"

// piLMOParallel is the LMO driver (spec.md §4.12 pi_lmo_parallel):
//
//	y = floor(alpha*x^(1/3)); z = floor(x/y); c = get_c(y)
//	P2, S1 computed; S2_approx clamped >= 0;
//	S2 = S2_trivial + S2_easy + S2_hard(S2_approx)
//	pi(x) = S1 + S2 + pi(y) - 1 - P2
func piLMOParallel(x uint64, alpha float64, threads int, computationID string) int64 {
	start := time.Now()
	if alpha <= 0 {
		alpha = defaultAlpha(x)
	}
	y := uint64(alpha * icbrtFloat(x))
	y = clampU64(y, icbrt(x), isqrt(x)-1)
	z := x / y
	c := getC(y)

	log := driverLog(computationID, "lmo", formatX(x), alpha, threads)
	log.Debug("lmo: computing primes and tables")

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

	s2Easy := S2Easy(x, y, c, primes, pit)
	s2Hard := S2Hard(x, y, z, c, primes, pit, ft, sApprox, threads)
	s2 := s2Easy + s2Hard

	result := s1 + s2 + piY - 1 - p2

	Metrics.driverDuration.WithLabelValues("lmo").Observe(time.Since(start).Seconds())
	log.WithField("result", result).Debug("lmo: done")

	return result
}

func icbrtFloat(x uint64) float64 {
	return float64(icbrt(x))
}

func clampU64(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
