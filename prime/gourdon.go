package prime

import "time"

// piGourdon is the Gourdon driver (spec.md §4.12 pi_gourdon):
//
//	y = floor(alpha_y*x^(1/3)) clamped to [x^(1/3)+1, sqrt(x)-1]
//	z = floor(alpha_z*y) clamped to [y, sqrt(x)-1]
//	k = get_k(x)
//	Sigma, Phi0, A, B, C computed; D_approx clamped;
//	D = D(x,y,z,k,D_approx)
//	pi(x) = A - B + C + D + Phi0 + Sigma
func piGourdon(x uint64, alphaY, alphaZ float64, threads int, computationID string) int64 {
	start := time.Now()
	if alphaY <= 0 || alphaZ <= 0 {
		alphaY, alphaZ = defaultAlphaYZ(x)
	}

	cbrtX := icbrt(x)
	sqrtX := isqrt(x)

	y := uint64(alphaY * float64(cbrtX))
	y = clampU64(y, cbrtX+1, sqrtX-1)
	z := uint64(alphaZ * float64(y))
	z = clampU64(z, y, sqrtX-1)
	k := getK(x)
	xStar := minU64(y, x/z)

	log := driverLog(computationID, "gourdon", formatX(x), alphaY, threads)
	log.WithField("alpha_z", alphaZ).Debug("gourdon: computing primes and tables")

	primes := generatePrimesUpTo(z, threads)
	pit := NewPiTable(y, threads)
	ftD := NewFactorTableD(y, z, threads)

	// B shares P2's windowed sum (spec.md §4.10's Gourdon variant),
	// which needs primes up to sqrt(x) and pi(x/p) lookups up to x/y
	// -- both wider ranges than Sigma/Phi0/A/C need, so it gets its
	// own tables rather than reusing the z-bounded ones above.
	primesSqrtX := generatePrimesUpTo(sqrtX, threads)
	piXDivY := NewPiTable(x/y, threads)

	sigma := Sigma(x, y, z, xStar, k, primes, pit)
	phi0 := Phi0(x, z, k, primes, threads)
	aTerm := A(x, y, z, xStar, k, primes, threads)
	bTerm := B(x, y, primesSqrtX, piXDivY, threads)
	cTerm := C(x, y, z, xStar, k, primes, threads)

	dApprox := Li(float64(x)) - float64(aTerm-bTerm+cTerm+phi0+sigma)
	if dApprox < 0 {
		dApprox = 0
	}

	dTerm := gourdonD(x, y, z, k, primes, pit, ftD, dApprox, threads)

	result := aTerm - bTerm + cTerm + dTerm + phi0 + sigma

	Metrics.driverDuration.WithLabelValues("gourdon").Observe(time.Since(start).Seconds())
	log.WithField("result", result).Debug("gourdon: done")

	return result
}

// gourdonD is Gourdon's hard-leaf term D, structurally identical to
// S2_hard (spec.md §4.9 note: "the classical Gourdon parallelization
// idea" the hard-leaf load balancer already embodies), reusing the
// same Sieve/PhiCache/LoadBalancerS2 machinery against the D-variant
// FactorTable passed in by the caller.
func gourdonD(x, y, z uint64, k int, primes []uint64, pit *PiTable, ftD factorLookup, dApprox float64, threads int) int64 {
	return S2Hard(x, y, z, k, primes, pit, ftD, dApprox, threads)
}
