package prime

// Sigma computes the sum of Gourdon's seven closed-form expressions
// Sigma0..Sigma6 (spec.md §4.11), involving only pi(y), pi(x^(1/3)),
// pi(sqrt(x/y)), pi(x_star) and, for Sigma4/5/6, a prime iterator over
// (x_star, x^(1/3)]. Runtime O(pi(x^(1/3))).
func Sigma(x, y, z, xStar uint64, k int, primes []uint64, pi *PiTable) int64 {
	cbrtX := icbrt(x)
	piY := pi.lookupOrZero(y)
	piCbrtX := pi.lookupOrZero(cbrtX)
	piSqrtXY := pi.lookupOrZero(isqrt(x / y))
	piXStar := pi.lookupOrZero(xStar)

	sigma0 := (piCbrtX + int64(k) - 2) * (piCbrtX - int64(k) + 1) / 2
	sigma1 := -(piY*piY - piY) / 2
	sigma2 := -(piXStar*piXStar - piXStar) / 2
	sigma3 := (piY - piXStar) * int64(k-1)
	sigma4 := piY * piSqrtXY

	rangePrimes := primesInRange(primes, xStar+1, cbrtX)

	var sigma5, sigma6 int64
	for _, p := range rangePrimes {
		sigma5 -= pi.lookupOrZero(hotDiv(x, p))
	}

	// Sigma6 is summed per-prime over pi(floor(sqrt(x/prime)))^2 and
	// must NOT be algebraically simplified to
	// pi(floor(sqrt(x)))^2 / prime, to avoid integer truncation
	// errors (spec.md §4.11's explicit warning).
	for _, p := range rangePrimes {
		v := pi.lookupOrZero(isqrt(hotDiv(x, p)))
		sigma6 += v * v
	}

	return sigma0 + sigma1 + sigma2 + sigma3 + sigma4 + sigma5 + sigma6
}

// primesInRange returns the slice of primes with lo <= p <= hi (both
// inclusive), via binary search over the sorted primes vector.
func primesInRange(primes []uint64, lo, hi uint64) []uint64 {
	start := upperBoundIndex(primes, lo-1)
	end := upperBoundIndex(primes, hi)
	if start >= len(primes) || start >= end {
		return nil
	}
	if end > len(primes) {
		end = len(primes)
	}
	return primes[start:end]
}
