package prime

import "math"

// Small integer math helpers grounded on original_source/src/pmath.hpp
// (isqrt/icbrt/ipow family), re-expressed without C++ template
// specialization per spec.md §9: two explicit paths (uint64 inputs,
// float64 intermediate) rather than one generic numeric type.

// isqrt returns floor(sqrt(x)) exactly, correcting the float64
// approximation's rounding error by probing +-1.
func isqrt(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(x)))
	for r > 0 && r*r > x {
		r--
	}
	for (r+1)*(r+1) <= x {
		r++
	}
	return r
}

// icbrt returns floor(cbrt(x)) exactly.
func icbrt(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	r := uint64(math.Cbrt(float64(x)))
	for r > 0 && r*r*r > x {
		r--
	}
	for (r+1)*(r+1)*(r+1) <= x {
		r++
	}
	return r
}

// iroot returns floor(x^(1/n)) exactly, for small n (used for n=4 by
// PhiTiny.get_k; the Gourdon alpha bound uses math.Pow instead).
func iroot(x uint64, n int) uint64 {
	if x == 0 {
		return 0
	}
	if n == 2 {
		return isqrt(x)
	}
	if n == 3 {
		return icbrt(x)
	}
	r := uint64(math.Pow(float64(x), 1.0/float64(n)))
	for r > 0 && ipow(r, n) > x {
		r--
	}
	for ipow(r+1, n) <= x {
		r++
	}
	return r
}

// ipow returns x^n for small integer n without overflow checks beyond
// what the caller's bound guarantees (x, n are always small here:
// n <= 6, x <= x^(1/6)).
func ipow(x uint64, n int) uint64 {
	r := uint64(1)
	for i := 0; i < n; i++ {
		r *= x
	}
	return r
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// naturalLog wraps math.Log under a name that reads next to isqrt/
// icbrt/iroot at call sites in the load balancers.
func naturalLog(x float64) float64 {
	return math.Log(x)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
