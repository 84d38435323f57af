package prime

import "sync"

// P2 computes the "two large primes" tail shared by LMO/DR:
//
//	P2(x,y) = sum_{i=pi(y)+1}^{pi(sqrt(x))} pi(floor(x/primes[i]))
//
// spec.md §4.10. primes must extend at least to sqrt(x) (the full
// vector S2_hard/S1 build only goes up to y, too short for this sum)
// and pi must answer pi(n) for n up to x/y (floor(x/p) for p just
// above y approaches x/y, the largest value this sum looks up).
// LoadBalancerP2 hands out windows of prime *values* p in (y,
// sqrt(x)]; each worker sums pi(floor(x/p)) for the primes in its
// window via binary search over the primes vector -- the per-window
// contribution depends only on that window, so the sum over windows
// is order independent (spec.md §5).
func P2(x, y uint64, primes []uint64, pi *PiTable, threads int) int64 {
	sqrtX := isqrt(x)
	if sqrtX <= y {
		return 0
	}

	balancer := NewLoadBalancerP2(y, sqrtX, y)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var total int64

	n := maxThreads(threads)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			var local int64
			for {
				low, high, ok := balancer.GetWork()
				if !ok {
					break
				}
				local += p2Window(x, low, high, primes, pi)
			}
			mu.Lock()
			total += local
			mu.Unlock()
		}()
	}
	wg.Wait()

	return total
}

// p2Window sums pi(floor(x/p)) for every prime p in (low, high],
// restricted to the primes vector already available (p <= sqrt(x)).
func p2Window(x, low, high uint64, primes []uint64, pi *PiTable) int64 {
	startIdx := upperBoundIndex(primes, low)
	endIdx := upperBoundIndex(primes, high)

	var sum int64
	for i := startIdx; i < endIdx && i < len(primes); i++ {
		p := primes[i]
		if p <= low || p > high {
			continue
		}
		xp := hotDiv(x, p)
		sum += pi.lookupOrZero(xp)
	}
	return sum
}

// upperBoundIndex returns the first index i such that primes[i] > n
// (primes[0] is the 0 sentinel and is skipped).
func upperBoundIndex(primes []uint64, n uint64) int {
	lo, hi := 1, len(primes)
	for lo < hi {
		mid := (lo + hi) / 2
		if primes[mid] <= n {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// B is Gourdon's two-prime tail, spec.md §4.10 Gourdon variant: the
// same sum as P2, pi(floor(x/p)) over the primes p in (y, sqrt(x)],
// so B and P2 share the identical windowed-sum implementation; Gourdon calls it
// with its own y and a primes/pi pair that extends to sqrt(x)/x/y
// rather than the z-bounded ones Sigma/Phi0/A/C use.
func B(x, y uint64, primes []uint64, pi *PiTable, threads int) int64 {
	return P2(x, y, primes, pi, threads)
}
