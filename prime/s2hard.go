package prime

import (
	"sync"
	"time"
)

// S2Hard computes the hard leaves of the Deléglise-Rivat S2
// decomposition (spec.md §4.9), the algorithmic heart of the engine.
// Each worker goroutine repeatedly asks balancer for a block of work,
// builds a local Sieve + PhiCache, and processes it independently: no
// inter-goroutine dependency other than the balancer's mutex.
func S2Hard(x, y, z uint64, c int, primes []uint64, pi *PiTable, ft factorLookup, sApprox float64, threads int) int64 {
	balancer := NewLoadBalancerS2(z, sApprox)
	piSqrtY := pi.lookupOrZero(isqrt(y))
	maxB := int(pi.lookupOrZero(minU64(y, z)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var total int64

	worker := func() {
		defer wg.Done()
		var prev *ThreadSettings
		for {
			low, segments, segSize, ok := balancer.GetWork(prev)
			if !ok {
				return
			}
			Metrics.activeThreads.Inc()
			start := time.Now()

			sieve := NewSieve(segSize)
			cache := NewPhiCache(primes, pi)
			phi := cache.GenerateVec(low, maxB)

			var blockSum int64
			for seg := uint64(0); seg < segments; seg++ {
				segLow := low + seg*segSize
				segHigh := segLow + segSize
				if segHigh > z+1 {
					segHigh = z + 1
				}
				if segLow >= segHigh {
					continue
				}
				minB := c
				if minB < 1 {
					minB = 1
				}
				sieve.PreSieve(primes, minB, segLow, maxB)
				Metrics.segmentsProcessed.Inc()

				blockSum += processHardSubSegment(x, y, segLow, segHigh, minB, int(piSqrtY), maxB, primes, sieve, phi, ft)
			}

			secs := time.Since(start).Seconds()
			Metrics.activeThreads.Dec()

			mu.Lock()
			total += blockSum
			mu.Unlock()

			prev = &ThreadSettings{
				Low: low, Segments: segments, SegmentSize: segSize,
				Sum: blockSum, Secs: secs,
			}
		}
	}

	n := maxThreads(threads)
	wg.Add(n)
	for i := 0; i < n; i++ {
		go worker()
	}
	wg.Wait()

	return total
}

// processHardSubSegment implements spec.md §4.9 step 3: the two
// prime-index ranges (square-free-m leaves for b in [min_b, pi_sqrty],
// two-prime leaves for b in (pi_sqrty, max_b]).
func processHardSubSegment(x, y, low, high uint64, minB, piSqrtY, maxB int, primes []uint64, sieve *Sieve, phi []int64, ft factorLookup) int64 {
	var sum int64

	topB := minInt(piSqrtY, maxB)
	for b := maxInt(minB, 1); b <= topB; b++ {
		if b >= len(primes) {
			break
		}
		p := primes[b]
		if p == 0 {
			continue
		}
		minM := maxU64(safeDiv(x, p*high), y/p)
		maxM := minU64(safeDiv(x, p*low), y)

		for m := maxM; m > minM; m-- {
			if m == 0 {
				continue
			}
			// mu(m) != 0 && lpf(m) > prime && mpf(m) <= y, evaluated
			// via whichever factor table the driver attached.
			if !hardLeafPredicate(ft, m, p) {
				continue
			}
			stop := safeDiv(x, p*m)
			if stop < low {
				continue
			}
			cnt := sieve.Count(stop - low)
			if b < len(phi) {
				cnt += phi[b]
			}
			muM := muOf(ft, m)
			if muM != 0 {
				sum += -int64(muM) * cnt
			}
		}

		if b < len(phi) {
			phi[b] += sieve.GetTotalCount()
		}
		sieve.CrossOffCount(p, b)
	}

	for b := maxInt(topB+1, minB); b <= maxB; b++ {
		if b >= len(primes) {
			break
		}
		p := primes[b]
		if p == 0 {
			continue
		}
		for l := b + 1; l < len(primes); l++ {
			pl := primes[l]
			prod := p * pl
			if prod == 0 || prod < low {
				continue
			}
			if prod > high {
				break
			}
			stop := safeDiv(x, prod)
			if stop < low {
				continue
			}
			cnt := sieve.Count(stop - low)
			sum += cnt
		}
	}

	return sum
}

func safeDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return hotDiv(a, b)
}

// hardLeafPredicate / muOf are thin seams over whichever
// FactorTable/FactorTableD the calling driver built; they let
// processHardSubSegment stay algorithm-agnostic (LMO/DR share this
// routine) while the driver passes the concrete table in explicitly,
// scoped to that one call -- spec.md §3's "constructed at the entry
// of the respective algorithm driver... live for the duration of
// that call, and are released on return" ruled out a shared package
// global, since two overlapping top-level Pi calls would otherwise
// race on it.
type factorLookup interface {
	MuLpf(n uint64) uint32
	Mu(n uint64) int
}

func hardLeafPredicate(ft factorLookup, m, prime uint64) bool {
	if ft == nil {
		return false
	}
	return prime < uint64(ft.MuLpf(m))
}

func muOf(ft factorLookup, m uint64) int {
	if ft == nil {
		return 0
	}
	return ft.Mu(m)
}
