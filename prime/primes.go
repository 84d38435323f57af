package prime

import (
	"bytes"
	"math"
	"runtime"
	"sync"
)

// This file is the "external prime sieve library" collaborator that
// spec.md §1 treats as out of scope for the combinatorial engine
// itself, but which every other component in this package consumes
// (dataflow step 1/2 of spec.md §2). It is adapted directly from the
// teacher's prime.SieveOfEratosthenes / SegmentedSieve /
// ParallelSegmentedSieve (pchuck-infinite-series, golang/prime/primes.go):
// same segmented-wheel structure, repurposed to hand back primes (not
// print them) for consumption by PiTable, FactorTable and the Sieve.

const (
	defaultSegmentSize = 1 << 20
	parallelThreshold  = 100_000_000
)

// sieveOfEratosthenes returns every prime < n using a plain bit sieve.
// Kept for small n (n < defaultSegmentSize) where segmenting only adds
// overhead, exactly as in the teacher's GeneratePrimes dispatch.
func sieveOfEratosthenes(n int) []uint64 {
	if n <= 2 {
		return nil
	}

	sieveBuf := append([]byte{0, 0}, bytes.Repeat([]byte{1}, n-2)...)

	limit := int(math.Sqrt(float64(n)))
	for i := 2; i <= limit; i++ {
		if sieveBuf[i] == 1 {
			for j := i * i; j < n; j += i {
				sieveBuf[j] = 0
			}
		}
	}

	primes := make([]uint64, 0, n/int(math.Log(float64(n))+1))
	for i := 2; i < n; i++ {
		if sieveBuf[i] == 1 {
			primes = append(primes, uint64(i))
		}
	}
	return primes
}

// segmentedPrimes returns every prime < n, sieving in fixed-size
// windows seeded by the base primes <= sqrt(n). Adapted from the
// teacher's SegmentedSieve.
func segmentedPrimes(n int) []uint64 {
	if n <= 2 {
		return nil
	}

	baseLimit := int(math.Sqrt(float64(n)))
	basePrimes := sieveOfEratosthenes(baseLimit + 1)
	basePrimesInt := make([]int, len(basePrimes))
	for i, p := range basePrimes {
		basePrimesInt[i] = int(p)
	}

	segmentSize := defaultSegmentSize
	segments := (n + segmentSize - 1) / segmentSize
	primes := make([]uint64, 0, n/int(math.Log(float64(n))+1))
	isPrime := make([]byte, segmentSize)

	for segIdx := 0; segIdx < segments; segIdx++ {
		low := segIdx * segmentSize
		high := low + segmentSize
		if high > n {
			high = n
		}
		if high <= 2 {
			continue
		}

		segmentLow := low
		if segmentLow < 2 {
			segmentLow = 2
		}
		segLen := high - segmentLow
		copy(isPrime[:segLen], bytes.Repeat([]byte{1}, segLen))

		for _, p := range basePrimesInt {
			start := ((low + p - 1) / p) * p
			if start < p*p {
				start = p * p
			}
			adjustedStart := start - segmentLow
			if adjustedStart >= segLen {
				continue
			}
			for j := adjustedStart; j < segLen; j += p {
				isPrime[j] = 0
			}
		}

		for i := 0; i < segLen; i++ {
			if isPrime[i] == 1 {
				primes = append(primes, uint64(segmentLow+i))
			}
		}
	}

	return primes
}

type primeSegmentWork struct {
	segIdx     int
	low        int
	high       int
	segmentLow int
	segLen     int
}

type primeSegmentResult struct {
	segIdx int
	primes []uint64
}

// parallelSegmentedPrimes is the worker-pool variant, adapted from the
// teacher's ParallelSegmentedSieve. Its channel/WaitGroup shape is
// reused, unmodified in spirit, as the concurrency idiom for
// LoadBalancerS2 / LoadBalancerP2 / LoadBalancerAC workers elsewhere
// in this package (see s2hard.go, p2.go, loadbalancer_ac.go).
func parallelSegmentedPrimes(n, workers int) []uint64 {
	if n <= 2 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	segmentSize := defaultSegmentSize
	baseLimit := int(math.Sqrt(float64(n)))
	basePrimes := sieveOfEratosthenes(baseLimit + 1)
	basePrimesInt := make([]int, len(basePrimes))
	for i, p := range basePrimes {
		basePrimesInt[i] = int(p)
	}

	segments := (n + segmentSize - 1) / segmentSize
	numWorkers := workers
	if numWorkers > segments {
		numWorkers = segments
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	workChan := make(chan primeSegmentWork, segments)
	resultsChan := make(chan primeSegmentResult, segments)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		isPrime := make([]byte, segmentSize)
		for w := range workChan {
			buf := isPrime[:w.segLen]
			copy(buf, bytes.Repeat([]byte{1}, w.segLen))
			for _, p := range basePrimesInt {
				start := ((w.low + p - 1) / p) * p
				if start < p*p {
					start = p * p
				}
				adjustedStart := start - w.segmentLow
				if adjustedStart >= w.segLen {
					continue
				}
				for j := adjustedStart; j < w.segLen; j += p {
					buf[j] = 0
				}
			}
			found := make([]uint64, 0, w.segLen/10)
			for i := 0; i < w.segLen; i++ {
				if buf[i] == 1 {
					found = append(found, uint64(w.segmentLow+i))
				}
			}
			resultsChan <- primeSegmentResult{segIdx: w.segIdx, primes: found}
		}
	}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker()
	}

	go func() {
		for segIdx := 0; segIdx < segments; segIdx++ {
			low := segIdx * segmentSize
			high := low + segmentSize
			if high > n {
				high = n
			}
			if high <= 2 {
				continue
			}
			segmentLow := low
			if segmentLow < 2 {
				segmentLow = 2
			}
			workChan <- primeSegmentWork{
				segIdx: segIdx, low: low, high: high,
				segmentLow: segmentLow, segLen: high - segmentLow,
			}
		}
		close(workChan)
	}()

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	results := make([][]uint64, segments)
	for r := range resultsChan {
		results[r.segIdx] = r.primes
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]uint64, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

// generatePrimesUpTo returns every prime <= n as a 1-indexed "primes
// vector" per spec.md §3 (primes[0] = 0 sentinel, primes[1] = 2, ...).
// It dispatches between the plain, segmented and parallel-segmented
// strategies exactly as the teacher's GeneratePrimes does.
func generatePrimesUpTo(n uint64, threads int) []uint64 {
	nn := int(n) + 1
	var found []uint64
	switch {
	case nn <= 2:
		found = nil
	case threads > 1 && nn >= parallelThreshold:
		found = parallelSegmentedPrimes(nn, threads)
	case nn >= defaultSegmentSize:
		found = segmentedPrimes(nn)
	default:
		found = sieveOfEratosthenes(nn)
	}

	out := make([]uint64, len(found)+1)
	out[0] = 0
	copy(out[1:], found)
	return out
}

// primeIterator walks a primes vector forward from a starting index,
// the role spec.md §4.10/§4.3 calls "an external prime iterator".
type primeIterator struct {
	primes []uint64
	idx    int
}

func newPrimeIterator(primes []uint64) *primeIterator {
	return &primeIterator{primes: primes, idx: 1}
}

// next returns the next prime, or 0 and false when the underlying
// primes vector is exhausted.
func (it *primeIterator) next() (uint64, bool) {
	if it.idx >= len(it.primes) {
		return 0, false
	}
	p := it.primes[it.idx]
	it.idx++
	return p, true
}

func (it *primeIterator) peek() (uint64, bool) {
	if it.idx >= len(it.primes) {
		return 0, false
	}
	return it.primes[it.idx], true
}
