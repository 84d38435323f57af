package prime

import "sync"

// LoadBalancerP2 hands out [low, high) windows of prime *values*
// growing from y up to sqrt(x), for the P2/B tail (spec.md §4.10).
// thread_dist grows as low grows past y^(2/3) so sieve cost dominates
// init cost.
type LoadBalancerP2 struct {
	mu sync.Mutex

	low        uint64
	limit      uint64
	y          uint64
	threadDist uint64
}

func NewLoadBalancerP2(low, limit, y uint64) *LoadBalancerP2 {
	return &LoadBalancerP2{
		low:        low,
		limit:      limit,
		y:          y,
		threadDist: maxU64(1<<16, isqrt(low)),
	}
}

// GetWork returns the next [low, high) window, or ok=false once the
// range from the initial low up to limit (y up to sqrt(x) for P2/B) is
// exhausted.
func (b *LoadBalancerP2) GetWork() (low, high uint64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.low >= b.limit {
		return 0, 0, false
	}

	y23 := icbrt(b.y * b.y)
	if b.low > y23 {
		b.threadDist = b.threadDist * 3 / 2
	}

	thisLow := b.low
	thisHigh := minU64(b.low+b.threadDist, b.limit)
	b.low = thisHigh
	Metrics.blocksIssued.WithLabelValues("p2").Inc()
	return thisLow, thisHigh, true
}
