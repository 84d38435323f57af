package prime

// PhiCache computes phi(x, a) recursively for arbitrary a >= c,
// memoizing small results (spec.md §4.6). One instance is created per
// worker goroutine; it is never shared across goroutines, so it needs
// no locking.
type PhiCache struct {
	primes []uint64
	pi     *PiTable

	// cache[a][x] = phi(x,a)+1 for x < cacheLimit; 0 means "not cached".
	cache map[int][]uint32

	cacheLimit uint64
}

// phiCacheByteBudget bounds each per-a row of the cache at 16 MiB
// (4 Mi uint32 entries); the total grows with the number of distinct a
// values cached. The cache is rebuilt fresh per driver invocation
// rather than evicted from.
const phiCacheByteBudget = 16 << 20

// NewPhiCache creates a per-goroutine PhiCache bound to a shared,
// read-only primes vector and PiTable.
func NewPhiCache(primes []uint64, pi *PiTable) *PhiCache {
	limit := uint64(phiCacheByteBudget / 4) // uint32 entries
	return &PhiCache{
		primes:     primes,
		pi:         pi,
		cache:      make(map[int][]uint32),
		cacheLimit: limit,
	}
}

// Phi computes phi(x, a), spec.md §4.6's recursion:
//
//	phi(x,a) = phi(x,a-1) - phi(floor(x/primes[a]), a-1)
//
// short-circuited by PhiTiny (a<=8), by pi(x)-a+1 when
// x < primes[a+1]^2, and by a cache lookup for small x.
func (c *PhiCache) Phi(x uint64, a int) int64 {
	if a <= 8 {
		return int64(phiTinyValue(x, a))
	}
	if x == 0 {
		return 0
	}

	if a+1 < len(c.primes) {
		p1 := c.primes[a+1]
		if p1 != 0 && x < p1*p1 {
			if piVal, ok := c.lookupPi(x); ok {
				v := piVal - int64(a) + 1
				if v < 1 {
					v = 1
				}
				return v
			}
		}
	}

	if x < c.cacheLimit {
		if row, ok := c.cache[a]; ok && int(x) < len(row) && row[x] != 0 {
			return int64(row[x] - 1)
		}
	}

	result := c.Phi(x, a-1) - c.Phi(x/c.primes[a], a-1)

	if x < c.cacheLimit {
		row, ok := c.cache[a]
		if !ok {
			row = make([]uint32, minU64(x+1024, c.cacheLimit))
			c.cache[a] = row
		}
		if int(x) >= len(row) {
			grown := make([]uint32, minU64(x+1024, c.cacheLimit))
			copy(grown, row)
			row = grown
			c.cache[a] = row
		}
		if result >= 0 && result < 1<<31 {
			row[x] = uint32(result) + 1
		}
	}

	return result
}

func (c *PhiCache) lookupPi(x uint64) (int64, bool) {
	if v, ok := piSmall(x); ok {
		return v, true
	}
	if c.pi != nil && x <= c.pi.MaxCached() {
		return c.pi.Pi(x), true
	}
	return 0, false
}

// GenerateVec returns phi[0..a] with phi[i] = phi(x, i-1), seeding the
// per-thread partial sums in S2_hard/D (spec.md §4.6 generate_phi).
func (c *PhiCache) GenerateVec(x uint64, a int) []int64 {
	out := make([]int64, a+1)
	for i := 0; i <= a; i++ {
		out[i] = c.Phi(x, i-1)
	}
	return out
}
