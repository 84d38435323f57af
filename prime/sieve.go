package prime

// Sieve is a mutable, per-goroutine, per-segment modulo-30 bit sieve
// (spec.md §4.5), the workhorse of S2_hard/D. Each byte represents 30
// consecutive integers at the 8 wheel offsets {1,7,11,13,17,19,23,29}.

var sieveOffsets = [8]uint64{1, 7, 11, 13, 17, 19, 23, 29}

// offsetBitIndex maps an offset (its position in sieveOffsets) to its
// bit within a byte, or -1 if rem is not one of the offsets.
func offsetBitIndex(rem uint64) int {
	for i, o := range sieveOffsets {
		if o == rem {
			return i
		}
	}
	return -1
}

type wheelItem struct {
	multiple uint64
}

// Sieve implements spec.md §4.5: pre_sieve, cross_off, cross_off_count
// and count(stop), backed by a bit-packed byte array plus a tiled
// linear counters array for amortized O(sqrt(segment)) counting.
type Sieve struct {
	low          uint64
	segmentSize  uint64
	bits         []byte // 1 byte per 30 integers
	counters     []uint32
	countersDist uint64

	wheel     []wheelItem
	wheelInit []bool

	start         uint64
	prevStop      uint64
	count         int64
	totalCount    int64
	countersI     int
	countersCount int64
	countersStop  uint64
}

// NewSieve allocates a sieve sized for segments of segmentSize
// integers.
func NewSieve(segmentSize uint64) *Sieve {
	nBytes := int((segmentSize + 29) / 30)
	s := &Sieve{segmentSize: segmentSize, bits: make([]byte, nBytes)}
	s.countersDist = nextPowerOfTwo(isqrt(segmentSize) + 1)
	if s.countersDist == 0 {
		s.countersDist = 1
	}
	nCounters := int(segmentSize/s.countersDist) + 2
	s.counters = make([]uint32, nCounters)
	return s
}

func nextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// PreSieve resets the bit-sieve to represent [low, low+segmentSize)
// restricted to integers coprime to primes[1..c], and rebuilds the
// wheel and counters (spec.md §4.5 pre_sieve). maxB bounds the
// largest prime index that CrossOffCount will later be called with
// for this segment (S2_hard/D calls it for b up to pi_sqrty or
// max_b), so the wheel slice is sized to cover it.
func (s *Sieve) PreSieve(primes []uint64, c int, low uint64, maxB int) {
	s.low = low
	s.start = low
	s.prevStop = low
	for i := range s.bits {
		s.bits[i] = 0xFF
	}

	if maxB < c {
		maxB = c
	}
	s.wheel = make([]wheelItem, maxB+1)
	s.wheelInit = make([]bool, maxB+1)

	for b := 1; b <= c; b++ {
		p := primes[b]
		s.crossOffInit(p, b)
		s.crossOff(p, b)
	}

	s.rebuildCounters()
}

// crossOffInit seeds the wheel entry for sieving prime primes[b]: the
// next multiple >= low that needs crossing off.
func (s *Sieve) crossOffInit(p uint64, b int) {
	start := ((s.low + p - 1) / p) * p
	if start < p*p {
		start = p * p
	}
	for offsetBitIndex(start%30) < 0 {
		start += p
	}
	s.wheel[b] = wheelItem{multiple: start}
	s.wheelInit[b] = true
}

// ensureWheel lazily initializes the wheel entry for a prime index
// first touched by CrossOffCount within this segment (i.e. b > c,
// the "two-prime leaves" range of S2_hard where cross-off only
// happens once per b per segment, not pre-seeded by PreSieve).
func (s *Sieve) ensureWheel(p uint64, b int) {
	if b < len(s.wheelInit) && s.wheelInit[b] {
		return
	}
	s.crossOffInit(p, b)
}

// CrossOff crosses off multiples of primes[b] in the current segment
// without touching counters_/total_count_ (spec.md §4.5 cross_off).
func (s *Sieve) CrossOff(p uint64, b int) {
	s.crossOff(p, b)
}

// crossOff is the internal unconditional cross-off used by PreSieve
// to remove multiples of a prime from the initial segment. Like
// CrossOffCount below, it steps through every multiple by += p; no
// mod-210 wheel stepping is used.
func (s *Sieve) crossOff(p uint64, b int) {
	high := s.low + s.segmentSize
	start := s.wheel[b].multiple
	for m := start; m < high; m += p {
		s.clearBit(m)
	}
}

// CrossOffCount crosses off multiples of primes[b], decrementing the
// appropriate counter tile and total_count_ for every bit that flips
// from 1 to 0 for the first time (spec.md §4.5 cross_off_count).
func (s *Sieve) CrossOffCount(p uint64, b int) {
	s.ensureWheel(p, b)
	high := s.low + s.segmentSize
	start := s.wheel[b].multiple
	if start < s.low {
		start = s.low
	}
	for m := start; m < high; m += p {
		if s.clearBitCounted(m) {
			tile := int((m - s.low) / s.countersDist)
			if tile < len(s.counters) {
				s.counters[tile]--
			}
			s.totalCount--
		}
	}
}

func (s *Sieve) bitPos(n uint64) (byteIdx int, bit uint) {
	rem := n % 30
	byteIdx = int(n / 30)
	bit = uint(offsetBitIndex(rem))
	return
}

func (s *Sieve) clearBit(n uint64) {
	bi, bit := s.bitPos(n)
	if int(bit) < 0 || bi < 0 || bi >= len(s.bits) {
		return
	}
	s.bits[bi] &^= 1 << bit
}

// clearBitCounted clears a bit and reports whether it was previously
// set (a "first time" flip per spec.md §4.5).
func (s *Sieve) clearBitCounted(n uint64) bool {
	rem := n % 30
	wi := offsetBitIndex(rem)
	if wi < 0 {
		return false
	}
	bi := int(n / 30)
	if bi < 0 || bi >= len(s.bits) {
		return false
	}
	bit := uint(wi)
	mask := byte(1) << bit
	if s.bits[bi]&mask == 0 {
		return false
	}
	s.bits[bi] &^= mask
	return true
}

func (s *Sieve) isSet(n uint64) bool {
	rem := n % 30
	wi := offsetBitIndex(rem)
	if wi < 0 {
		return false
	}
	bi := int(n / 30)
	if bi < 0 || bi >= len(s.bits) {
		return false
	}
	return s.bits[bi]&(1<<uint(wi)) != 0
}

// rebuildCounters computes counters_[j] = popcount over tile j and
// total_count_, matching spec.md §3's Sieve invariants.
func (s *Sieve) rebuildCounters() {
	for i := range s.counters {
		s.counters[i] = 0
	}
	s.totalCount = 0
	high := s.low + s.segmentSize
	for n := s.low; n < high; n++ {
		if s.isSet(n) {
			tile := int((n - s.low) / s.countersDist)
			if tile < len(s.counters) {
				s.counters[tile]++
			}
			s.totalCount++
		}
	}
	s.countersI = 0
	s.countersCount = 0
	s.countersStop = s.low
}

// Count returns the number of unsieved integers in [start_, start_+stop]
// in amortized O(sqrt(segment)), spec.md §4.5 count(stop).
func (s *Sieve) Count(stop uint64) int64 {
	target := s.low + stop
	for s.countersStop+s.countersDist <= target+1 {
		s.countersCount += int64(s.counters[s.countersI])
		s.countersI++
		s.countersStop += s.countersDist
	}
	extra := int64(0)
	for n := s.countersStop; n <= target; n++ {
		if s.isSet(n) {
			extra++
		}
	}
	return s.countersCount + extra
}

// GetTotalCount returns the total unsieved integers in the current
// segment (spec.md §4.5 get_total_count).
func (s *Sieve) GetTotalCount() int64 {
	return s.totalCount
}
