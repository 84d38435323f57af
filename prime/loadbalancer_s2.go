package prime

import (
	"sync"
	"time"
)

// LoadBalancerS2 hands out non-overlapping blocks of
// [low, low+segments*segmentSize) from [1,z] to worker goroutines
// (spec.md §4.9), the dominant cost of the engine. All mutable state
// is guarded by a single mutex; everything else (Sieve, PhiCache,
// phi[], sum) lives on the calling goroutine.
type LoadBalancerS2 struct {
	mu sync.Mutex

	low             uint64
	z               uint64
	segmentSize     uint64
	segmentsPerThrd uint64
	maxSegmentSize  uint64
	minSegmentSize  uint64

	sApprox   float64
	sumSoFar  float64
	startTime time.Time
}

// NewLoadBalancerS2 creates a balancer covering [1, z]; segmentSize
// starts at approximately sqrt(z)/log(sqrt(z)), clamped to a minimum
// of 512 and aligned per spec.md §4.9.
func NewLoadBalancerS2(z uint64, sApprox float64) *LoadBalancerS2 {
	sqrtZ := isqrt(z)
	initSize := uint64(1)
	if sqrtZ > 1 {
		logSqrtZ := logApprox(float64(sqrtZ))
		if logSqrtZ > 1 {
			initSize = sqrtZ / uint64(logSqrtZ)
		}
	}
	if initSize < 512 {
		initSize = 512
	}
	return &LoadBalancerS2{
		low:             1,
		z:               z,
		segmentSize:     roundUp240(initSize),
		segmentsPerThrd: 1,
		minSegmentSize:  512,
		maxSegmentSize:  1 << 20,
		sApprox:         sApprox,
		startTime:       time.Now(),
	}
}

func logApprox(x float64) float64 {
	if x <= 1 {
		return 1
	}
	return naturalLog(x)
}

// ThreadSettings is the per-thread transient record of spec.md §3:
// threads submit their result back when requesting more work.
type ThreadSettings struct {
	Low         uint64
	Segments    uint64
	SegmentSize uint64
	Sum         int64
	InitSecs    float64
	Secs        float64
}

// GetWork is the single suspension point for S2_hard workers
// (spec.md §5). It accepts the calling thread's partial sum and
// timing, folds them into the running total, and returns the next
// block or ok=false once [1,z] is exhausted.
func (b *LoadBalancerS2) GetWork(prev *ThreadSettings) (low, segments, segmentSize uint64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev != nil {
		b.sumSoFar += float64(prev.Sum)
		Metrics.blocksIssued.WithLabelValues("s2_hard").Inc()
		b.adjust(prev)
	}

	if b.low >= b.z {
		return 0, 0, 0, false
	}

	if b.segmentSize < b.maxSegmentSize {
		b.segmentSize *= 2
		if b.segmentSize > b.maxSegmentSize {
			b.segmentSize = b.maxSegmentSize
		}
	}

	remaining := b.z - b.low
	blockLen := b.segmentsPerThrd * b.segmentSize
	if blockLen == 0 {
		blockLen = b.segmentSize
	}
	if blockLen > remaining {
		blockLen = remaining
		b.segmentsPerThrd = maxU64(1, blockLen/b.segmentSize)
	}

	thisLow := b.low
	thisSegments := maxU64(1, blockLen/b.segmentSize)
	b.low += thisSegments * b.segmentSize

	return thisLow, thisSegments, b.segmentSize, true
}

// adjust implements spec.md §4.9's segments_per_thread ramp: grow it
// when a thread finished quickly relative to the estimated remaining
// time, shrink it near the end to avoid stragglers.
func (b *LoadBalancerS2) adjust(prev *ThreadSettings) {
	if prev.Secs <= 0 {
		return
	}
	elapsed := time.Since(b.startTime).Seconds()
	fracDone := 0.0
	if b.z > 0 {
		fracDone = float64(b.low) / float64(b.z)
	}
	var remainingSecs float64
	if fracDone > 0 {
		remainingSecs = elapsed/fracDone - elapsed
	}

	threshold := maxFloat(0.01, maxFloat(10*prev.InitSecs, remainingSecs/4))
	if prev.Secs < threshold {
		factor := minFloat(threshold/prev.Secs, 2)
		b.segmentsPerThrd = maxU64(1, uint64(float64(b.segmentsPerThrd)*factor))
	} else if prev.Secs > threshold*2 {
		b.segmentsPerThrd = maxU64(1, b.segmentsPerThrd/2)
	}

	remaining := b.z - b.low
	threadTime := prev.Secs
	if remaining > 0 && threadTime > 0 {
		estRemainingWork := float64(remaining) / float64(b.segmentSize)
		if estRemainingWork < 4*float64(b.segmentsPerThrd) {
			b.segmentsPerThrd = 1
		}
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
