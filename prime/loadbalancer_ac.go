package prime

import "sync/atomic"

// LoadBalancerAC is a shared counter handing out prime indices b for
// Gourdon's A and C formulas (spec.md §4.9 note, §5): "the doubled
// relaxed fetch-add idiom of the source" becomes a plain atomic counter
// in Go, since Go provides no separate relaxed/acquire-release memory
// order knobs -- sync/atomic's operations already give the minimal
// ordering the source's workaround was chasing. A and C in s2easy.go
// iterate b sequentially on the calling goroutine and do not call it.
type LoadBalancerAC struct {
	next int64
	max  int64
}

func NewLoadBalancerAC(maxB int64) *LoadBalancerAC {
	return &LoadBalancerAC{max: maxB}
}

// GetWork returns the next prime index b to process, or ok=false once
// every index up to max has been handed out.
func (l *LoadBalancerAC) GetWork() (b int64, ok bool) {
	n := atomic.AddInt64(&l.next, 1)
	if n > l.max {
		return 0, false
	}
	return n, true
}
