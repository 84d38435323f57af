package prime

import (
	"runtime"
	"sync/atomic"
)

// Package-level tunables, generalized from the teacher's compile-time
// DefaultSegmentSize / ParallelThreshold constants (prime/primes.go)
// into runtime-settable atomics, because the spec.md §6 API
// (set_num_threads, set_verify_computation, set_double_check) requires
// a process can change them between calls.
var (
	numThreads        int32
	verifyComputation int32
	doubleCheck       int32
	debugAssertions   = false
)

func init() {
	atomic.StoreInt32(&numThreads, int32(runtime.NumCPU()))
}

// SetNumThreads sets the number of worker goroutines used by the
// load-balanced components (S2_hard/D, P2/B, A/C). n <= 0 resets to
// runtime.NumCPU().
func SetNumThreads(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	atomic.StoreInt32(&numThreads, int32(n))
}

// GetNumThreads returns the currently configured worker count.
func GetNumThreads() int {
	return int(atomic.LoadInt32(&numThreads))
}

// SetVerifyComputation enables an inexpensive internal consistency
// check (algorithm equivalence, spec.md §8 property 2) on every Pi
// call. It is independent of SetDoubleCheck, which is the more
// expensive two-alpha recompute.
func SetVerifyComputation(b bool) {
	atomic.StoreInt32(&verifyComputation, boolToInt32(b))
}

func getVerifyComputation() bool {
	return atomic.LoadInt32(&verifyComputation) != 0
}

// SetDoubleCheck enables the redundant two-alpha recompute described
// in spec.md §7/§9: Pi is evaluated twice with distinct alpha values
// and a VerificationError is returned on mismatch.
func SetDoubleCheck(b bool) {
	atomic.StoreInt32(&doubleCheck, boolToInt32(b))
}

func getDoubleCheck() bool {
	return atomic.LoadInt32(&doubleCheck) != 0
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Version is the primecount_version() entry point of spec.md §6.
func Version() string { return version }

const version = "0.1.0"
