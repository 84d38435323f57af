package prime

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Algorithm selects which combinatorial driver Pi dispatches to.
type Algorithm int

const (
	AlgorithmGourdon Algorithm = iota
	AlgorithmDeleglisRivat
	AlgorithmLMO
)

var selectedAlgorithm = AlgorithmGourdon

// SetAlgorithm changes which driver Pi uses by default.
func SetAlgorithm(a Algorithm) { selectedAlgorithm = a }

// maxXFor64BitHost bounds x for this build's uint64-width engine. The
// C++ source supports a 128-bit magnitude (spec.md §6's "10^31" on
// hosts with __int128); this Go port's hot-loop arithmetic is
// monomorphized into a uint64 path and a u128 path per spec.md §9,
// but only the uint64 driver path is wired up end to end here, so the
// practical ceiling is bounded by uint64 (see DESIGN.md "Open
// questions resolved").
const maxXFor64BitHost uint64 = math.MaxUint64/4 - 1

// GetMaxX returns the largest x this build can answer, spec.md §6.
func GetMaxX() string {
	return strconv.FormatUint(maxXFor64BitHost, 10)
}

// Pi computes pi(x), the count of primes <= x, spec.md §6's core API.
// x < 2 (including negative x, encoded as a negative big.Int) returns
// 0 per the Non-goals in spec.md §1. Values exceeding GetMaxX() return
// a *DomainError.
func Pi(x *big.Int) (*big.Int, error) {
	if x.Sign() < 0 {
		return big.NewInt(0), nil
	}
	if !x.IsUint64() {
		maxBig := new(big.Int)
		maxBig.SetString(GetMaxX(), 10)
		if x.Cmp(maxBig) > 0 {
			return nil, &DomainError{X: x.String(), MaxX: GetMaxX(), Alpha: 0}
		}
	}
	xu := x.Uint64()
	if xu > maxXFor64BitHost {
		return nil, &DomainError{X: x.String(), MaxX: GetMaxX(), Alpha: 0}
	}

	result, err := piUint64(xu)
	if err != nil {
		return nil, err
	}
	return big.NewInt(result), nil
}

// PiInt64 is a convenience entry point for the common case where x
// fits comfortably in an int64 (covers every seed scenario in
// spec.md §8's table, up to 10^14).
func PiInt64(x int64) (int64, error) {
	if x < 2 {
		return 0, nil
	}
	return piUint64(uint64(x))
}

func piUint64(x uint64) (int64, error) {
	if x < 2 {
		return 0, nil
	}
	if v, ok := piSmall(x); ok {
		return v, nil
	}

	computationID := newComputationID()
	threads := GetNumThreads()

	result, err := runSelectedAlgorithm(x, threads, computationID)
	if err != nil {
		return 0, err
	}

	if getVerifyComputation() {
		alt, err := runAlgorithm(pickOtherAlgorithm(selectedAlgorithm), x, threads, computationID)
		if err == nil && alt != result {
			Logger.WithField("computation_id", computationID).
				Warnf("verify_computation mismatch: %d vs %d", result, alt)
		}
	}

	if getDoubleCheck() {
		alpha1 := defaultAlpha(x)
		alpha2 := alpha1 * 1.5
		first, err1 := piWithAlpha(x, alpha1, threads, computationID)
		second, err2 := piWithAlpha(x, alpha2, threads, computationID)
		if err1 == nil && err2 == nil && first != second {
			return 0, &VerificationError{
				ComputationID: computationID,
				X:             formatX(x),
				First:         strconv.FormatInt(first, 10),
				Second:        strconv.FormatInt(second, 10),
				AlphaFirst:    alpha1,
				AlphaSecond:   alpha2,
			}
		}
		result = first
	}

	return result, nil
}

func runSelectedAlgorithm(x uint64, threads int, computationID string) (int64, error) {
	return runAlgorithm(selectedAlgorithm, x, threads, computationID)
}

func runAlgorithm(a Algorithm, x uint64, threads int, computationID string) (int64, error) {
	switch a {
	case AlgorithmLMO:
		return piLMOParallel(x, 0, threads, computationID), nil
	case AlgorithmDeleglisRivat:
		return piDeleglisRivat(x, 0, threads, computationID), nil
	default:
		alphaY, alphaZ := defaultAlphaYZ(x)
		return piGourdon(x, alphaY, alphaZ, threads, computationID), nil
	}
}

func piWithAlpha(x uint64, alpha float64, threads int, computationID string) (int64, error) {
	switch selectedAlgorithm {
	case AlgorithmLMO:
		return piLMOParallel(x, alpha, threads, computationID), nil
	default:
		return piDeleglisRivat(x, alpha, threads, computationID), nil
	}
}

func pickOtherAlgorithm(a Algorithm) Algorithm {
	if a == AlgorithmGourdon {
		return AlgorithmDeleglisRivat
	}
	return AlgorithmGourdon
}

// Phi is the partial sieve function API entry point, spec.md §6:
// phi(x, a) for x >= 0, a >= 0.
func Phi(x uint64, a int) int64 {
	if a <= 8 {
		return int64(phiTinyValue(x, a))
	}
	primes := generatePrimesUpTo(x, 1)
	pit := NewPiTable(x, 1)
	cache := NewPhiCache(primes, pit)
	return cache.Phi(x, a)
}

// NthPrime returns the n-th prime (1-indexed: NthPrime(1) == 2),
// found via bisection over Pi starting from Li^-1(n), spec.md §6.
func NthPrime(n uint64) (uint64, error) {
	if n == 0 {
		return 0, &DomainError{X: "0", MaxX: GetMaxX()}
	}
	guess := uint64(LiInverse(float64(n)))
	if guess < 2 {
		guess = 2
	}

	lo, hi := guess/2, guess*2
	if lo < 2 {
		lo = 2
	}
	for {
		v, err := piUint64(hi)
		if err != nil {
			return 0, err
		}
		if uint64(v) >= n {
			break
		}
		hi *= 2
	}

	for lo < hi {
		mid := lo + (hi-lo)/2
		v, err := piUint64(mid)
		if err != nil {
			return 0, err
		}
		if uint64(v) >= n {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo, nil
}

func formatX(x uint64) string {
	return fmt.Sprintf("%d", x)
}

// ParseX parses a decimal string into a *big.Int, surfacing a
// *ParseError on failure (spec.md §7 "parse error").
func ParseX(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, &ParseError{Input: s, Err: fmt.Errorf("invalid integer syntax")}
	}
	return v, nil
}
