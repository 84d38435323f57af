package prime

import "fmt"

// DomainError reports that x exceeds the largest value the chosen
// algorithm/alpha combination can answer (spec.md §7, "domain error").
type DomainError struct {
	X     string
	MaxX  string
	Alpha float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("prime: x=%s exceeds max_x(alpha=%.3f)=%s", e.X, e.Alpha, e.MaxX)
}

// ParseError reports a failed string->integer conversion at the API
// boundary (spec.md §7, "parse error").
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("prime: cannot parse %q as integer: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// VerificationError reports that SetDoubleCheck's redundant recompute
// at a second alpha disagreed with the first (spec.md §7, "fatal").
// The library surfaces it as a normal error value; the CLI is the
// layer that chooses to treat it as fatal and exit(1) (see
// cmd/primecount), per the Open Question resolved in DESIGN.md.
type VerificationError struct {
	ComputationID string
	X             string
	First         string
	Second        string
	AlphaFirst    float64
	AlphaSecond   float64
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf(
		"prime: verification mismatch for x=%s (computation %s): alpha=%.3f -> %s, alpha=%.3f -> %s",
		e.X, e.ComputationID, e.AlphaFirst, e.First, e.AlphaSecond, e.Second,
	)
}

// assertf panics with a formatted message when debugAssertions is
// enabled. In release builds (debugAssertions == false, the default)
// it is a no-op, matching the C++ source's assert() being compiled
// out of release builds (spec.md §7, "programmer error").
func assertf(cond bool, format string, args ...any) {
	if !debugAssertions {
		return
	}
	if !cond {
		panic(fmt.Sprintf("prime: assertion failed: "+format, args...))
	}
}
