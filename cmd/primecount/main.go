// Command primecount is a CLI front end for package prime: it counts
// primes up to x using the Deléglise-Rivat, LMO or Gourdon
// combinatorial algorithms, and exposes the individual engine
// components (P2, S1, S2_hard, A, B, C, Phi0, Sigma) for isolated
// timing. Flag-parsing skeleton and --progress/--quiet/rate-reporting
// conventions adapted from the teacher's cmd/primes/main.go.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pchuck/primecount/internal/progress"
	"github.com/pchuck/primecount/prime"
)

var (
	deleglisRivat bool
	gourdon       bool
	lmo           bool
	legendre      bool

	flagP2      bool
	flagS1      bool
	flagS2Hard  bool
	flagAC      bool
	flagB       bool
	flagD       bool
	flagPhi0    bool
	flagSigma   bool
	nthPrime    bool
	phiFlag     bool
	liFlag      bool
	liInvFlag   bool
	riFlag      bool
	riInvFlag   bool
	testFlag    bool
	versionFlag bool

	alpha   float64
	alphaY  float64
	alphaZ  float64
	threads int

	statusMode  = &statusFlag{}
	showTime    bool
	progressBar bool
	quiet       bool

	verify      bool
	doubleCheck bool
)

func init() {
	flag.BoolVar(&deleglisRivat, "deleglise-rivat", false, "Use the Deleglise-Rivat algorithm")
	flag.BoolVar(&gourdon, "gourdon", false, "Use Gourdon's algorithm (default)")
	flag.BoolVar(&lmo, "lmo", false, "Use the Lagarias-Miller-Odlyzko algorithm")
	flag.BoolVar(&legendre, "legendre", false, "Use Legendre's formula (small x only)")

	flag.BoolVar(&flagP2, "P2", false, "Compute the 2nd partial sieve function")
	flag.BoolVar(&flagS1, "S1", false, "Compute the ordinary leaves S1")
	flag.BoolVar(&flagS2Hard, "S2-hard", false, "Compute the hard special leaves S2")
	flag.BoolVar(&flagAC, "AC", false, "Compute Gourdon's A + C formulas")
	flag.BoolVar(&flagB, "B", false, "Compute Gourdon's B formula")
	flag.BoolVar(&flagD, "D", false, "Compute Gourdon's D formula")
	flag.BoolVar(&flagPhi0, "Phi0", false, "Compute Gourdon's Phi0 formula")
	flag.BoolVar(&flagSigma, "Sigma", false, "Compute the 7 Sigma terms of Gourdon's formula")

	flag.BoolVar(&nthPrime, "nth-prime", false, "Calculate the nth prime")
	flag.BoolVar(&phiFlag, "phi", false, "phi(x, a): partial sieve function, needs two args")
	flag.BoolVar(&liFlag, "Li", false, "Approximate pi(x) using the logarithmic integral")
	flag.BoolVar(&liInvFlag, "Li-inverse", false, "Approximate the nth prime using Li^-1(x)")
	flag.BoolVar(&riFlag, "Ri", false, "Approximate pi(x) using Riemann R")
	flag.BoolVar(&riInvFlag, "Ri-inverse", false, "Approximate the nth prime using Riemann R^-1")
	flag.BoolVar(&testFlag, "test", false, "Run internal correctness self-tests")
	flag.BoolVar(&versionFlag, "version", false, "Print version and exit")

	flag.Float64Var(&alpha, "alpha", 0, "Tuning factor for LMO/Deleglise-Rivat")
	flag.Float64Var(&alphaY, "alpha-y", 0, "Tuning factor y for Gourdon's algorithm")
	flag.Float64Var(&alphaZ, "alpha-z", 0, "Tuning factor z for Gourdon's algorithm")
	flag.IntVar(&threads, "threads", 0, "Number of threads (default: NumCPU)")

	flag.Var(statusMode, "status", "Print status updates while computing (bare, or =digits)")
	flag.BoolVar(&showTime, "time", false, "Print the time elapsed")
	flag.BoolVar(&progressBar, "progress", false, "Show a progress bar (alias for --status)")
	flag.BoolVar(&quiet, "quiet", false, "Only print the result")

	flag.BoolVar(&verify, "verify-computation", false, "Cross-check against a second algorithm")
	flag.BoolVar(&doubleCheck, "double-check", false, "Recompute at a second alpha and compare")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "primecount - count the primes below x\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] x\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s 1000000000000000000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --lmo --threads=4 1000000000000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --nth-prime 1000000000\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --phi 1000000 10\n", os.Args[0])
	}
}

func main() {
	flag.Parse()

	if versionFlag {
		fmt.Println(prime.Version())
		return
	}

	if threads > 0 {
		prime.SetNumThreads(threads)
	}
	prime.SetVerifyComputation(verify)
	prime.SetDoubleCheck(doubleCheck)

	switch {
	case deleglisRivat:
		prime.SetAlgorithm(prime.AlgorithmDeleglisRivat)
	case lmo:
		prime.SetAlgorithm(prime.AlgorithmLMO)
	default:
		prime.SetAlgorithm(prime.AlgorithmGourdon)
	}

	switch {
	case testFlag:
		runSelfTests()
	case nthPrime:
		runNthPrime(readArg(0, "n"))
	case phiFlag:
		runPhi(readArg(0, "x"), readArg(1, "a"))
	case liFlag:
		runLi(readArg(0, "x"))
	case liInvFlag:
		runLiInverse(readArg(0, "x"))
	case riFlag:
		runRi(readArg(0, "x"))
	case riInvFlag:
		runRiInverse(readArg(0, "x"))
	case legendre:
		runLegendre(readArg(0, "x"))
	case flagP2, flagS1, flagS2Hard, flagAC, flagB, flagD, flagPhi0, flagSigma:
		runComponent(readArg(0, "x"))
	default:
		runPi(readArg(0, "x"))
	}
}

// statusFlag implements flag.Value and the unexported "boolean flag"
// interface flag.Parse checks for, so --status works bare and
// --status=digits works with a value, matching spec.md §6's
// --status[=digits] surface.
type statusFlag struct {
	set   bool
	value string
}

func (s *statusFlag) String() string {
	if s.value != "" {
		return s.value
	}
	return "false"
}

func (s *statusFlag) Set(v string) error {
	s.set = true
	s.value = v
	return nil
}

func (s *statusFlag) IsBoolFlag() bool { return true }

func readArg(i int, name string) string {
	if flag.NArg() > i {
		return flag.Arg(i)
	}
	fmt.Fprintf(os.Stderr, "Enter %s: ", name)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseBigX(s string) *big.Int {
	x, err := prime.ParseX(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return x
}

func parseUint64(s string) uint64 {
	x := parseBigX(s)
	if !x.IsUint64() {
		fmt.Fprintf(os.Stderr, "Error: %s exceeds this build's 64-bit width (max %s)\n", s, prime.GetMaxX())
		os.Exit(1)
	}
	return x.Uint64()
}

func runPi(xStr string) {
	start := time.Now()
	x := parseBigX(xStr)

	var bar *progress.ProgressBar
	if progressBar || statusMode.set {
		bar = progress.NewProgressBar(1, fmt.Sprintf("pi(%s)", xStr))
		bar.SetDescription("computing")
		bar.SetDigitsMode(statusMode.value == "digits")
	}

	result, err := prime.Pi(x)
	if bar != nil {
		bar.SetCompleted(1)
		bar.Finish()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if quiet {
		fmt.Println(result.String())
	} else {
		fmt.Printf("pi(%s) = %s\n", xStr, result.String())
	}
	if showTime {
		fmt.Fprintf(os.Stderr, "Seconds: %.6f\n", time.Since(start).Seconds())
	}
}

func runLegendre(xStr string) {
	start := time.Now()
	x := parseUint64(xStr)
	result := prime.Legendre(x, prime.GetNumThreads())
	fmt.Printf("pi(%s) = %d (Legendre)\n", xStr, result)
	if showTime {
		fmt.Fprintf(os.Stderr, "Seconds: %.6f\n", time.Since(start).Seconds())
	}
}

func runComponent(xStr string) {
	start := time.Now()
	x := parseUint64(xStr)

	a := alpha
	if gourdon || (!deleglisRivat && !lmo) {
		ay, az := alphaY, alphaZ
		if ay <= 0 || az <= 0 {
			ay, az = prime.DefaultAlphaYZ(x)
		}
		runGourdonComponent(x, ay, az)
		if showTime {
			fmt.Fprintf(os.Stderr, "Seconds: %.6f\n", time.Since(start).Seconds())
		}
		return
	}

	in := prime.NewComponentInputs(x, a, prime.GetNumThreads())
	switch {
	case flagP2:
		fmt.Printf("P2(%s, %d) = %d\n", xStr, in.Y, prime.P2(in.X, in.Y, in.Primes, in.Pi, prime.GetNumThreads()))
	case flagS1:
		fmt.Printf("S1(%s, %d) = %d\n", xStr, in.Y, prime.S1(in.X, in.Y, in.C, in.Primes, in.Pi, prime.GetNumThreads()))
	case flagS2Hard:
		fmt.Printf("S2_hard(%s, %d, %d) = %d\n", xStr, in.Y, in.Z,
			prime.S2Hard(in.X, in.Y, in.Z, in.C, in.Primes, in.Pi, in.FactorTable, 0, prime.GetNumThreads()))
	default:
		fmt.Fprintln(os.Stderr, "that component flag requires --gourdon")
		os.Exit(1)
	}
	if showTime {
		fmt.Fprintf(os.Stderr, "Seconds: %.6f\n", time.Since(start).Seconds())
	}
}

func runGourdonComponent(x uint64, alphaY, alphaZ float64) {
	threads := prime.GetNumThreads()
	cbrtX := prime.Iroot(x, 3)
	sqrtX := prime.Iroot(x, 2)
	y := uint64(alphaY * float64(cbrtX))
	if y <= cbrtX {
		y = cbrtX + 1
	}
	if y >= sqrtX {
		y = sqrtX - 1
	}
	z := uint64(alphaZ * float64(y))
	if z < y {
		z = y
	}
	if z >= sqrtX {
		z = sqrtX - 1
	}
	k := prime.GetK(x)
	xStar := y
	if x/z < xStar {
		xStar = x / z
	}

	primes := prime.GeneratePrimesUpTo(z, threads)
	pit := prime.NewPiTable(y, threads)
	ftD := prime.NewFactorTableD(y, z, threads)

	switch {
	case flagAC:
		a := prime.A(x, y, z, xStar, k, primes, threads)
		c := prime.C(x, y, z, xStar, k, primes, threads)
		fmt.Printf("A(%d) = %d, C(%d) = %d\n", x, a, x, c)
	case flagB:
		primesSqrtX := prime.GeneratePrimesUpTo(sqrtX, threads)
		piXDivY := prime.NewPiTable(x/y, threads)
		fmt.Printf("B(%d) = %d\n", x, prime.B(x, y, primesSqrtX, piXDivY, threads))
	case flagD:
		fmt.Printf("D(%d) = %d\n", x, prime.S2Hard(x, y, z, k, primes, pit, ftD, 0, threads))
	case flagPhi0:
		fmt.Printf("Phi0(%d) = %d\n", x, prime.Phi0(x, z, k, primes, threads))
	case flagSigma:
		fmt.Printf("Sigma(%d) = %d\n", x, prime.Sigma(x, y, z, xStar, k, primes, pit))
	}
}

func runNthPrime(nStr string) {
	n := parseUint64(nStr)
	p, err := prime.NthPrime(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Nth prime: %d\n", p)
}

func runPhi(xStr, aStr string) {
	x := parseUint64(xStr)
	a, err := strconv.Atoi(aStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid a=%q: %v\n", aStr, err)
		os.Exit(1)
	}
	fmt.Printf("phi(%s, %d) = %d\n", xStr, a, prime.Phi(x, a))
}

func runLi(xStr string) {
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Li(%s) = %.0f\n", xStr, prime.Li(x))
}

func runLiInverse(xStr string) {
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Li^-1(%s) = %.0f\n", xStr, prime.LiInverse(x))
}

func runRi(xStr string) {
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ri(%s) = %.0f\n", xStr, prime.RiemannR(x))
}

func runRiInverse(xStr string) {
	x, err := strconv.ParseFloat(xStr, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ri^-1(%s) = %.0f\n", xStr, prime.RiemannRInverse(x))
}

// runSelfTests exercises the ground-truth anchors from spec.md §8
// against the currently selected algorithm, without pulling in the
// "go test" harness -- a quick sanity check a user can run against a
// freshly built binary.
func runSelfTests() {
	anchors := map[uint64]int64{
		10:      4,
		100:     25,
		1000:    168,
		10000:   1229,
		100000:  9592,
		1000000: 78498,
	}
	fail := 0
	for x, want := range anchors {
		got, err := prime.PiInt64(int64(x))
		if err != nil {
			fmt.Printf("FAIL pi(%d): %v\n", x, err)
			fail++
			continue
		}
		if got != want {
			fmt.Printf("FAIL pi(%d) = %d, want %d\n", x, got, want)
			fail++
			continue
		}
		fmt.Printf("OK   pi(%d) = %d\n", x, got)
	}
	if fail > 0 {
		fmt.Printf("%d test(s) failed\n", fail)
		os.Exit(1)
	}
	fmt.Println("All tests passed")
}
