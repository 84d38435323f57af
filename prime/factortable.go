package prime

import "sync"

// FactorTable stores, for n <= y on a 2*3*5*7 = 210 residue wheel, a
// single uint32 per n that encodes mu(n) and lpf(n) simultaneously
// (spec.md §4.4). FactorTableD is the same idea extended to a
// 2*3*5*7*11 = 2310 wheel with an additional "mpf(n) > y" predicate,
// used by the hard-leaf short circuit in S2_hard/D.

const factorTMax = 0xFFFFFFFF // factor_[] value type max (uint32 here)

// wheel210 lists the residues mod 210 coprime to 2*3*5*7, ascending.
var wheel210 = coprimeResidues(210, []uint64{2, 3, 5, 7})

// wheel2310 lists the residues mod 2310 coprime to 2*3*5*7*11.
var wheel2310 = coprimeResidues(2310, []uint64{2, 3, 5, 7, 11})

func coprimeResidues(modulus uint64, primes []uint64) []uint64 {
	var out []uint64
	for r := uint64(1); r <= modulus; r++ {
		ok := true
		for _, p := range primes {
			if r%p == 0 {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r%modulus)
		}
	}
	return out
}

// FactorTable answers mu(n) and lpf(n) for n <= y via the encoding
// table in spec.md §3.
type FactorTable struct {
	y       uint64
	factors []uint32 // indexed by to_index(n)
	coprime []uint64 // wheel210, first_coprime excluded handling in to_number
}

// to_number / to_index relate index i and value n via the 210 wheel:
// n = 210*q + wheel210[r], i = 48*q + r.
func (t *FactorTable) toNumber(i uint64) uint64 {
	q := i / 48
	r := i % 48
	return 210*q + t.coprime[r]
}

func (t *FactorTable) toIndex(n uint64) uint64 {
	q := n / 210
	rem := n % 210
	r := indexOfResidue(t.coprime, rem)
	return 48*q + uint64(r)
}

func indexOfResidue(wheel []uint64, rem uint64) int {
	for i, w := range wheel {
		if w == rem {
			return i
		}
	}
	// A residue not coprime to the wheel maps to index 0 of its block
	// (the entry of the number congruent to 1); sieveFactorTable skips
	// such n by checking toNumber(toIndex(n)) == n.
	return 0
}

// NewFactorTable builds mu/lpf for all n <= y, spec.md §4.4's build
// algorithm: seed to T_MAX, then sieve each prime's multiples, cross
// off squares, and fix up index 0. The sieve is one sequential sweep
// over [1, y]; threads is used only to generate the sieving primes.
func NewFactorTable(y uint64, threads int) *FactorTable {
	t := &FactorTable{y: y, coprime: wheel210}
	nIdx := (y/210 + 1) * 48
	factors := make([]uint32, nIdx)
	for i := range factors {
		factors[i] = factorTMax
	}

	primes := generatePrimesUpTo(y, threads)
	sieveFactorTable(factors, t, primes, y, nil)

	factors[0] = factorTMax - 1 // n = 1: mu = +1, lpf = +inf
	t.factors = factors
	return t
}

// sieveFactorTable implements the three-pass build of spec.md §4.4:
// (1) mark lpf / toggle mu parity for every sieving prime's multiples,
// (2) zero out squareful entries, (3) (FactorTableD only) zero out
// entries with a prime factor > y via yBound.
func sieveFactorTable(factors []uint32, t interface {
	toIndex(uint64) uint64
	toNumber(uint64) uint64
}, primes []uint64, high uint64, yBound *uint64) {
	var mu sync.Mutex
	for i := 1; i < len(primes); i++ {
		p := primes[i]
		for m := p; m <= high; m += p {
			idx := t.toIndex(m)
			if int(idx) >= len(factors) || t.toNumber(idx) != m {
				continue
			}
			mu.Lock()
			cur := factors[idx]
			if cur == factorTMax {
				factors[idx] = uint32(p)
			} else if cur != 0 {
				factors[idx] ^= 1
			}
			mu.Unlock()
		}
	}
	// squareful entries: mu(n) = 0 whenever p^2 | n.
	for i := 1; i < len(primes); i++ {
		p := primes[i]
		if squareExceeds(p, high) {
			break
		}
		for m := p * p; m <= high; m += p * p {
			idx := t.toIndex(m)
			if int(idx) < len(factors) && t.toNumber(idx) == m {
				factors[idx] = 0
			}
		}
	}
	if yBound != nil {
		y := *yBound
		for i := 1; i < len(primes); i++ {
			p := primes[i]
			if p <= y {
				continue
			}
			for m := p; m <= high; m += p {
				idx := t.toIndex(m)
				if int(idx) < len(factors) && t.toNumber(idx) == m {
					factors[idx] = 0
				}
			}
		}
	}
}

// Mu returns mu(n) for n <= y (-1, 0 or +1). Undefined (returns 0)
// when the stored entry is 0, matching spec.md §4.4's note that mu is
// undefined for an all-zero entry outside a testing flag.
func (t *FactorTable) Mu(n uint64) int {
	idx := t.toIndex(n)
	v := t.factors[idx]
	if v == 0 {
		return 0
	}
	if v&1 == 1 {
		return -1
	}
	return 1
}

// Lpf returns the least prime factor of n, decoded from the stored
// value per the +-1 offset convention of spec.md §3. It returns 0 for
// an entry stored as 0 (mu(n) = 0).
func (t *FactorTable) Lpf(n uint64) uint64 {
	idx := t.toIndex(n)
	v := t.factors[idx]
	if v == 0 || v == factorTMax {
		return 0
	}
	if v == factorTMax-1 {
		return factorTMax // n == 1: "lpf = +inf"
	}
	if v&1 == 1 {
		return uint64(v) // mu == -1: stored value IS lpf
	}
	return uint64(v) + 1 // mu == +1: stored value is lpf - 1
}

// MuLpf returns the raw encoded value at n's index, used directly by
// the D-formula short-circuit `prime < factor_[i]`.
func (t *FactorTable) MuLpf(n uint64) uint32 {
	return t.factors[t.toIndex(n)]
}

// Max returns the largest n this table supports (spec.md §4.4 bound).
func (t *FactorTable) Max() uint64 {
	return (uint64(factorTMax)-1)*(uint64(factorTMax)-1) - 1
}

// FactorTableD extends FactorTable to a 2310-residue wheel with the
// additional "has a prime factor > y" predicate baked into the zero
// encoding, used by S2_hard/D's single-comparison short circuit.
type FactorTableD struct {
	FactorTable
	z uint64
}

func (t *FactorTableD) toNumber(i uint64) uint64 {
	q := i / 480
	r := i % 480
	return 2310*q + t.coprime[r]
}

func (t *FactorTableD) toIndex(n uint64) uint64 {
	q := n / 2310
	rem := n % 2310
	r := indexOfResidue(t.coprime, rem)
	return 480*q + uint64(r)
}

// NewFactorTableD builds the D-variant over n <= z, zeroing entries
// whose greatest prime factor exceeds y (spec.md §4.4 step 2, D-variant).
func NewFactorTableD(y, z uint64, threads int) *FactorTableD {
	t := &FactorTableD{z: z}
	t.coprime = wheel2310
	nIdx := (z/2310 + 1) * 480
	factors := make([]uint32, nIdx)
	for i := range factors {
		factors[i] = factorTMax
	}

	primes := generatePrimesUpTo(z, threads)
	sieveFactorTable(factors, t, primes, z, &y)

	factors[0] = factorTMax - 1
	t.factors = factors
	return t
}

// Mu, Lpf and MuLpf are redeclared (rather than inherited via
// embedding) because Go has no virtual dispatch: FactorTable's
// methods would otherwise call FactorTable.toIndex instead of this
// type's 2310-wheel toIndex override.

func (t *FactorTableD) Mu(n uint64) int {
	v := t.factors[t.toIndex(n)]
	if v == 0 {
		return 0
	}
	if v&1 == 1 {
		return -1
	}
	return 1
}

func (t *FactorTableD) Lpf(n uint64) uint64 {
	idx := t.toIndex(n)
	v := t.factors[idx]
	if v == 0 || v == factorTMax {
		return 0
	}
	if v == factorTMax-1 {
		return factorTMax
	}
	if v&1 == 1 {
		return uint64(v)
	}
	return uint64(v) + 1
}

func (t *FactorTableD) MuLpf(n uint64) uint32 {
	return t.factors[t.toIndex(n)]
}
