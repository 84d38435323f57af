package prime

// S2Easy computes the easy + trivial leaves of the Deléglise-Rivat
// S2 decomposition (spec.md §4.8): for each prime index b in
// [c+1, pi(sqrt(x))], sum pi(floor(xp/primes[l])) - b + 2 over
// l in (b, pi(y)], split into clustered / sparse / trivial regimes.
func S2Easy(x, y uint64, c int, primes []uint64, pi *PiTable) int64 {
	var sum int64
	sqrtX := isqrt(x)
	piY := pi.Pi(y)

	for b := c + 1; uint64(b) < uint64(len(primes)) && primes[b] <= sqrtX; b++ {
		p := primes[b]
		xp := hotDiv(x, p)
		if xp <= p {
			break
		}
		sum += s2EasySumForB(xp, y, b, int(piY), primes, pi)
	}
	return sum
}

// s2EasySumForB handles one b, iterating l from b+1 upward and
// accumulating phi_xpq for each l (spec.md §4.8 regime 2). The
// clustered-leaf jump below divides xp by primes[b+phiXPQ-1], the
// first prime above q; while q is inside the PiTable that quotient is
// always below primes[l], so the jump is not taken and every l is
// accumulated individually.
func s2EasySumForB(xp, y uint64, b, piY int, primes []uint64, pi *PiTable) int64 {
	var sum int64
	l := b + 1
	piYIdx := piY
	for l <= piYIdx {
		pl := primes[l]
		if pl == 0 {
			break
		}
		q := hotDiv(xp, pl)
		if q < pl {
			break // beyond this point primes[l]^2 > xp: trivial regime, nothing left to add here
		}
		phiXPQ := pi.lookupOrZero(q) - int64(b) + 2

		// clustered-leaf jump: find the largest l' such that
		// primes[b+phiXPQ-1] still yields the same pi value.
		jumpIdx := b + int(phiXPQ) - 1
		lNext := l + 1
		if jumpIdx >= 1 && jumpIdx < len(primes) && jumpIdx <= piYIdx {
			candidate := hotDiv(xp, primes[jumpIdx])
			if candidate >= pl {
				piCandidate := pi.lookupOrZero(candidate)
				lPrime := int(piCandidate)
				if lPrime > l && lPrime <= piYIdx {
					lNext = lPrime + 1
				}
			}
		}
		if lNext <= l {
			lNext = l + 1
		}
		sum += phiXPQ * int64(lNext-l)
		l = lNext
	}
	return sum
}

// lookupOrZero answers pi(n) for n within the table's range, or 0 if
// n is out of range (used defensively at the tail of the clustered
// scan where xp/primes[l] can dip below the table's domain floor).
func (t *PiTable) lookupOrZero(n uint64) int64 {
	if n >= t.high {
		return t.Pi(t.high - 1)
	}
	return t.Pi(n)
}

// A computes Gourdon's easy-leaf term using a SegmentedPiTable,
// spec.md §4.8's A formula for primes[b] > x_star.
func A(x, y, z, xStar uint64, k int, primes []uint64, threads int) int64 {
	maxHigh := isqrt(x) + 1
	spt := NewSegmentedPiTable(z, maxHigh)
	basePi := int64(0)
	spt.Init(1, basePi)

	var sum int64
	for b := k + 1; uint64(b) < uint64(len(primes)); b++ {
		p := primes[b]
		if p <= xStar {
			continue
		}
		if p > y {
			break
		}
		xp := hotDiv(x, p)
		for !spt.Finished() && xp >= spt.high {
			spt.Next()
		}
		if xp < spt.low || xp >= spt.high {
			continue
		}
		sum += spt.Pi(xp) - int64(b) + 1
	}
	return sum
}

// C computes Gourdon's clustered/sparse/trivial term for
// primes[b] <= x_star, using a dense PiTable up to
// max(root3_xy, z), spec.md §4.8.
func C(x, y, z, xStar uint64, k int, primes []uint64, threads int) int64 {
	root3xy := icbrt(x / y)
	bound := maxU64(root3xy, z)
	pit := NewPiTable(bound, threads)

	var sum int64
	for b := k + 1; uint64(b) < uint64(len(primes)); b++ {
		p := primes[b]
		if p > xStar {
			break
		}
		xp := hotDiv(x, p)
		if xp == 0 {
			continue
		}
		sum += s2EasySumForB(xp, minU64(y, bound), b, int(pit.lookupOrZero(minU64(y, bound))), primes, pit)
	}
	return sum
}
