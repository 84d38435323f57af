package prime

import (
	"fmt"
	"testing"
)

func TestSieveOfEratosthenes(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected []uint64
	}{
		{"n=10", 10, []uint64{2, 3, 5, 7}},
		{"n=30", 30, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}},
		{"n=5", 5, []uint64{2, 3}},
		{"n=2", 2, nil},
		{"n=0", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sieveOfEratosthenes(tt.n)
			if len(result) != len(tt.expected) {
				t.Fatalf("sieveOfEratosthenes(%d) = %v, want %v", tt.n, result, tt.expected)
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("sieveOfEratosthenes(%d)[%d] = %d, want %d", tt.n, i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestSegmentedPrimesMatchesClassic(t *testing.T) {
	for _, n := range []int{100, 500, 1000, 5000, 10000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			expected := sieveOfEratosthenes(n)
			result := segmentedPrimes(n)
			if len(result) != len(expected) {
				t.Fatalf("segmentedPrimes(%d) length = %d, want %d", n, len(result), len(expected))
			}
			for i, v := range result {
				if v != expected[i] {
					t.Errorf("segmentedPrimes(%d)[%d] = %d, want %d", n, i, v, expected[i])
				}
			}
		})
	}
}

func TestParallelSegmentedPrimesMatchesSegmented(t *testing.T) {
	for _, n := range []int{1000, 5000, 20000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			expected := segmentedPrimes(n)
			result := parallelSegmentedPrimes(n, 4)
			if len(result) != len(expected) {
				t.Fatalf("parallelSegmentedPrimes(%d) length = %d, want %d", n, len(result), len(expected))
			}
			for i, v := range result {
				if v != expected[i] {
					t.Errorf("parallelSegmentedPrimes(%d)[%d] = %d, want %d", n, i, v, expected[i])
				}
			}
		})
	}
}

func TestGeneratePrimesUpToIsOneIndexed(t *testing.T) {
	primes := generatePrimesUpTo(20, 1)
	if primes[0] != 0 {
		t.Fatalf("primes[0] = %d, want sentinel 0", primes[0])
	}
	want := []uint64{0, 2, 3, 5, 7, 11, 13, 17, 19}
	if len(primes) != len(want) {
		t.Fatalf("generatePrimesUpTo(20) = %v, want %v", primes, want)
	}
	for i, v := range primes {
		if v != want[i] {
			t.Errorf("primes[%d] = %d, want %d", i, v, want[i])
		}
	}
}

func TestPrimeIterator(t *testing.T) {
	primes := generatePrimesUpTo(20, 1)
	it := newPrimeIterator(primes)
	var got []uint64
	for {
		p, ok := it.peek()
		if !ok {
			break
		}
		n, ok2 := it.next()
		if !ok2 || n != p {
			t.Fatalf("peek/next disagreed: peek=%d next=%d", p, n)
		}
		got = append(got, n)
	}
	want := []uint64{2, 3, 5, 7, 11, 13, 17, 19}
	if len(got) != len(want) {
		t.Fatalf("iterator walked %v, want %v", got, want)
	}
	for i, v := range got {
		if v != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, v, want[i])
		}
	}
}
