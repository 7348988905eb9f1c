// Package halton implements a scrambled Halton sequence: a low-discrepancy
// source whose n-th point in dimension d is the radical inverse of n in the
// d-th prime base, with the digits passed through a per-dimension random
// permutation.
package halton

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/quasirand/internal/randutil"
)

// DefaultDimensions is the number of dimensions New prepares when asked for 0.
const DefaultDimensions = 16

// digitSpan bounds how many digits each base uses: enough that base^digits
// covers every 32-bit index.
const digitSpan = 1 << 32

// dimension holds the precomputed tables for one prime base.
type dimension struct {
	base   int
	digits int
	perm   []int
	scale  []float64 // scale[k] = base^-(k+1)
}

// Sampler produces scrambled Halton samples. It is not safe for concurrent
// Reseed; Sample only reads and may be shared once seeded.
type Sampler struct {
	dims []dimension
}

// New returns a sampler with the given number of dimensions, scrambled from
// seed. Seed 0 is treated as 1. dimensions <= 0 selects DefaultDimensions.
func New(seed uint32, dimensions int) *Sampler {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}

	s := &Sampler{dims: make([]dimension, dimensions)}
	for d, p := range firstPrimes(dimensions) {
		s.dims[d] = newDimension(p)
	}
	s.Reseed(seed)
	return s
}

// Reseed rebuilds the digit permutations from seed. The sequence is a pure
// function of (seed, dimension, index).
func (s *Sampler) Reseed(seed uint32) {
	rng := rand.New(randutil.Source(randutil.NewXor32(seed)))
	for d := range s.dims {
		dim := &s.dims[d]
		for i := range dim.perm {
			dim.perm[i] = i
		}
		rng.Shuffle(len(dim.perm), func(i, j int) {
			dim.perm[i], dim.perm[j] = dim.perm[j], dim.perm[i]
		})
	}
}

// Dimensions returns how many dimensions the sampler supports.
func (s *Sampler) Dimensions() int {
	return len(s.dims)
}

// Base returns the prime base used for dimension.
func (s *Sampler) Base(dimension int) int {
	return s.dim(dimension).base
}

// Sample returns the index-th point of the given dimension, in [0, 1).
// Digits beyond the first 2^32 indices are ignored, so the sequence repeats
// after that. It panics if dimension is out of range or index is negative.
func (s *Sampler) Sample(dimension, index int) float64 {
	if index < 0 {
		panic(fmt.Sprintf("halton: negative index %d", index))
	}
	dim := s.dim(dimension)

	n := index
	v := 0.0
	for k := 0; k < dim.digits; k++ {
		digit := n % dim.base
		n /= dim.base
		v += float64(dim.perm[digit]) * dim.scale[k]
	}
	return v
}

func (s *Sampler) dim(dimension int) *dimension {
	if dimension < 0 || dimension >= len(s.dims) {
		panic(fmt.Sprintf("halton: dimension %d out of range [0, %d)", dimension, len(s.dims)))
	}
	return &s.dims[dimension]
}

func newDimension(base int) dimension {
	digits := 0
	for span := 1; span < digitSpan; span *= base {
		digits++
	}

	scale := make([]float64, digits)
	inv := 1.0 / float64(base)
	f := inv
	for k := range scale {
		scale[k] = f
		f *= inv
	}

	return dimension{
		base:   base,
		digits: digits,
		perm:   make([]int, base),
		scale:  scale,
	}
}

// firstPrimes returns the first n primes.
func firstPrimes(n int) []int {
	primes := make([]int, 0, n)
	for c := 2; len(primes) < n; c++ {
		prime := true
		for _, p := range primes {
			if p*p > c {
				break
			}
			if c%p == 0 {
				prime = false
				break
			}
		}
		if prime {
			primes = append(primes, c)
		}
	}
	return primes
}
