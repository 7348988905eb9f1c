// Package randutil provides the deterministic generators used to draw
// pseudo-random samples. Every generator here is seeded explicitly so that
// runs with the same seed reproduce the same stream.
package randutil

// PseudoRandom is a seeded source of uniformly distributed values.
// Implementations are not safe for concurrent use; give each goroutine its own.
type PseudoRandom interface {
	// Generate returns a value in [0, MaxGenerate].
	Generate() uint32
	// Uniform returns a value in [0, 1).
	Uniform() float64
	// UniformRange returns a value in [a, b).
	UniformRange(a, b float64) float64
}

// MaxGenerate is the largest value Generate may return.
const MaxGenerate = 0x7FFFFFFF

// generateSpan is 2^31, one past MaxGenerate.
const generateSpan = float64(1 << 31)

// defaultXorState is Marsaglia's reference seed, used by the zero value.
const defaultXorState = 2463534242

// Xor32 is Marsaglia's 32-bit xorshift generator (13, 17, 5).
//
// The whole state is one word that must never be zero, because zero maps to
// itself. A zero seed is replaced with 1, and the zero value of Xor32 starts
// from Marsaglia's reference state.
type Xor32 struct {
	y uint32
}

// NewXor32 returns a generator seeded with seed, or 1 when seed is 0.
func NewXor32(seed uint32) *Xor32 {
	r := &Xor32{}
	r.Seed(seed)
	return r
}

// Seed resets the generator in place. Seed 0 is treated as 1.
func (r *Xor32) Seed(seed uint32) {
	r.y = max(seed, 1)
}

// Generate advances the state and returns its upper 31 bits.
func (r *Xor32) Generate() uint32 {
	if r.y == 0 {
		r.y = defaultXorState
	}
	y := r.y
	y ^= y << 13
	y ^= y >> 17
	y ^= y << 5
	r.y = y
	return y >> 1
}

// Uniform returns Generate() / 2^31, a value in [0, 1).
func (r *Xor32) Uniform() float64 {
	return float64(r.Generate()) / generateSpan
}

// UniformRange returns a + (b-a)*Uniform().
func (r *Xor32) UniformRange(a, b float64) float64 {
	return a + (b-a)*r.Uniform()
}
