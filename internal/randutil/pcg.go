package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed through splitmix, so callers
// only ever deal with a single integer.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// PCG exposes the rand/v2 PCG generator through the PseudoRandom interface,
// truncated to the same 31-bit output range as Xor32.
type PCG struct {
	rng *rand.Rand
}

// NewPCG returns a PCG generator. Seed 0 is treated as 1, matching Xor32.
func NewPCG(seed uint32) *PCG {
	return &PCG{rng: New(int64(max(seed, 1)))}
}

func (p *PCG) Generate() uint32 {
	return p.rng.Uint32() >> 1
}

func (p *PCG) Uniform() float64 {
	return float64(p.Generate()) / generateSpan
}

func (p *PCG) UniformRange(a, b float64) float64 {
	return a + (b-a)*p.Uniform()
}

// wrapperSource adapts a PseudoRandom to the rand/v2 Source interface.
type wrapperSource struct {
	g PseudoRandom
}

// Uint64 packs three 31-bit draws into 64 bits.
func (w wrapperSource) Uint64() uint64 {
	a := uint64(w.g.Generate())
	b := uint64(w.g.Generate())
	c := uint64(w.g.Generate())
	return a<<33 | b<<2 | c>>29
}

// Source lets library code such as rand.Rand.Shuffle run on g.
func Source(g PseudoRandom) rand.Source {
	return wrapperSource{g: g}
}

// Kind names a PseudoRandom implementation.
type Kind string

const (
	KindXor Kind = "xor"
	KindPCG Kind = "pcg"
)

// NewGenerator builds the generator named by kind. Unknown kinds fall back
// to Xor32.
func NewGenerator(kind Kind, seed uint32) PseudoRandom {
	if kind == KindPCG {
		return NewPCG(seed)
	}
	return NewXor32(seed)
}
