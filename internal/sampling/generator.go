package sampling

import (
	"fmt"

	"github.com/lox/quasirand/internal/config"
	"github.com/lox/quasirand/internal/halton"
	"github.com/lox/quasirand/internal/randutil"
)

// IndexGenerator produces sampleCount bin indices in [0, indexCount) from a
// seed. The same arguments always produce the same indices.
type IndexGenerator interface {
	Indices(sampleCount, indexCount int, seed uint32) []int
}

// LowDiscrepancySource supplies quasi-random samples. Sample must return a
// value in [0, 1) that depends only on the source's seed, dimension and index.
type LowDiscrepancySource interface {
	Sample(dimension, index int) float64
}

// SourceFactory builds a freshly seeded LowDiscrepancySource.
type SourceFactory func(seed uint32) LowDiscrepancySource

// HaltonFactory returns a factory for scrambled Halton samplers covering the
// given number of dimensions.
func HaltonFactory(dimensions int) SourceFactory {
	return func(seed uint32) LowDiscrepancySource {
		return halton.New(seed, dimensions)
	}
}

// PseudoRandomIndices draws bin indices from a seeded PseudoRandom.
type PseudoRandomIndices struct {
	kind      randutil.Kind
	reduction config.Reduction
}

// NewPseudoRandomIndices returns a generator using the given PRNG kind and
// reduction strategy.
func NewPseudoRandomIndices(kind randutil.Kind, reduction config.Reduction) *PseudoRandomIndices {
	return &PseudoRandomIndices{kind: kind, reduction: reduction}
}

// Reduction reports which draw-to-bin mapping is active.
func (g *PseudoRandomIndices) Reduction() config.Reduction {
	return g.reduction
}

// Indices seeds a fresh generator with max(1, seed) and draws sampleCount
// indices. Under ReductionModulo each index is Generate() % indexCount, which
// favours low bins slightly unless indexCount divides 2^31.
func (g *PseudoRandomIndices) Indices(sampleCount, indexCount int, seed uint32) []int {
	checkIndexCount(indexCount)
	rng := randutil.NewGenerator(g.kind, max(seed, 1))

	r := make([]int, max(sampleCount, 0))
	switch g.reduction {
	case config.ReductionScaled:
		for i := range r {
			r[i] = FloatToIndex(rng.Uniform(), indexCount)
		}
	default:
		bins := uint32(indexCount)
		for i := range r {
			r[i] = int(rng.Generate() % bins)
		}
	}
	return r
}

// QuasiRandomIndices maps one dimension of a low-discrepancy sequence onto
// bins with FloatToIndex.
type QuasiRandomIndices struct {
	dimension int
	factory   SourceFactory
}

// NewQuasiRandomIndices returns a generator reading the given dimension from
// sources built by factory.
func NewQuasiRandomIndices(dimension int, factory SourceFactory) *QuasiRandomIndices {
	return &QuasiRandomIndices{dimension: dimension, factory: factory}
}

// Indices builds a source seeded with max(1, seed) and maps samples
// 0..sampleCount-1 of the configured dimension to bins.
func (g *QuasiRandomIndices) Indices(sampleCount, indexCount int, seed uint32) []int {
	checkIndexCount(indexCount)
	src := g.factory(max(seed, 1))

	r := make([]int, max(sampleCount, 0))
	for i := range r {
		r[i] = FloatToIndex(src.Sample(g.dimension, i), indexCount)
	}
	return r
}

// NewIndexGenerator returns the generator for the given regime, configured
// from cfg.
func NewIndexGenerator(mode config.Mode, cfg *config.Config) IndexGenerator {
	if mode == config.ModeQuasiRandom {
		return NewQuasiRandomIndices(cfg.Dimension, HaltonFactory(haltonDimensions(cfg)))
	}
	return NewPseudoRandomIndices(cfg.Generator, cfg.Reduction)
}

// haltonDimensions sizes the sampler to cover the index dimension and the
// one after it, which Points uses for Y.
func haltonDimensions(cfg *config.Config) int {
	return max(cfg.Dimension+2, halton.DefaultDimensions)
}

func checkIndexCount(indexCount int) {
	if indexCount <= 0 {
		panic(fmt.Sprintf("sampling: index count must be positive, got %d", indexCount))
	}
}
