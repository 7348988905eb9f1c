package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func accumulate(samples []float64) Incremental {
	var s Incremental
	for _, x := range samples {
		s.AddSample(x)
	}
	return s
}

func TestIncrementalEmpty(t *testing.T) {
	var s Incremental

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.M2())
	assert.True(t, math.IsNaN(s.Variance()))
	assert.True(t, math.IsNaN(s.SampleVariance()))
	assert.True(t, math.IsNaN(s.StdDev()))
}

func TestIncrementalSingleValue(t *testing.T) {
	s := accumulate([]float64{2.5})

	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 2.5, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
	assert.True(t, math.IsNaN(s.SampleVariance()))
}

func TestIncrementalKnownSet(t *testing.T) {
	s := accumulate([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 8, s.Count())
	assert.Equal(t, 5.0, s.Mean())
	assert.Equal(t, 4.0, s.Variance(), "population variance divides by n")
	assert.Equal(t, 2.0, s.StdDev())
	assert.InDelta(t, 32.0/7.0, s.SampleVariance(), 1e-12)
}

func TestIncrementalMatchesGonum(t *testing.T) {
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = math.Sin(float64(i)) * 100
	}
	s := accumulate(samples)

	mean, variance := stat.MeanVariance(samples, nil)
	assert.InDelta(t, mean, s.Mean(), 1e-9)
	assert.InDelta(t, variance, s.SampleVariance(), 1e-8)
	assert.InDelta(t, stat.PopVariance(samples, nil), s.Variance(), 1e-8)
}

func TestIncrementalLargeOffsetIsStable(t *testing.T) {
	// A naive sum-of-squares formula loses every significant digit here.
	const offset = 1e9
	s := accumulate([]float64{offset + 4, offset + 7, offset + 13, offset + 16})

	assert.InDelta(t, offset+10, s.Mean(), 1e-6)
	assert.InDelta(t, 22.5, s.Variance(), 1e-6)
}

func TestMergeConsistency(t *testing.T) {
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9, 11, -3, 0.5, 8}
	whole := accumulate(samples)

	for split := 0; split <= len(samples); split++ {
		left := accumulate(samples[:split])
		right := accumulate(samples[split:])

		merged := MergeChan(left, right)
		require.Equal(t, whole.Count(), merged.Count(), "split %d", split)
		require.InEpsilon(t, whole.Mean(), merged.Mean(), 1e-9, "split %d", split)
		require.InEpsilon(t, whole.Variance(), merged.Variance(), 1e-9, "split %d", split)

		legacy := MergeLegacy(left, right)
		require.Equal(t, whole.Count(), legacy.Count(), "split %d", split)
		require.InEpsilon(t, whole.Mean(), legacy.Mean(), 1e-9, "split %d", split)
		require.LessOrEqual(t, legacy.Variance(), whole.Variance()+1e-9, "split %d", split)
	}
}

func TestMergeLegacyDropsCrossTerm(t *testing.T) {
	left := accumulate([]float64{1, 1, 1, 1})
	right := accumulate([]float64{3, 3, 3, 3})

	// Each half has zero spread, so only the cross term carries variance.
	legacy := MergeLegacy(left, right)
	assert.Equal(t, 2.0, legacy.Mean())
	assert.Equal(t, 0.0, legacy.Variance())

	exact := MergeChan(left, right)
	assert.Equal(t, 2.0, exact.Mean())
	assert.Equal(t, 1.0, exact.Variance())
	assert.Equal(t, exact, left.Merge(right))
}

func TestMergeWithEmptyIsIdentity(t *testing.T) {
	s := accumulate([]float64{1, 2, 3})
	var empty Incremental

	for name, merge := range map[string]MergeFunc{"chan": MergeChan, "legacy": MergeLegacy} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, s, merge(s, empty))
			assert.Equal(t, s, merge(empty, s))
			assert.Equal(t, empty, merge(empty, empty))
		})
	}
}

func TestMergeIsCommutative(t *testing.T) {
	a := accumulate([]float64{1, 5, 9, 2})
	b := accumulate([]float64{100, 101, 99})

	ab := a.Merge(b)
	ba := b.Merge(a)
	assert.Equal(t, ab.Count(), ba.Count())
	assert.InDelta(t, ab.Mean(), ba.Mean(), 1e-12)
	assert.InDelta(t, ab.Variance(), ba.Variance(), 1e-9)
}

func TestMergeLeavesInputsUntouched(t *testing.T) {
	a := accumulate([]float64{1, 2})
	b := accumulate([]float64{3, 4})
	aCopy, bCopy := a, b

	_ = a.Merge(b)
	assert.Equal(t, aCopy, a)
	assert.Equal(t, bCopy, b)
}

func TestReduce(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64((i*7919)%113) + 0.25
	}
	whole := accumulate(samples)

	for _, shards := range []int{1, 2, 3, 7, 16} {
		parts := make([]Incremental, shards)
		for i, x := range samples {
			parts[i%shards].AddSample(x)
		}

		got := Reduce(parts, MergeChan)
		assert.Equal(t, whole.Count(), got.Count(), "shards=%d", shards)
		assert.InEpsilon(t, whole.Mean(), got.Mean(), 1e-9, "shards=%d", shards)
		assert.InEpsilon(t, whole.Variance(), got.Variance(), 1e-9, "shards=%d", shards)
	}

	assert.Equal(t, Incremental{}, Reduce(nil, nil))
	assert.Equal(t, whole, Reduce([]Incremental{whole}, nil))
}
