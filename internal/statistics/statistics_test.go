package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summarizeCounts(regime string, counts []int) Summary {
	var acc Incremental
	for _, c := range counts {
		acc.AddSample(float64(c))
	}
	return Summarize(regime, counts, acc)
}

func TestSummarizeUniformFill(t *testing.T) {
	s := summarizeCounts("even", []int{10, 10, 10, 10})

	assert.Equal(t, "even", s.Regime)
	assert.Equal(t, 40, s.Samples)
	assert.Equal(t, 4, s.Bins)
	assert.Equal(t, 10.0, s.Mean)
	assert.Equal(t, 0.0, s.Variance)
	assert.Equal(t, 10, s.MinCount)
	assert.Equal(t, 10, s.MaxCount)
	assert.Equal(t, 0, s.EmptyBins)
	assert.Equal(t, 0.0, s.ChiSquare)
	assert.InDelta(t, 1.0, s.PValue, 1e-12)
	assert.Equal(t, 0.0, s.DispersionIndex())
	require.NoError(t, s.Validate())
}

func TestSummarizeSkewedFill(t *testing.T) {
	s := summarizeCounts("skewed", []int{0, 20})

	assert.Equal(t, 20, s.Samples)
	assert.Equal(t, 10.0, s.Mean)
	assert.Equal(t, 100.0, s.Variance)
	assert.Equal(t, 10.0, s.StdDev)
	assert.Equal(t, 1, s.EmptyBins)
	assert.InDelta(t, 20.0, s.ChiSquare, 1e-12)
	assert.Less(t, s.PValue, 1e-4)
	assert.InDelta(t, 10.0/math.Sqrt(2), s.StdError(), 1e-12)
	require.NoError(t, s.Validate())
}

func TestSummaryChiSquareMatchesDispersion(t *testing.T) {
	counts := []int{3, 7, 12, 9, 4, 5, 10, 8, 6, 6}
	s := summarizeCounts("mixed", counts)

	// With the expectation equal to the mean, Pearson's statistic reduces to
	// bins * variance / mean.
	assert.InEpsilon(t, float64(s.Bins)*s.DispersionIndex(), s.ChiSquare, 1e-9)
	assert.Greater(t, s.PValue, 0.0)
	assert.LessOrEqual(t, s.PValue, 1.0)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("none", nil, Incremental{})

	assert.Equal(t, 0, s.Bins)
	assert.Equal(t, 0, s.Samples)
	assert.Error(t, s.Validate())
	assert.Equal(t, 0.0, s.StdError())
}

func TestSummaryValidate(t *testing.T) {
	good := summarizeCounts("ok", []int{1, 2, 3})
	require.NoError(t, good.Validate())

	tests := []struct {
		name   string
		mutate func(*Summary)
	}{
		{"zero bins", func(s *Summary) { s.Bins = 0 }},
		{"min above max", func(s *Summary) { s.MinCount = s.MaxCount + 1 }},
		{"too many empty bins", func(s *Summary) { s.EmptyBins = s.Bins + 1 }},
		{"sample mismatch", func(s *Summary) { s.Samples++ }},
		{"nan variance", func(s *Summary) { s.Variance = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := good
			tt.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}
