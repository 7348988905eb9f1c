// Package statistics provides numerically careful accumulators for sample
// streams and the occupancy summaries built from them.
package statistics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Summary describes how evenly a batch of samples filled a set of bins.
type Summary struct {
	Regime  string // Sampling regime label, e.g. "pseudo-random"
	Samples int    // Total samples tallied
	Bins    int    // Number of bins

	Mean     float64 // Mean bin occupancy
	Variance float64 // Population variance of bin occupancy
	StdDev   float64

	MinCount  int // Least filled bin
	MaxCount  int // Most filled bin
	EmptyBins int // Bins that received no sample

	ChiSquare float64 // Pearson statistic against a uniform fill
	PValue    float64 // Upper tail probability of ChiSquare with Bins-1 dof
}

// Summarize builds a Summary from per-bin counts and the accumulator those
// counts were fed into. acc must hold exactly one sample per bin.
func Summarize(regime string, counts []int, acc Incremental) Summary {
	s := Summary{
		Regime:   regime,
		Bins:     len(counts),
		Mean:     acc.Mean(),
		Variance: acc.Variance(),
		StdDev:   acc.StdDev(),
	}
	if len(counts) == 0 {
		return s
	}

	s.MinCount = counts[0]
	s.MaxCount = counts[0]
	for _, c := range counts {
		s.Samples += c
		if c < s.MinCount {
			s.MinCount = c
		}
		if c > s.MaxCount {
			s.MaxCount = c
		}
		if c == 0 {
			s.EmptyBins++
		}
	}

	s.ChiSquare, s.PValue = chiSquareUniform(counts, s.Samples)
	return s
}

// chiSquareUniform tests counts against an even spread of total samples.
func chiSquareUniform(counts []int, total int) (float64, float64) {
	if len(counts) < 2 || total == 0 {
		return 0, 1
	}

	expected := float64(total) / float64(len(counts))
	var chi Kahan
	for _, c := range counts {
		d := float64(c) - expected
		chi.Add(d * d / expected)
	}

	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return chi.Value(), dist.Survival(chi.Value())
}

// StdError returns the standard error of the mean occupancy.
func (s Summary) StdError() float64 {
	if s.Bins == 0 {
		return 0
	}
	return s.StdDev / math.Sqrt(float64(s.Bins))
}

// DispersionIndex returns Variance/Mean. Independent uniform draws give a
// value near 1; an evenly stratified sequence gives a value near 0.
func (s Summary) DispersionIndex() float64 {
	if s.Mean == 0 {
		return math.NaN()
	}
	return s.Variance / s.Mean
}

// Validate checks that the summary is internally consistent.
func (s Summary) Validate() error {
	if s.Bins <= 0 {
		return fmt.Errorf("invalid bin count: %d", s.Bins)
	}
	if s.MinCount > s.MaxCount {
		return fmt.Errorf("min count (%d) exceeds max count (%d)", s.MinCount, s.MaxCount)
	}
	if s.EmptyBins > s.Bins {
		return fmt.Errorf("empty bins (%d) exceeds bin count (%d)", s.EmptyBins, s.Bins)
	}

	implied := s.Mean * float64(s.Bins)
	if math.Abs(implied-float64(s.Samples)) > 1e-6*math.Max(1, float64(s.Samples)) {
		return fmt.Errorf("mean %.6f over %d bins implies %.3f samples, tallied %d",
			s.Mean, s.Bins, implied, s.Samples)
	}
	if math.IsNaN(s.Variance) || s.Variance < 0 {
		return fmt.Errorf("invalid variance: %v", s.Variance)
	}
	return nil
}
