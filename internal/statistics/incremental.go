package statistics

import "math"

// Incremental tracks count, mean and the sum of squared deviations (M2) of a
// stream of samples using Welford's online update, with both running values
// held in compensated sums.
//
// Variance is the population variance M2/n. The zero value is an empty
// accumulator and the identity for both merge strategies.
type Incremental struct {
	n    int
	mean Kahan
	m2   Kahan
}

// AddSample folds x into the accumulator.
func (s *Incremental) AddSample(x float64) {
	s.n++
	delta := x - s.mean.Value()
	s.mean.Add(delta / float64(s.n))
	delta2 := x - s.mean.Value()
	s.m2.Add(delta * delta2)
}

// Count returns the number of samples seen.
func (s Incremental) Count() int {
	return s.n
}

// Mean returns the running mean, 0 for an empty accumulator.
func (s Incremental) Mean() float64 {
	return s.mean.Value()
}

// M2 returns the running sum of squared deviations from the mean.
func (s Incremental) M2() float64 {
	return s.m2.Value()
}

// Variance returns the population variance M2/n, or NaN when empty.
func (s Incremental) Variance() float64 {
	if s.n == 0 {
		return math.NaN()
	}
	return s.m2.Value() / float64(s.n)
}

// SampleVariance returns M2/(n-1), or NaN with fewer than two samples.
func (s Incremental) SampleVariance() float64 {
	if s.n < 2 {
		return math.NaN()
	}
	return s.m2.Value() / float64(s.n-1)
}

// StdDev returns the population standard deviation.
func (s Incremental) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Merge combines s and other with the Chan et al. parallel formula.
func (s Incremental) Merge(other Incremental) Incremental {
	return MergeChan(s, other)
}

// MergeFunc combines two partial accumulations into a new one.
type MergeFunc func(a, b Incremental) Incremental

// MergeChan combines a and b exactly (up to rounding):
//
//	mean = (n*meanA + m*meanB) / (n+m)
//	M2   = M2a + M2b + delta^2 * n*m/(n+m)
//
// where delta = meanB - meanA.
func MergeChan(a, b Incremental) Incremental {
	if a.n == 0 {
		return b
	}
	if b.n == 0 {
		return a
	}

	n, m := float64(a.n), float64(b.n)
	total := n + m
	delta := b.mean.Value() - a.mean.Value()

	var r Incremental
	r.n = a.n + b.n
	r.mean.Assign(n/total*a.mean.Value() + m/total*b.mean.Value())
	r.m2.Assign(a.m2.Value())
	r.m2.Add(b.m2.Value())
	r.m2.Add(delta * delta * n * m / total)
	return r
}

// MergeLegacy combines a and b with the weighted-mean formula and a plain sum
// of M2 terms. It omits the delta^2*n*m/(n+m) cross term, so the merged
// variance is low whenever the two partial means differ. It is kept so that
// results from the older aggregation can be reproduced.
func MergeLegacy(a, b Incremental) Incremental {
	if a.n == 0 {
		return b
	}
	if b.n == 0 {
		return a
	}

	n, m := float64(a.n), float64(b.n)
	total := n + m
	wa := n / total
	wb := m / total

	var r Incremental
	r.n = a.n + b.n
	r.mean.Assign(wa*a.mean.Value() + wb*b.mean.Value())
	r.m2.Assign(a.m2.Value() + b.m2.Value())
	return r
}

// Reduce merges parts pairwise, neighbours first, until one accumulator is
// left. The pairing order depends only on len(parts), so results are
// reproducible. A nil merge uses MergeChan.
func Reduce(parts []Incremental, merge MergeFunc) Incremental {
	if merge == nil {
		merge = MergeChan
	}
	if len(parts) == 0 {
		return Incremental{}
	}

	level := make([]Incremental, len(parts))
	copy(level, parts)
	for len(level) > 1 {
		next := make([]Incremental, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, merge(level[i], level[i+1]))
		}
		level = next
	}
	return level[0]
}
