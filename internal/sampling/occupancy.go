package sampling

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lox/quasirand/internal/statistics"
)

// cancelCheckInterval is how many bins a worker accumulates between context
// checks.
const cancelCheckInterval = 4096

// Tally counts how many indices fell into each of indexCount bins.
func Tally(indices []int, indexCount int) ([]int, error) {
	if indexCount <= 0 {
		return nil, fmt.Errorf("index count must be positive, got %d", indexCount)
	}

	counts := make([]int, indexCount)
	for i, idx := range indices {
		if idx < 0 || idx >= indexCount {
			return nil, fmt.Errorf("index %d at position %d outside [0, %d)", idx, i, indexCount)
		}
		counts[idx]++
	}
	return counts, nil
}

// Occupancy feeds every bin count once into a fresh accumulator, in bin order.
func Occupancy(counts []int) statistics.Incremental {
	var acc statistics.Incremental
	for _, c := range counts {
		acc.AddSample(float64(c))
	}
	return acc
}

// OccupancyParallel splits counts into up to shards contiguous ranges,
// accumulates each range in its own goroutine and reduces the partial results
// with merge. Each worker owns its accumulator, so no locking is needed. A nil
// merge uses statistics.MergeChan.
func OccupancyParallel(ctx context.Context, counts []int, shards int, merge statistics.MergeFunc) (statistics.Incremental, error) {
	shards = min(max(shards, 1), max(len(counts), 1))
	if shards == 1 {
		return Occupancy(counts), ctx.Err()
	}

	parts := make([]statistics.Incremental, shards)
	per := len(counts) / shards
	remainder := len(counts) % shards

	g, ctx := errgroup.WithContext(ctx)
	start := 0
	for w := 0; w < shards; w++ {
		size := per
		if w < remainder {
			size++
		}
		chunk := counts[start : start+size]
		start += size

		g.Go(func() error {
			var acc statistics.Incremental
			for i, c := range chunk {
				if i%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				acc.AddSample(float64(c))
			}
			parts[w] = acc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return statistics.Incremental{}, err
	}
	return statistics.Reduce(parts, merge), nil
}
