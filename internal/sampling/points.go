package sampling

import (
	"github.com/lox/quasirand/internal/config"
	"github.com/lox/quasirand/internal/randutil"
)

// Point is a sample in the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Points returns cfg.PointCount points for cfg.Mode.
//
// The pseudo-random regime draws X then Y from one generator seeded with
// cfg.Seed. The quasi-random regime reads index i from dimensions
// cfg.Dimension and cfg.Dimension+1 of a Halton sampler seeded the same way.
func Points(cfg *config.Config) []Point {
	pts := make([]Point, max(cfg.PointCount, 0))

	if cfg.Mode == config.ModeQuasiRandom {
		src := HaltonFactory(haltonDimensions(cfg))(cfg.Seed)
		for i := range pts {
			pts[i] = Point{
				X: src.Sample(cfg.Dimension, i),
				Y: src.Sample(cfg.Dimension+1, i),
			}
		}
		return pts
	}

	rng := randutil.NewGenerator(cfg.Generator, cfg.Seed)
	for i := range pts {
		x := rng.Uniform()
		y := rng.Uniform()
		pts[i] = Point{X: x, Y: y}
	}
	return pts
}
