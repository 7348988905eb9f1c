// Package compare runs the pseudo-random and quasi-random regimes side by
// side and summarises how evenly each fills the bins.
package compare

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/quasirand/internal/config"
	"github.com/lox/quasirand/internal/sampling"
	"github.com/lox/quasirand/internal/statistics"
)

// Regime labels used in summaries.
const (
	RegimePseudoRandom = "pseudo-random"
	RegimeQuasiRandom  = "quasi-random"
)

// Report holds the outcome of one comparison.
type Report struct {
	Config  config.Config
	Pseudo  statistics.Summary
	Quasi   statistics.Summary
	Elapsed time.Duration
}

// QuasiMoreUniform reports whether the quasi-random regime produced strictly
// lower occupancy variance than the pseudo-random one.
func (r *Report) QuasiMoreUniform() bool {
	return r.Quasi.Variance < r.Pseudo.Variance
}

// VarianceRatio returns pseudo variance divided by quasi variance.
func (r *Report) VarianceRatio() float64 {
	return r.Pseudo.Variance / r.Quasi.Variance
}

// Runner executes comparisons for a fixed configuration.
type Runner struct {
	cfg    config.Config
	logger *log.Logger
	clock  quartz.Clock
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock sets the clock used to time runs.
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// New validates cfg and returns a Runner holding a copy of it.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Runner{
		cfg:    *cfg,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run generates both regimes with the same seed, sample count and bin count
// and returns their occupancy summaries.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := r.clock.Now()

	r.logger.Info("Starting comparison",
		"seed", r.cfg.Seed,
		"samples", r.cfg.SampleCount,
		"bins", r.cfg.IndexCount,
		"reduction", r.cfg.Reduction,
		"merge", r.cfg.Merge,
		"shards", r.cfg.Shards)

	pseudo, err := r.Analyze(ctx, config.ModePseudoRandom)
	if err != nil {
		return nil, fmt.Errorf("%s regime: %w", RegimePseudoRandom, err)
	}
	quasi, err := r.Analyze(ctx, config.ModeQuasiRandom)
	if err != nil {
		return nil, fmt.Errorf("%s regime: %w", RegimeQuasiRandom, err)
	}

	report := &Report{
		Config:  r.cfg,
		Pseudo:  pseudo,
		Quasi:   quasi,
		Elapsed: r.clock.Since(start),
	}

	r.logger.Info("Comparison complete",
		"pseudo_variance", pseudo.Variance,
		"quasi_variance", quasi.Variance,
		"quasi_more_uniform", report.QuasiMoreUniform(),
		"elapsed", report.Elapsed)
	return report, nil
}

// Analyze draws cfg.SampleCount indices for mode, tallies them into
// cfg.IndexCount bins and summarises the occupancy.
func (r *Runner) Analyze(ctx context.Context, mode config.Mode) (statistics.Summary, error) {
	regime := regimeLabel(mode)
	gen := sampling.NewIndexGenerator(mode, &r.cfg)

	indices := gen.Indices(r.cfg.SampleCount, r.cfg.IndexCount, r.cfg.Seed)
	if err := ctx.Err(); err != nil {
		return statistics.Summary{}, err
	}

	counts, err := sampling.Tally(indices, r.cfg.IndexCount)
	if err != nil {
		return statistics.Summary{}, fmt.Errorf("tally: %w", err)
	}

	acc, err := sampling.OccupancyParallel(ctx, counts, r.cfg.Shards, r.cfg.Merge.Func())
	if err != nil {
		return statistics.Summary{}, fmt.Errorf("occupancy: %w", err)
	}

	summary := statistics.Summarize(regime, counts, acc)
	r.logger.Debug("Regime analysed",
		"regime", regime,
		"mean", summary.Mean,
		"variance", summary.Variance,
		"empty_bins", summary.EmptyBins,
		"chi_square", summary.ChiSquare)

	if err := summary.Validate(); err != nil {
		return statistics.Summary{}, fmt.Errorf("summary validation failed: %w", err)
	}
	return summary, nil
}

func regimeLabel(mode config.Mode) string {
	if mode == config.ModeQuasiRandom {
		return RegimeQuasiRandom
	}
	return RegimePseudoRandom
}
