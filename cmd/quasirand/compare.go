package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/quasirand/internal/compare"
	"github.com/lox/quasirand/internal/config"
	"github.com/lox/quasirand/internal/statistics"
)

// CompareCmd runs both regimes and prints their occupancy statistics.
type CompareCmd struct {
	Common configFlags `embed:""`

	Samples   *int    `short:"n" help:"Samples drawn per regime (default 100000)"`
	Bins      *int    `short:"b" help:"Number of bins (default 10000)"`
	Reduction *string `help:"Pseudo-random draw-to-bin mapping: modulo or scaled"`
	Merge     *string `help:"Partial statistics merge: chan or legacy"`
	Shards    *int    `help:"Parallel accumulators for occupancy statistics"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	regimeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	passStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

func (c *CompareCmd) Run() error {
	logger := setupLogger(os.Stderr, c.Common.Debug)

	cfg, err := c.Common.load()
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	runner, err := compare.New(cfg, compare.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	renderReport(os.Stdout, report)
	return nil
}

// apply layers the compare-specific flags over cfg.
func (c *CompareCmd) apply(cfg *config.Config) error {
	if c.Samples != nil {
		cfg.SampleCount = *c.Samples
	}
	if c.Bins != nil {
		cfg.IndexCount = *c.Bins
	}
	if c.Shards != nil {
		cfg.Shards = *c.Shards
	}
	if c.Reduction != nil {
		r, err := config.ParseReduction(*c.Reduction)
		if err != nil {
			return err
		}
		cfg.Reduction = r
	}
	if c.Merge != nil {
		m, err := config.ParseMerge(*c.Merge)
		if err != nil {
			return err
		}
		cfg.Merge = m
	}
	return cfg.Validate()
}

func renderReport(out io.Writer, report *compare.Report) {
	cfg := report.Config
	fmt.Fprintf(out, "%s seed=%d samples=%d bins=%d reduction=%s merge=%s shards=%d\n\n",
		headerStyle.Render("occupancy"),
		cfg.Seed, cfg.SampleCount, cfg.IndexCount, cfg.Reduction, cfg.Merge, cfg.Shards)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("regime"),
		headerStyle.Render("avg"),
		headerStyle.Render("variance"),
		headerStyle.Render("min"),
		headerStyle.Render("max"),
		headerStyle.Render("empty"),
		headerStyle.Render("chi2 p"))
	for _, s := range []statistics.Summary{report.Pseudo, report.Quasi} {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			regimeStyle.Render(s.Regime),
			valueStyle.Render(fmt.Sprintf("%.4f", s.Mean)),
			valueStyle.Render(fmt.Sprintf("%.4f", s.Variance)),
			valueStyle.Render(fmt.Sprintf("%d", s.MinCount)),
			valueStyle.Render(fmt.Sprintf("%d", s.MaxCount)),
			valueStyle.Render(fmt.Sprintf("%d", s.EmptyBins)),
			valueStyle.Render(fmt.Sprintf("%.4g", s.PValue)))
	}
	w.Flush()

	fmt.Fprintln(out)
	if report.QuasiMoreUniform() {
		fmt.Fprintf(out, "%s quasi-random variance is %.1fx lower\n",
			passStyle.Render("more uniform:"), report.VarianceRatio())
	} else {
		fmt.Fprintf(out, "%s quasi-random variance is not lower\n",
			failStyle.Render("no improvement:"))
	}
	fmt.Fprintf(out, "elapsed %s\n", report.Elapsed.Round(time.Millisecond))
}
