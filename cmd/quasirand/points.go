package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lox/quasirand/internal/config"
	"github.com/lox/quasirand/internal/fileutil"
	"github.com/lox/quasirand/internal/sampling"
)

// PointsCmd writes the 2D point set a visualiser would draw.
type PointsCmd struct {
	Common configFlags `embed:""`

	Mode   *string `short:"m" help:"Sampling regime: pseudo or quasi"`
	Count  *int    `short:"n" help:"Number of points (default 1000)"`
	Format string  `short:"f" default:"csv" enum:"csv,json" help:"Output format: csv or json"`
	Output string  `short:"o" help:"Write to this file atomically instead of stdout" type:"path"`
}

func (c *PointsCmd) Run() error {
	logger := setupLogger(os.Stderr, c.Common.Debug)

	cfg, err := c.Common.load()
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	pts := sampling.Points(cfg)
	logger.Debug("Generated points", "mode", cfg.Mode, "count", len(pts), "seed", cfg.Seed)

	write := func(w io.Writer) error {
		return writePoints(w, pts, c.Format)
	}
	if c.Output == "" {
		return write(os.Stdout)
	}

	if err := fileutil.WriteAtomic(c.Output, 0o644, write); err != nil {
		return fmt.Errorf("writing %s: %w", c.Output, err)
	}
	logger.Info("Wrote points", "file", c.Output, "count", len(pts), "format", c.Format)
	return nil
}

func (c *PointsCmd) apply(cfg *config.Config) error {
	if c.Mode != nil {
		m, err := config.ParseMode(*c.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}
	if c.Count != nil {
		cfg.PointCount = *c.Count
	}
	return cfg.Validate()
}

func writePoints(w io.Writer, pts []sampling.Point, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(pts)
	case "csv", "":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"x", "y"}); err != nil {
			return err
		}
		for _, p := range pts {
			row := []string{
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("unknown format %q", format)
}
