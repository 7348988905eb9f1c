// Package config holds the host-owned settings for a sampling comparison and
// loads them from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/quasirand/internal/randutil"
	"github.com/lox/quasirand/internal/statistics"
)

// Mode selects the sampling regime.
type Mode string

const (
	ModePseudoRandom Mode = "pseudo"
	ModeQuasiRandom  Mode = "quasi"
)

// Reduction selects how the pseudo-random regime turns a draw into a bin.
type Reduction string

const (
	// ReductionModulo uses Generate() % bins. It carries modulo bias whenever
	// bins does not divide 2^31, and is the historical behaviour.
	ReductionModulo Reduction = "modulo"
	// ReductionScaled scales Uniform() into the bin range and clamps, the same
	// mapping the quasi-random regime uses.
	ReductionScaled Reduction = "scaled"
)

// MergeStrategy selects how partial occupancy statistics are combined.
type MergeStrategy string

const (
	MergeChan   MergeStrategy = "chan"
	MergeLegacy MergeStrategy = "legacy"
)

// Func returns the merge function for the strategy.
func (m MergeStrategy) Func() statistics.MergeFunc {
	if m == MergeLegacy {
		return statistics.MergeLegacy
	}
	return statistics.MergeChan
}

// Defaults used when neither the file nor the command line sets a value.
const (
	DefaultSeed        = 1
	DefaultSampleCount = 100_000
	DefaultIndexCount  = 10_000
	DefaultPointCount  = 1000
	DefaultShards      = 1
	DefaultDimension   = 2
)

// Config is the full set of knobs for a comparison run. It is passed by
// reference into every query; there is no package-level state.
type Config struct {
	Seed        uint32 // Always >= 1
	SampleCount int    // Draws per regime
	IndexCount  int    // Number of bins
	PointCount  int    // Points emitted for display
	Mode        Mode
	Reduction   Reduction
	Merge       MergeStrategy
	Generator   randutil.Kind
	Shards      int // Parallel accumulators for occupancy statistics
	Dimension   int // Low-discrepancy dimension used for bin indices
}

// fileConfig mirrors the HCL file layout. Every attribute is optional.
type fileConfig struct {
	Seed        *int   `hcl:"seed,optional"`
	SampleCount int    `hcl:"sample_count,optional"`
	IndexCount  int    `hcl:"index_count,optional"`
	PointCount  int    `hcl:"point_count,optional"`
	Mode        string `hcl:"mode,optional"`
	Reduction   string `hcl:"reduction,optional"`
	Merge       string `hcl:"merge,optional"`
	Generator   string `hcl:"generator,optional"`
	Shards      int    `hcl:"shards,optional"`
	Dimension   *int   `hcl:"dimension,optional"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Seed:        DefaultSeed,
		SampleCount: DefaultSampleCount,
		IndexCount:  DefaultIndexCount,
		PointCount:  DefaultPointCount,
		Mode:        ModePseudoRandom,
		Reduction:   ReductionModulo,
		Merge:       MergeChan,
		Generator:   randutil.KindXor,
		Shards:      DefaultShards,
		Dimension:   DefaultDimension,
	}
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes HCL source held in memory. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(body, nil, &fc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if fc.Seed != nil {
		if *fc.Seed < 0 {
			return nil, fmt.Errorf("seed must not be negative: %d", *fc.Seed)
		}
		cfg.SetSeed(*fc.Seed)
	}
	if fc.SampleCount != 0 {
		cfg.SampleCount = fc.SampleCount
	}
	if fc.IndexCount != 0 {
		cfg.IndexCount = fc.IndexCount
	}
	if fc.PointCount != 0 {
		cfg.PointCount = fc.PointCount
	}
	if fc.Shards != 0 {
		cfg.Shards = fc.Shards
	}
	if fc.Dimension != nil {
		cfg.Dimension = *fc.Dimension
	}

	var err error
	if fc.Mode != "" {
		if cfg.Mode, err = ParseMode(fc.Mode); err != nil {
			return nil, err
		}
	}
	if fc.Reduction != "" {
		if cfg.Reduction, err = ParseReduction(fc.Reduction); err != nil {
			return nil, err
		}
	}
	if fc.Merge != "" {
		if cfg.Merge, err = ParseMerge(fc.Merge); err != nil {
			return nil, err
		}
	}
	if fc.Generator != "" {
		if cfg.Generator, err = ParseGenerator(fc.Generator); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetSeed stores seed after ClampSeed.
func (c *Config) SetSeed(seed int) {
	c.Seed = ClampSeed(seed)
}

// ClampSeed maps seed into the generators' seed space. Values below 1 become
// 1; larger values keep their low 32 bits, and a zero result becomes 1.
func ClampSeed(seed int) uint32 {
	if seed < 1 {
		return 1
	}
	return max(uint32(seed), 1)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Seed == 0 {
		return errors.New("seed must be at least 1")
	}
	if c.SampleCount < 0 {
		return fmt.Errorf("sample count must not be negative: %d", c.SampleCount)
	}
	if c.IndexCount < 1 {
		return fmt.Errorf("index count must be positive: %d", c.IndexCount)
	}
	if c.PointCount < 0 {
		return fmt.Errorf("point count must not be negative: %d", c.PointCount)
	}
	if c.Shards < 1 {
		return fmt.Errorf("shards must be positive: %d", c.Shards)
	}
	if c.Dimension < 0 {
		return fmt.Errorf("dimension must not be negative: %d", c.Dimension)
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := ParseReduction(string(c.Reduction)); err != nil {
		return err
	}
	if _, err := ParseMerge(string(c.Merge)); err != nil {
		return err
	}
	if _, err := ParseGenerator(string(c.Generator)); err != nil {
		return err
	}
	return nil
}

// ParseMode accepts "pseudo" or "quasi" and a few long-form aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pseudo", "pseudo-random", "random":
		return ModePseudoRandom, nil
	case "quasi", "quasi-random", "halton":
		return ModeQuasiRandom, nil
	}
	return "", fmt.Errorf("unknown mode %q (want pseudo or quasi)", s)
}

// ParseReduction accepts "modulo" or "scaled".
func ParseReduction(s string) (Reduction, error) {
	switch r := Reduction(strings.ToLower(strings.TrimSpace(s))); r {
	case ReductionModulo, ReductionScaled:
		return r, nil
	}
	return "", fmt.Errorf("unknown reduction %q (want modulo or scaled)", s)
}

// ParseMerge accepts "chan" or "legacy".
func ParseMerge(s string) (MergeStrategy, error) {
	switch m := MergeStrategy(strings.ToLower(strings.TrimSpace(s))); m {
	case MergeChan, MergeLegacy:
		return m, nil
	}
	return "", fmt.Errorf("unknown merge strategy %q (want chan or legacy)", s)
}

// ParseGenerator accepts "xor" or "pcg".
func ParseGenerator(s string) (randutil.Kind, error) {
	switch k := randutil.Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case randutil.KindXor, randutil.KindPCG:
		return k, nil
	}
	return "", fmt.Errorf("unknown generator %q (want xor or pcg)", s)
}
