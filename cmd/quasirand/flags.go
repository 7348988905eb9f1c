package main

import (
	"github.com/lox/quasirand/internal/config"
)

// configFlags are shared by every subcommand. Unset flags leave the config
// file (or default) value alone.
type configFlags struct {
	Config    string  `short:"c" help:"HCL config file (missing file means defaults)" type:"path"`
	Seed      *int    `short:"s" help:"Seed; values below 1 are treated as 1"`
	Generator *string `help:"Pseudo-random generator: xor or pcg"`
	Dimension *int    `help:"Low-discrepancy dimension used for indices"`
	Debug     bool    `help:"Enable debug logging"`
}

func (f *configFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if f.Config != "" {
		loaded, err := config.Load(f.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.Seed != nil {
		cfg.SetSeed(*f.Seed)
	}
	if f.Generator != nil {
		gen, err := config.ParseGenerator(*f.Generator)
		if err != nil {
			return nil, err
		}
		cfg.Generator = gen
	}
	if f.Dimension != nil {
		cfg.Dimension = *f.Dimension
	}
	return cfg, nil
}
