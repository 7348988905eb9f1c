package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Compare CompareCmd       `cmd:"" help:"Compare bin occupancy of pseudo-random and quasi-random sampling"`
	Points  PointsCmd        `cmd:"" help:"Emit a 2D point set for an external visualiser"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("quasirand"),
		kong.Description("Compare pseudo-random and low-discrepancy sampling uniformity"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
