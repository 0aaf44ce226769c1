package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" help:"Play a game against three AI opponents"`
	Sim     SimCmd           `cmd:"" help:"Simulate AI-only games and report the outcomes"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mahjong"),
		kong.Description("Four-player mahjong at the terminal"),
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
