package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `help:"Enable debug logging"`

	Train    TrainCmd    `cmd:"" default:"withargs" help:"Run DCFR self-play and write the blueprint (the default)"`
	SolveCbv SolveCbvCmd `cmd:"" name:"solve-cbv" help:"Compute the counterfactual best-response value at an observed history"`
	Validate ValidateCmd `cmd:"" help:"Print the blueprint's preflop strategy for every hand bucket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("limitcfr"),
		kong.Description("Heads-up fixed-limit hold'em blueprint trainer and subgame solver"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(setupLogger(cli.Debug))
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
