// Command simcore is a thin driver around the simulation core: it loads a
// table/match configuration, wires a small set of in-process bots as the
// decide callable, runs a deterministic match end to end, and prints a
// summary. It stands in locally for whatever sandboxed bot transport and
// persistence layers a hosting platform supplies.
package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build.
var version = "dev"

// CLI is the root command tree.
type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Match   MatchCmd         `cmd:"" help:"Run one deterministic match and print a summary."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("simcore"),
		kong.Description("Deterministic multi-seat Texas Hold'em simulation core"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
