// Command pos keeps a ledger of trading positions.
//
// Without arguments it starts an interactive session on the positions table.
// Shell completion is installed with COMP_INSTALL=1 pos.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/etnz/positions/cmd"
	"github.com/google/subcommands"
)

func main() {
	// until the options are read, only warnings are worth printing.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	name := path.Base(os.Args[0])
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	flag.Parse()
	if flag.NArg() == 0 {
		// the interactive session is the default subcommand.
		flag.CommandLine.Parse(append(os.Args[1:], "repl"))
	}
	os.Exit(int(commander.Execute(context.Background())))
}
