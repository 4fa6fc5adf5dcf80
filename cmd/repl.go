package cmd

import (
	"context"
	"flag"
	"os"

	"github.com/etnz/positions/console"
	"github.com/etnz/positions/repl"
	"github.com/google/subcommands"
)

type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "start the interactive session (default)" }
func (*replCmd) Usage() string {
	return `pos [repl]

  Shows the positions table and reads commands from the standard input.
  Type h in the session for the list of commands.
`
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {}

func (c *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := loadOptions()
	if err != nil {
		return failure("loading options", err)
	}
	store, book, err := openBook(opts)
	if err != nil {
		return failure("loading positions", err)
	}

	session := repl.New(book, store, console.New(os.Stdin, os.Stdout), repl.Options{
		PositionsPerPage: opts.PositionsPerPage,
		OrdersPerPage:    opts.OrdersPerPage,
		HideClosed:       opts.HideClosedPositions,
	})
	if err := session.Run(ctx); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
