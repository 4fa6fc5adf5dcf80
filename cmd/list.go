package cmd

import (
	"context"
	"flag"

	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	closed bool
	page   int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print the positions table" }
func (*listCmd) Usage() string {
	return `pos list [-closed] [-page <n>]

  Prints the positions table, sorted by the storage preferences.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.closed, "closed", false, "list closed positions even when hide_closed_positions is set")
	f.IntVar(&c.page, "page", 1, "page to print")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := loadOptions()
	if err != nil {
		return failure("loading options", err)
	}
	_, book, err := openBook(opts)
	if err != nil {
		return failure("loading positions", err)
	}

	list := book.Sorted()
	if opts.HideClosedPositions && !c.closed {
		list = book.Active()
	}
	printMarkdown(renderer.RenderPositions(renderer.NewPositions(book, list, c.page, opts.PositionsPerPage)))
	return subcommands.ExitSuccess
}
