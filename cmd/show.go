package cmd

import (
	"context"
	"flag"
	"strconv"

	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	page int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print a position and its orders" }
func (*showCmd) Usage() string {
	return `pos show [-page <n>] <id>

  Prints a position and a page of its orders.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.page, "page", 1, "page of orders to print")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return failure("parsing position id", err)
	}

	opts, err := loadOptions()
	if err != nil {
		return failure("loading options", err)
	}
	_, book, err := openBook(opts)
	if err != nil {
		return failure("loading positions", err)
	}
	p, err := book.Position(id)
	if err != nil {
		return failure("", err)
	}
	printMarkdown(renderer.RenderPosition(renderer.NewPosition(p, c.page, opts.OrdersPerPage)))
	return subcommands.ExitSuccess
}
