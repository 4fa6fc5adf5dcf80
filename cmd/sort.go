package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
)

// sortCmd changes the sorting preferences stored with the positions.
type sortCmd struct {
	by           string
	dir          string
	closedBottom string
}

func (*sortCmd) Name() string     { return "sort" }
func (*sortCmd) Synopsis() string { return "change how positions are sorted" }
func (*sortCmd) Usage() string {
	return `pos sort -by id|value|price|income|change [-dir asc|desc] [-closed-bottom true|false]

  Changes the order of the positions table, for the session and the list command.
`
}

func (c *sortCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "change", "field to sort by: id, value, price, income or change")
	f.StringVar(&c.dir, "dir", "desc", "direction: asc or desc")
	f.StringVar(&c.closedBottom, "closed-bottom", "", "move closed positions to the bottom: true or false, unchanged when empty")
}

func (c *sortCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sortBy, err := positions.ParseSortBy(c.by + ":" + c.dir)
	if err != nil {
		return failure("parsing sorting", err)
	}
	var closedBottom *bool
	if c.closedBottom != "" {
		v, err := strconv.ParseBool(c.closedBottom)
		if err != nil {
			return failure("parsing -closed-bottom", err)
		}
		closedBottom = &v
	}

	return updateBook(func(b *positions.Book) (string, error) {
		b.SortBy = sortBy
		if closedBottom != nil {
			b.MoveClosedToBottom = *closedBottom
		}
		return fmt.Sprintf("Sorting positions by %s", b.SortBy.Label()), nil
	})
}
