package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
)

// unorderCmd removes an order from a position.
type unorderCmd struct {
	position int
	order    int
}

func (*unorderCmd) Name() string     { return "unorder" }
func (*unorderCmd) Synopsis() string { return "remove an order from a position" }
func (*unorderCmd) Usage() string {
	return `pos unorder -position <id> -order <id>

  Removes an order and recomputes the position. The first order cannot be removed.
`
}

func (c *unorderCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.position, "position", -1, "id of the position")
	f.IntVar(&c.order, "order", -1, "id of the order")
}

func (c *unorderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.position < 0 || c.order < 0 {
		fmt.Println("both -position and -order ids are required")
		f.Usage()
		return subcommands.ExitUsageError
	}
	return updateBook(func(b *positions.Book) (string, error) {
		p, err := b.Position(c.position)
		if err != nil {
			return "", err
		}
		edited := p.Clone()
		if err := edited.RemoveOrder(c.order); err != nil {
			return "", err
		}
		if err := b.Replace(edited); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed order %d from position %d", c.order, edited.ID), nil
	})
}
