package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a position" }
func (*deleteCmd) Usage() string {
	return `pos delete <id>

  Deletes a position and all its orders, without confirmation.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return failure("parsing position id", err)
	}
	return updateBook(func(b *positions.Book) (string, error) {
		if err := b.Delete(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted position %d", id), nil
	})
}
