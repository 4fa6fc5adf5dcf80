package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
)

// addCmd opens a new position.
type addCmd struct {
	name   string
	action string
	amount string
	value  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "open a new position" }
func (*addCmd) Usage() string {
	return `pos add -name <name> -action long|short -amount <amount> -value <value>

  Opens a position with its first order. The value is the total paid for the amount.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "name of the position, like a ticker")
	f.StringVar(&c.action, "action", "long", "type of the position: long or short")
	f.StringVar(&c.amount, "amount", "", "amount of the first order")
	f.StringVar(&c.value, "value", "", "value of the first order")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Println("a position -name is required")
		f.Usage()
		return subcommands.ExitUsageError
	}
	action, err := positions.ParseAction(c.action)
	if err != nil {
		return failure("parsing -action", err)
	}
	amount, err := positions.ParseQuantity(c.amount)
	if err != nil {
		return failure("parsing -amount", err)
	}

	return updateBook(func(b *positions.Book) (string, error) {
		value, err := positions.ParseMoney(c.value, b.Currency)
		if err != nil {
			return "", fmt.Errorf("failed to parse -value: %w", err)
		}
		p, err := b.Open(c.name, action, amount, value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Opened position %d %s %s", p.ID, p.Action, p.Name), nil
	})
}
