package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
)

// orderCmd records an order against a position.
type orderCmd struct {
	position int
	action   string
	amount   string
	value    string
}

func (*orderCmd) Name() string     { return "order" }
func (*orderCmd) Synopsis() string { return "add an order to a position" }
func (*orderCmd) Usage() string {
	return `pos order -position <id> -action buy|sell -amount <amount> -value <value>

  Adds an order to a position. An amount of 0 closes all that remains.
`
}

func (c *orderCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.position, "position", -1, "id of the position")
	f.StringVar(&c.action, "action", "", "type of the order: buy or sell")
	f.StringVar(&c.amount, "amount", "0", "amount of the order, 0 to close the position")
	f.StringVar(&c.value, "value", "", "value of the order")
}

func (c *orderCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.position < 0 {
		fmt.Println("a -position id is required")
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
		p, err := b.Position(c.position)
		if err != nil {
			return "", err
		}
		edited := p.Clone()
		o := positions.NewOrder(edited.NextOrderID(), action, amount, value)
		if amount.IsZero() && action != edited.Action {
			o = edited.CloseOrder(value)
		}
		if err := edited.AddOrder(o); err != nil {
			return "", err
		}
		if err := b.Replace(edited); err != nil {
			return "", err
		}
		return fmt.Sprintf("Added order %d to position %d: %s %s for %s", o.ID, edited.ID, o.Action.OrderString(), o.Amount, o.Value), nil
	})
}
