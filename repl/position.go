package repl

import (
	"fmt"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
)

// positionMode shows a position and its orders.
type positionMode struct {
	s     *Session
	p     *positions.Position
	pager positions.Pager
}

func newPositionMode(s *Session, p *positions.Position) *positionMode {
	return &positionMode{s: s, p: p, pager: positions.Pager{PerPage: s.opts.OrdersPerPage}}
}

func (m *positionMode) name() string { return "position" }

func (m *positionMode) view() string {
	return renderer.RenderPosition(renderer.NewPosition(m.p, m.pager.Page(), m.pager.PerPage))
}

func (m *positionMode) handle(cmd, arg string) (result, error) {
	switch cmd {
	case "q":
		return leave, nil
	case "a":
		return redraw, m.addOrder()
	case "d":
		return redraw, m.deleteOrder(arg)
	case "h":
		return redraw, m.s.help("position")
	case "n":
		return redraw, m.pager.Next(len(m.p.Orders()))
	case "p":
		return redraw, m.pager.Previous()
	default:
		return unknown, nil
	}
}

// commit stores the edited copy of the position in the book and saves it.
func (m *positionMode) commit(edited *positions.Position) error {
	if err := m.s.book.Replace(edited); err != nil {
		return err
	}
	m.p = edited
	return m.s.save()
}

func (m *positionMode) addOrder() error {
	c := m.s.console
	typ, err := c.Ask("Enter order type (buy/sell): ")
	if err != nil {
		return err
	}
	action, err := positions.ParseAction(typ)
	if err != nil {
		return err
	}
	amount, err := m.s.askQuantity("Enter order amount (0 closes the whole position): ")
	if err != nil {
		return err
	}
	if amount.IsZero() && action != m.p.Action {
		amount = m.p.Amount()
	}
	value, err := m.s.askMoney("Enter order value: ")
	if err != nil {
		return err
	}

	edited := m.p.Clone()
	if err := edited.AddOrder(positions.NewOrder(edited.NextOrderID(), action, amount, value)); err != nil {
		return err
	}
	return m.commit(edited)
}

func (m *positionMode) deleteOrder(arg string) error {
	id, err := m.s.id(arg, "Enter order id: ")
	if err != nil {
		return err
	}
	o, err := m.p.Order(id)
	if err != nil {
		return err
	}
	m.s.console.Print(m.s.Render(renderer.RenderOrder(renderer.NewOrderRow(o, m.p.Action))))
	ok, err := m.s.console.Confirm(fmt.Sprintf("Are you sure want to delete order %d?", id), true)
	if err != nil || !ok {
		return err
	}

	edited := m.p.Clone()
	if err := edited.RemoveOrder(id); err != nil {
		return err
	}
	if err := m.commit(edited); err != nil {
		return err
	}
	m.pager.Clamp(len(m.p.Orders()))
	return nil
}
