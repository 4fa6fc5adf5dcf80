package repl

import (
	"fmt"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
)

// globalMode shows the positions table.
type globalMode struct {
	s     *Session
	pager positions.Pager
}

func (m *globalMode) name() string { return "global" }

// list returns the positions shown in the table, in display order.
func (m *globalMode) list() []*positions.Position {
	if m.s.opts.HideClosed {
		return m.s.book.Active()
	}
	return m.s.book.Sorted()
}

func (m *globalMode) view() string {
	return renderer.RenderPositions(renderer.NewPositions(m.s.book, m.list(), m.pager.Page(), m.pager.PerPage))
}

func (m *globalMode) handle(cmd, arg string) (result, error) {
	switch cmd {
	case "q":
		return quit, nil
	case "n":
		return redraw, m.pager.Next(len(m.list()))
	case "p":
		return redraw, m.pager.Previous()
	case "a":
		return redraw, m.addPosition()
	case "d":
		return redraw, m.deletePosition(arg)
	case "e":
		return m.editPosition(arg)
	case "cs":
		return redraw, m.changeSorting()
	case "h":
		return redraw, m.s.help("global")
	default:
		return unknown, nil
	}
}

func (m *globalMode) addPosition() error {
	c := m.s.console
	name, err := c.Ask("Enter position name: ")
	if err != nil {
		return err
	}
	typ, err := c.Ask("Enter position type (long/short): ")
	if err != nil {
		return err
	}
	action, err := positions.ParseAction(typ)
	if err != nil {
		return err
	}
	amount, err := m.s.askQuantity("Enter position amount: ")
	if err != nil {
		return err
	}
	value, err := m.s.askMoney("Enter position value: ")
	if err != nil {
		return err
	}
	if _, err := m.s.book.Open(name, action, amount, value); err != nil {
		return err
	}
	return m.s.save()
}

func (m *globalMode) deletePosition(arg string) error {
	id, err := m.s.id(arg, "Enter position id: ")
	if err != nil {
		return err
	}
	p, err := m.s.book.Position(id)
	if err != nil {
		return err
	}
	m.s.console.Print(m.s.Render(renderer.RenderPositionSummary(renderer.NewPositionRow(p))))
	ok, err := m.s.console.Confirm(fmt.Sprintf("Are you sure want to delete position %d?", id), false)
	if err != nil || !ok {
		return err
	}
	if err := m.s.book.Delete(id); err != nil {
		return err
	}
	m.pager.Clamp(len(m.list()))
	return m.s.save()
}

func (m *globalMode) editPosition(arg string) (result, error) {
	id, err := m.s.id(arg, "Enter position id: ")
	if err != nil {
		return redraw, err
	}
	p, err := m.s.book.Position(id)
	if err != nil {
		return redraw, err
	}
	m.s.edit = newPositionMode(m.s, p)
	return enter, nil
}

func (m *globalMode) changeSorting() error {
	c := m.s.console
	b := m.s.book
	closed := "disabled"
	if b.MoveClosedToBottom {
		closed = "enabled"
	}

	c.Clear()
	c.Println("Current sorting method: " + b.SortBy.Label())
	c.Println("")
	c.Println("Available sorting methods:")
	for _, f := range []positions.SortField{positions.ByID, positions.ByAvgValue, positions.ByAvgPrice, positions.ByIncome, positions.ByLastChange} {
		c.Println(fmt.Sprintf("%d. By %s", int(f)+1, f.Label()))
	}
	c.Println("")
	c.Println(fmt.Sprintf("cb - Move closed positions to bottom (%s)", closed))
	c.Println("q - Exit")

	choice, err := c.Ask("Choose the number of preferred sorting: ")
	if err != nil {
		return err
	}
	switch choice {
	case "q":
		return nil
	case "cb":
		b.MoveClosedToBottom = !b.MoveClosedToBottom
		return m.s.save()
	}

	field, err := positions.ParseSortField(choice)
	if err != nil {
		return err
	}
	answer, err := c.Ask("Choose direction (asc, desc): ")
	if err != nil {
		return err
	}
	dir, err := positions.ParseSortDirection(answer)
	if err != nil {
		return err
	}
	b.SortBy = positions.SortBy{Field: field, Direction: dir}
	return m.s.save()
}
