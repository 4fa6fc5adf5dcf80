package renderer

import "github.com/etnz/positions"

// Position is the view of a position in edit mode: its figures and one page
// of its orders.
type Position struct {
	Summary PositionRow
	Orders  []OrderRow
	Page    int
	Pages   int
}

// OrderRow is a single line of the orders table.
type OrderRow struct {
	ID     int
	Action positions.Action
	Amount positions.Quantity
	Value  positions.Money
	Price  positions.Money
	Income positions.Money
	// Closing is set for orders opposite to the position, the only ones
	// with an income.
	Closing bool
}

// NewOrderRow builds the row of an order of a position with the given action.
func NewOrderRow(o positions.Order, positionAction positions.Action) *OrderRow {
	return &OrderRow{
		ID:      o.ID,
		Action:  o.Action,
		Amount:  o.Amount,
		Value:   o.Value,
		Price:   o.Price(),
		Income:  o.Income(),
		Closing: o.Action != positionAction,
	}
}

// NewPosition builds the view of a position with a page of its orders.
func NewPosition(p *positions.Position, page, perPage int) *Position {
	orders := p.Orders()
	v := &Position{
		Summary: *NewPositionRow(p),
		Orders:  make([]OrderRow, 0, perPage),
		Page:    page,
		Pages:   positions.PagesCount(len(orders), perPage),
	}
	for _, o := range positions.Paginate(orders, page, perPage) {
		v.Orders = append(v.Orders, *NewOrderRow(o, p.Action))
	}
	return v
}
