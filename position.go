package positions

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a position or an order id does not exist.
var ErrNotFound = errors.New("not found")

// Position is a tracked holding: the orders recorded against it and the
// figures derived from them.
//
// The position action is the action of its first order. Orders with the same
// action open (or add to) the position, orders with the opposite action close
// it and realise an income.
type Position struct {
	ID       int
	Name     string
	Action   Action
	EditedAt time.Time

	orders     []Order  // sorted by id
	amount     Quantity // net amount still held
	avgPrice   Money    // mean price of opening orders
	avgValue   Money    // amount * avgPrice
	income     Money    // sum of closing orders income
	closedCost Money    // cost basis of the closed amount
}

// NewPosition creates a position from its orders. Orders are sorted by id and
// the first one defines the position action.
func NewPosition(id int, name string, orders ...Order) (*Position, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("position %d has no orders", id)
	}
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b Order) int { return cmp.Compare(a.ID, b.ID) })

	p := &Position{ID: id, Name: name, Action: sorted[0].Action}
	if err := p.apply(sorted); err != nil {
		return nil, fmt.Errorf("position %d: %w", id, err)
	}
	return p, nil
}

// apply replays orders from scratch and commits the result only if every
// order is valid.
func (p *Position) apply(orders []Order) error {
	var amount Quantity
	opening := 0 // count of opening orders
	cur := orders[0].Value.Currency()
	priceSum, income, closedCost := M(0, cur), M(0, cur), M(0, cur)
	replayed := make([]Order, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("order %d: %w", o.ID, err)
		}
		o.income = Money{cur: o.Value.cur}

		if o.Action == p.Action {
			opening++
			priceSum = priceSum.Add(o.Price())
			amount = amount.Add(o.Amount)
			replayed = append(replayed, o)
			continue
		}

		if o.Amount.GreaterThan(amount) {
			return fmt.Errorf("%w: order %d closes %s while position holds %s", ErrOverClose, o.ID, o.Amount, amount)
		}
		// the average price at the moment the order applies.
		avg := priceSum.Div(Q(opening))
		gain := o.Price().Sub(avg).Mul(o.Amount)
		if p.Action == Short {
			gain = gain.Neg()
		}
		o.income = gain
		income = income.Add(gain)
		closedCost = closedCost.Add(avg.Mul(o.Amount))
		amount = amount.Sub(o.Amount)
		replayed = append(replayed, o)
	}

	p.orders = replayed
	p.amount = amount
	p.avgPrice = priceSum.Div(Q(opening))
	p.avgValue = p.avgPrice.Mul(amount)
	p.income = income
	p.closedCost = closedCost
	return nil
}

// AddOrder appends an order and recalculates the position figures.
// On error the position is left untouched.
func (p *Position) AddOrder(o Order) error {
	if _, err := p.Order(o.ID); err == nil {
		return fmt.Errorf("order with id %d already exists in position %d", o.ID, p.ID)
	}
	orders := append(slices.Clone(p.orders), o)
	slices.SortStableFunc(orders, func(a, b Order) int { return cmp.Compare(a.ID, b.ID) })
	return p.apply(orders)
}

// RemoveOrder removes an order and recalculates the position figures.
// The first order cannot be removed since it defines the position.
func (p *Position) RemoveOrder(id int) error {
	if len(p.orders) > 0 && p.orders[0].ID == id {
		return ErrFirstOrder
	}
	i := slices.IndexFunc(p.orders, func(o Order) bool { return o.ID == id })
	if i < 0 {
		return fmt.Errorf("order with id %d %w in position %d", id, ErrNotFound, p.ID)
	}
	orders := slices.Delete(slices.Clone(p.orders), i, i+1)
	return p.apply(orders)
}

// Order returns the order with the given id.
func (p *Position) Order(id int) (Order, error) {
	i := slices.IndexFunc(p.orders, func(o Order) bool { return o.ID == id })
	if i < 0 {
		return Order{}, fmt.Errorf("order with id %d %w in position %d", id, ErrNotFound, p.ID)
	}
	return p.orders[i], nil
}

// NextOrderID returns the id to use for a new order.
func (p *Position) NextOrderID() int {
	if len(p.orders) == 0 {
		return 0
	}
	return p.orders[len(p.orders)-1].ID + 1
}

// CloseOrder returns the order that closes the whole remaining amount for value.
func (p *Position) CloseOrder(value Money) Order {
	return NewOrder(p.NextOrderID(), p.Action.Opposite(), p.amount, value)
}

// IncomePercent returns the income relative to the cost basis of the closed
// amount. It is zero as long as nothing has been closed.
func (p *Position) IncomePercent() Percent {
	if p.closedCost.IsZero() {
		return 0
	}
	ratio := p.income.Ratio(p.closedCost).Mul(decimal.NewFromInt(100))
	return Percent(ratio.InexactFloat64())
}

// Orders returns a copy of the position orders, sorted by id.
func (p *Position) Orders() []Order { return slices.Clone(p.orders) }

func (p *Position) Amount() Quantity { return p.amount }
func (p *Position) AvgPrice() Money  { return p.avgPrice }
func (p *Position) AvgValue() Money  { return p.avgValue }
func (p *Position) Income() Money    { return p.income }
func (p *Position) IsClosed() bool   { return p.amount.IsZero() }

// Currency is the currency of the position values.
func (p *Position) Currency() string {
	if len(p.orders) == 0 {
		return ""
	}
	return p.orders[0].Value.Currency()
}

// Status returns the display status: Active or Closed.
func (p *Position) Status() string {
	if p.IsClosed() {
		return "Closed"
	}
	return "Active"
}

// Clone returns a deep copy, suitable for editing without touching the book.
func (p *Position) Clone() *Position {
	c := *p
	c.orders = slices.Clone(p.orders)
	return &c
}
