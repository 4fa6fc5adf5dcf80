package positions

import (
	"errors"
	"fmt"
)

var (
	// ErrFirstOrder is returned when trying to remove the order that opened a position.
	ErrFirstOrder = errors.New("cannot remove first order")
	// ErrInvalidOrder is returned for orders with a non positive amount or a negative value.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrOverClose is returned when closing orders exceed the amount held.
	ErrOverClose = errors.New("order amount exceeds position amount")
)

// Order is a single buy or sell transaction against a position.
//
// ID, Action, Amount and Value are the recorded facts. Price is derived, and
// Income is computed by the position the order belongs to.
type Order struct {
	ID     int
	Action Action
	Amount Quantity
	Value  Money

	income Money
}

// NewOrder creates an order. Its income is computed once added to a position.
func NewOrder(id int, action Action, amount Quantity, value Money) Order {
	return Order{ID: id, Action: action, Amount: amount, Value: value}
}

// Price is the unit price of the order.
func (o Order) Price() Money {
	if o.Amount.IsZero() {
		return Money{cur: o.Value.cur}
	}
	return o.Value.Div(o.Amount)
}

// Income is the realised income of a closing order, zero otherwise.
func (o Order) Income() Money { return o.income }

// Validate checks the intrinsic order values.
func (o Order) Validate() error {
	if !o.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidOrder, o.Amount)
	}
	if o.Value.IsNegative() {
		return fmt.Errorf("%w: value cannot be negative, got %s", ErrInvalidOrder, o.Value.Decimal())
	}
	return nil
}
