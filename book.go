package positions

import (
	"fmt"
	"slices"
	"time"
)

// Book is the whole set of tracked positions with their display preferences.
//
// In a Book positions are kept in the order they were opened; views get a
// sorted copy through Sorted.
type Book struct {
	// Currency of every value recorded in the book.
	Currency string
	// SortBy is the preferred order of the positions table.
	SortBy SortBy
	// MoveClosedToBottom lists closed positions after the active ones.
	MoveClosedToBottom bool

	positions []*Position
	now       func() time.Time
}

// NewBook creates an empty book.
func NewBook(currency string) *Book {
	return &Book{
		Currency:  currency,
		SortBy:    DefaultSortBy,
		positions: make([]*Position, 0),
		now:       time.Now,
	}
}

// SetClock replaces the clock used to stamp edited positions.
func (b *Book) SetClock(now func() time.Time) { b.now = now }

func (b *Book) clock() time.Time {
	if b.now == nil {
		return time.Now().UTC()
	}
	return b.now().UTC()
}

// Len returns the number of positions.
func (b *Book) Len() int { return len(b.positions) }

// Positions returns the positions in the order they were opened.
func (b *Book) Positions() []*Position { return slices.Clone(b.positions) }

// Sorted returns the positions ordered by the book preferences.
func (b *Book) Sorted() []*Position {
	return b.SortBy.Sort(b.positions, b.MoveClosedToBottom)
}

// Active returns the sorted positions that are not closed.
func (b *Book) Active() []*Position {
	return slices.DeleteFunc(b.Sorted(), (*Position).IsClosed)
}

// NextID returns the id of the next opened position.
func (b *Book) NextID() int {
	if len(b.positions) == 0 {
		return 0
	}
	return b.positions[len(b.positions)-1].ID + 1
}

// Open creates a new position from its first order and appends it.
func (b *Book) Open(name string, action Action, amount Quantity, value Money) (*Position, error) {
	first := NewOrder(0, action, amount, M(value.value, b.Currency))
	p, err := NewPosition(b.NextID(), name, first)
	if err != nil {
		return nil, err
	}
	p.EditedAt = b.clock()
	b.positions = append(b.positions, p)
	return p, nil
}

// Append adds already built positions, as decoded from storage.
func (b *Book) Append(ps ...*Position) error {
	for _, p := range ps {
		if b.index(p.ID) >= 0 {
			return fmt.Errorf("duplicate position id %d", p.ID)
		}
		b.positions = append(b.positions, p)
	}
	return nil
}

func (b *Book) index(id int) int {
	return slices.IndexFunc(b.positions, func(p *Position) bool { return p.ID == id })
}

// Position returns the position with the given id.
func (b *Book) Position(id int) (*Position, error) {
	i := b.index(id)
	if i < 0 {
		return nil, fmt.Errorf("position with id %d %w", id, ErrNotFound)
	}
	return b.positions[i], nil
}

// Delete removes the position with the given id.
func (b *Book) Delete(id int) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("position with id %d %w", id, ErrNotFound)
	}
	b.positions = slices.Delete(b.positions, i, i+1)
	return nil
}

// Replace stores an edited copy of a position in place of the one with the
// same id, and stamps its edition time.
func (b *Book) Replace(p *Position) error {
	i := b.index(p.ID)
	if i < 0 {
		return fmt.Errorf("position with id %d %w", p.ID, ErrNotFound)
	}
	p.EditedAt = b.clock()
	b.positions[i] = p
	return nil
}

// Totals returns the sum of average values and the sum of incomes of all
// positions.
func (b *Book) Totals() (value, income Money) {
	value, income = M(0, b.Currency), M(0, b.Currency)
	for _, p := range b.positions {
		value = value.Add(p.avgValue)
		income = income.Add(p.income)
	}
	return value, income
}
