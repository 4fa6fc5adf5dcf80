package renderer

import "github.com/etnz/positions"

// Positions is the view of one page of the positions table.
type Positions struct {
	Rows        []PositionRow
	TotalValue  positions.Money
	TotalIncome positions.Money
	Page        int
	Pages       int
}

// PositionRow is a single line of the positions table.
type PositionRow struct {
	ID            int
	Name          string
	Action        positions.Action
	Amount        positions.Quantity
	AvgValue      positions.Money
	AvgPrice      positions.Money
	Income        positions.Money
	IncomePercent positions.Percent
	Status        string
}

// NewPositionRow builds the row of a position.
func NewPositionRow(p *positions.Position) *PositionRow {
	return &PositionRow{
		ID:            p.ID,
		Name:          p.Name,
		Action:        p.Action,
		Amount:        p.Amount(),
		AvgValue:      p.AvgValue(),
		AvgPrice:      p.AvgPrice(),
		Income:        p.Income(),
		IncomePercent: p.IncomePercent(),
		Status:        p.Status(),
	}
}

// NewPositions builds the view of a page of ps. Totals are computed over the
// whole book, page is 1-based.
func NewPositions(b *positions.Book, ps []*positions.Position, page, perPage int) *Positions {
	value, income := b.Totals()
	v := &Positions{
		Rows:        make([]PositionRow, 0, perPage),
		TotalValue:  value,
		TotalIncome: income,
		Page:        page,
		Pages:       positions.PagesCount(len(ps), perPage),
	}
	for _, p := range positions.Paginate(ps, page, perPage) {
		v.Rows = append(v.Rows, *NewPositionRow(p))
	}
	return v
}
