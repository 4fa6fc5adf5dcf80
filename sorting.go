package positions

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortField is the position attribute used to order the positions table.
type SortField int

const (
	ByID SortField = iota
	ByAvgValue
	ByAvgPrice
	ByIncome
	ByLastChange
)

// SortDirection is either ascending or descending.
type SortDirection int

const (
	Descending SortDirection = iota
	Ascending
)

// SortBy is a sorting preference, the zero value sorts by id, descending.
type SortBy struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortBy shows the most recently edited positions first.
var DefaultSortBy = SortBy{Field: ByLastChange, Direction: Descending}

var sortFieldNames = map[SortField]string{
	ByID:         "id",
	ByAvgValue:   "value",
	ByAvgPrice:   "price",
	ByIncome:     "income",
	ByLastChange: "change",
}

func (f SortField) String() string {
	if s, ok := sortFieldNames[f]; ok {
		return s
	}
	return "unknown"
}

// Label is the human wording of the field.
func (f SortField) Label() string {
	switch f {
	case ByID:
		return "id"
	case ByAvgValue:
		return "avg value"
	case ByAvgPrice:
		return "avg price"
	case ByIncome:
		return "income"
	case ByLastChange:
		return "last change"
	default:
		return "unknown"
	}
}

// ParseSortField parses a field name as printed by String.
// The menu numbers 1 to 5 are accepted as well.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "id", "1":
		return ByID, nil
	case "value", "avgvalue", "2":
		return ByAvgValue, nil
	case "price", "avgprice", "3":
		return ByAvgPrice, nil
	case "income", "4":
		return ByIncome, nil
	case "change", "lastchange", "5":
		return ByLastChange, nil
	default:
		return 0, fmt.Errorf("failed to parse sorting method '%s'", s)
	}
}

func (d SortDirection) String() string {
	if d == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseSortDirection parses asc/a or desc/d.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "a":
		return Ascending, nil
	case "desc", "d":
		return Descending, nil
	default:
		return 0, fmt.Errorf("failed to parse direction '%s'", s)
	}
}

// String returns the "field:direction" form, the inverse of ParseSortBy.
func (s SortBy) String() string { return s.Field.String() + ":" + s.Direction.String() }

// Label is the human wording, like "avg price (asc)".
func (s SortBy) Label() string { return fmt.Sprintf("%s (%s)", s.Field.Label(), s.Direction) }

// ParseSortBy parses "field" or "field:direction". Direction defaults to desc.
func ParseSortBy(s string) (SortBy, error) {
	field, dir, found := strings.Cut(s, ":")
	f, err := ParseSortField(field)
	if err != nil {
		return SortBy{}, err
	}
	d := Descending
	if found {
		if d, err = ParseSortDirection(dir); err != nil {
			return SortBy{}, err
		}
	}
	return SortBy{Field: f, Direction: d}, nil
}

// compare orders two positions by the field, ascending.
func (f SortField) compare(a, b *Position) int {
	switch f {
	case ByAvgValue:
		return a.avgValue.value.Cmp(b.avgValue.value)
	case ByAvgPrice:
		return a.avgPrice.value.Cmp(b.avgPrice.value)
	case ByIncome:
		return a.income.value.Cmp(b.income.value)
	case ByLastChange:
		return a.EditedAt.Compare(b.EditedAt)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

// Sort returns a sorted copy of ps. Ties are broken by id so the order is
// stable across redraws. When closedLast is set, closed positions come after
// active ones, each group keeping the requested order.
func (s SortBy) Sort(ps []*Position, closedLast bool) []*Position {
	sorted := slices.Clone(ps)
	slices.SortStableFunc(sorted, func(a, b *Position) int {
		if closedLast && a.IsClosed() != b.IsClosed() {
			if a.IsClosed() {
				return 1
			}
			return -1
		}
		c := s.Field.compare(a, b)
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if s.Direction == Descending {
			c = -c
		}
		return c
	})
	return sorted
}
