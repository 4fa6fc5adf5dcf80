package positions

import (
	"testing"
	"time"
)

func ids(ps []*Position) []int {
	res := make([]int, 0, len(ps))
	for _, p := range ps {
		res = append(res, p.ID)
	}
	return res
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortingFixture() []*Position {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	// A: price 300, value 300. B: closed, income 200. C: price 50, value 200.
	a := must(NewPosition(0, "A", order(0, Long, 1, 300)))
	b := must(NewPosition(1, "B", order(0, Long, 2, 100), order(1, Short, 2, 300)))
	c := must(NewPosition(2, "C", order(0, Long, 4, 200)))
	a.EditedAt = base.Add(2 * time.Hour)
	b.EditedAt = base.Add(3 * time.Hour)
	c.EditedAt = base.Add(1 * time.Hour)
	return []*Position{a, b, c}
}

func TestSortBy_Sort(t *testing.T) {
	tests := []struct {
		sortBy     SortBy
		closedLast bool
		want       []int
	}{
		{sortBy: SortBy{ByID, Ascending}, want: []int{0, 1, 2}},
		{sortBy: SortBy{ByID, Descending}, want: []int{2, 1, 0}},
		{sortBy: SortBy{ByAvgPrice, Ascending}, want: []int{1, 2, 0}},
		{sortBy: SortBy{ByAvgValue, Descending}, want: []int{0, 2, 1}},
		{sortBy: SortBy{ByIncome, Descending}, want: []int{1, 2, 0}},
		{sortBy: SortBy{ByLastChange, Descending}, want: []int{1, 0, 2}},
		{sortBy: SortBy{ByLastChange, Descending}, closedLast: true, want: []int{0, 2, 1}},
	}
	for _, tt := range tests {
		got := ids(tt.sortBy.Sort(sortingFixture(), tt.closedLast))
		if !equalInts(got, tt.want) {
			t.Errorf("%v.Sort(closedLast=%v) = %v, want %v", tt.sortBy, tt.closedLast, got, tt.want)
		}
	}
}

func TestParseSortBy(t *testing.T) {
	tests := []struct {
		input   string
		want    SortBy
		wantErr bool
	}{
		{input: "id", want: SortBy{ByID, Descending}},
		{input: "price:asc", want: SortBy{ByAvgPrice, Ascending}},
		{input: "change:desc", want: DefaultSortBy},
		{input: "4:a", want: SortBy{ByIncome, Ascending}},
		{input: "volume", wantErr: true},
		{input: "id:up", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseSortBy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortBy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSortBy(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !tt.wantErr {
			if back, _ := ParseSortBy(got.String()); back != got {
				t.Errorf("ParseSortBy(%q) = %v, want %v", got.String(), back, got)
			}
		}
	}
}
