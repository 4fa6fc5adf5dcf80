package positions

import (
	"errors"
	"testing"
)

func TestPagesCount(t *testing.T) {
	tests := []struct{ n, perPage, want int }{
		{n: 0, perPage: 10, want: 1},
		{n: 1, perPage: 10, want: 1},
		{n: 10, perPage: 10, want: 1},
		{n: 11, perPage: 10, want: 2},
		{n: 25, perPage: 5, want: 5},
	}
	for _, tt := range tests {
		if got := PagesCount(tt.n, tt.perPage); got != tt.want {
			t.Errorf("PagesCount(%d, %d) = %d, want %d", tt.n, tt.perPage, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	tests := []struct {
		page int
		want []int
	}{
		{page: 1, want: []int{1, 2, 3}},
		{page: 2, want: []int{4, 5, 6}},
		{page: 3, want: []int{7}},
		{page: 4, want: nil},
	}
	for _, tt := range tests {
		if got := Paginate(items, tt.page, 3); !equalInts(got, tt.want) {
			t.Errorf("Paginate(page=%d) = %v, want %v", tt.page, got, tt.want)
		}
	}
}

func TestPager(t *testing.T) {
	p := Pager{PerPage: 10}
	if err := p.Previous(); !errors.Is(err, ErrFirstPage) {
		t.Errorf("Previous() on first page error = %v, want %v", err, ErrFirstPage)
	}
	if err := p.Next(10); !errors.Is(err, ErrLastPage) {
		t.Errorf("Next(10) error = %v, want %v", err, ErrLastPage)
	}
	if err := p.Next(21); err != nil {
		t.Fatalf("Next(21) error = %v", err)
	}
	if err := p.Next(21); err != nil {
		t.Fatalf("Next(21) error = %v", err)
	}
	if got := p.Page(); got != 3 {
		t.Errorf("Page() = %d, want 3", got)
	}
	p.Clamp(11)
	if got := p.Page(); got != 2 {
		t.Errorf("Page() after Clamp(11) = %d, want 2", got)
	}
	if err := p.Previous(); err != nil {
		t.Fatalf("Previous() error = %v", err)
	}
	if got := p.Page(); got != 1 {
		t.Errorf("Page() = %d, want 1", got)
	}
}
