package positions

import "errors"

var (
	ErrLastPage  = errors.New("already at last page")
	ErrFirstPage = errors.New("already at first page")
)

// PagesCount returns the number of pages needed to show n items, at least 1.
func PagesCount(n, perPage int) int {
	if perPage <= 0 || n <= 0 {
		return 1
	}
	return (n + perPage - 1) / perPage
}

// Paginate returns the items shown on a 1-based page.
func Paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		return items
	}
	start := (page - 1) * perPage
	if start < 0 || start >= len(items) {
		return nil
	}
	end := min(start+perPage, len(items))
	return items[start:end]
}

// Pager tracks the current page of a paginated view. Its zero value is on
// page 1.
type Pager struct {
	PerPage int
	page    int // 0 based
}

// Page returns the current 1-based page.
func (p *Pager) Page() int { return p.page + 1 }

// Next moves to the next page if any among n items.
func (p *Pager) Next(n int) error {
	if p.page+2 > PagesCount(n, p.PerPage) {
		return ErrLastPage
	}
	p.page++
	return nil
}

// Previous moves to the previous page if any.
func (p *Pager) Previous() error {
	if p.page == 0 {
		return ErrFirstPage
	}
	p.page--
	return nil
}

// Clamp moves back to the last page when items were removed.
func (p *Pager) Clamp(n int) {
	if last := PagesCount(n, p.PerPage) - 1; p.page > last {
		p.page = last
	}
}
