package listing

// DefaultPageSize is both the paging threshold and the window size: a visible
// set larger than this is shown in pages of this many rows.
const DefaultPageSize = 20

// Page describes the window returned by Paginate.
type Page struct {
	Number     int  // 1-based
	Size       int  // rows per page
	TotalPages int  // 1 when not paginated
	TotalItems int  // size of the visible (post-filter) set
	Paginated  bool // false when every row fits on one page
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Paginated && p.Number < p.TotalPages
}

// HasPrevious reports whether a preceding page exists.
func (p Page) HasPrevious() bool {
	return p.Paginated && p.Number > 1
}

// Paginate returns the window of items for the requested page. When the set
// does not exceed size, all items are returned unpaginated. Out-of-range page
// numbers are clamped. A size below 1 falls back to DefaultPageSize.
func Paginate[T any](items []T, number, size int) ([]T, Page) {
	if size < 1 {
		size = DefaultPageSize
	}
	total := len(items)
	if total <= size {
		return items, Page{Number: 1, Size: size, TotalPages: 1, TotalItems: total}
	}

	pages := (total + size - 1) / size
	switch {
	case number < 1:
		number = 1
	case number > pages:
		number = pages
	}

	start := (number - 1) * size
	end := min(start+size, total)

	return items[start:end], Page{
		Number:     number,
		Size:       size,
		TotalPages: pages,
		TotalItems: total,
		Paginated:  true,
	}
}
