package pagination

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/listing"
)

// Flag defaults and limits.
const (
	DefaultPage = 1
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 500
)

// Validation errors.
var (
	ErrInvalidPage     = errors.New("page must be >= 1")
	ErrInvalidPageSize = fmt.Errorf("page-size must be between %d and %d", MinPageSize, MaxPageSize)
)

// Params holds the paging and sorting flags of a list command.
type Params struct {
	// Page is the 1-based page number.
	Page int

	// PageSize is both the paging threshold and the window size.
	PageSize int

	// Sort is "field" or "field:order"; empty keeps fetch order.
	Sort string
}

// NewParams returns params for page 1 with the given page size. A size
// below 1 falls back to listing.DefaultPageSize.
func NewParams(pageSize int) *Params {
	if pageSize < MinPageSize {
		pageSize = listing.DefaultPageSize
	}
	return &Params{Page: DefaultPage, PageSize: pageSize}
}

// AddFlags registers --page, --page-size and --sort on cmd. The current
// values of p are the defaults.
func AddFlags(cmd *cobra.Command, p *Params, sortFields []string) {
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "page number to show (1-based)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", p.PageSize, "rows per page; larger sets are paged")
	cmd.Flags().StringVar(&p.Sort, "sort", p.Sort,
		fmt.Sprintf("sort as field[:asc|desc]; fields: %v", sortFields))
}

// Validate checks the bounds of the flags and the sort syntax.
func (p Params) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w, got %d", ErrInvalidPage, p.Page)
	}
	if p.PageSize < MinPageSize || p.PageSize > MaxPageSize {
		return fmt.Errorf("%w, got %d", ErrInvalidPageSize, p.PageSize)
	}
	if _, _, err := listing.ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// Apply sorts items with sorter and returns the requested page.
func Apply[T any](items []T, p Params, sorter *listing.Sorter[T]) ([]T, listing.Page, error) {
	field, order, err := listing.ParseSort(p.Sort)
	if err != nil {
		return nil, listing.Page{}, err
	}
	sorted := items
	if field != "" {
		if sorted, err = sorter.SortByName(items, field, order); err != nil {
			return nil, listing.Page{}, err
		}
	}
	window, page := listing.Paginate(sorted, p.Page, p.PageSize)
	return window, page, nil
}
