package pagination

import "github.com/rshade/wattsonctl/internal/listing"

// Meta describes the page included in JSON output.
type Meta struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewMeta converts a listing page.
func NewMeta(p listing.Page) Meta {
	return Meta{
		CurrentPage: p.Number,
		PageSize:    p.Size,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalItems,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
}
