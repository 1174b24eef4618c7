package pagination

import (
	"math"
)

// PaginationMeta contains metadata about fetched result pages.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	PagesLoaded int  `json:"pages_loaded" yaml:"pages_loaded"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	LoadedItems int  `json:"loaded_items" yaml:"loaded_items"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta builds metadata for a session that loaded pagesLoaded
// pages holding loaded records, out of a server-reported total.
func NewPaginationMeta(pagesLoaded, pageSize, total, loaded int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return PaginationMeta{
		PagesLoaded: pagesLoaded,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		LoadedItems: loaded,
		HasNext:     loaded < total,
	}
}
