package pagination

import (
	"github.com/os2iot/iotconsole/internal/pagedtable"
)

// PaginationMeta describes a returned page.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	Offset      int  `json:"offset"       yaml:"offset"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewPaginationMeta describes the page selected by req in a collection of
// totalCount rows.
func NewPaginationMeta(req pagedtable.PageRequest, totalCount int) PaginationMeta {
	pageSize := req.Limit
	if pageSize <= 0 {
		pageSize = max(totalCount, 1)
	}

	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	currentPage := req.Offset/pageSize + 1

	return PaginationMeta{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		Offset:      req.Offset,
		TotalPages:  totalPages,
		TotalItems:  totalCount,
		HasPrevious: req.Offset > 0,
		HasNext:     req.Offset+pageSize < totalCount,
	}
}
