package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/os2iot/iotconsole/internal/pagedtable"
)

// Flag defaults and validation limits.
const (
	DefaultLimit     = 10
	MaxLimit         = 1000
	MinLimit         = 1
	DefaultOffset    = 0
	MinPage          = 1
	MaxPageSize      = 1000
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortOrder = SortOrderAsc
	sortPartsMax     = 2
	flagLimit        = "limit"
	flagOffset       = "offset"
	flagPage         = "page"
	flagPageSize     = "page-size"
	flagSort         = "sort"
	flagSortExample  = "name:desc"
)

// Validation errors.
var (
	ErrInvalidLimit         = fmt.Errorf("limit must be between %d and %d", MinLimit, MaxLimit)
	ErrInvalidPageSize      = fmt.Errorf("page-size must be between 1 and %d", MaxPageSize)
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 1")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// PaginationParams holds the pagination flags of a list command. Offset mode
// (--limit/--offset) and page mode (--page/--page-size) are mutually exclusive.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
	Sort     string
}

// NewPaginationParams returns params with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{Limit: DefaultLimit, Offset: DefaultOffset}
}

// AddFlags registers the pagination flags on cmd.
func (p *PaginationParams) AddFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&p.Limit, flagLimit, p.Limit, "maximum number of rows to fetch")
	f.IntVar(&p.Offset, flagOffset, p.Offset, "number of rows to skip")
	f.IntVar(&p.Page, flagPage, p.Page, "1-based page number (use with --page-size)")
	f.IntVar(&p.PageSize, flagPageSize, p.PageSize, "rows per page (use with --page)")
	f.StringVar(&p.Sort, flagSort, p.Sort, fmt.Sprintf("sort as field[:asc|desc], e.g. %q", flagSortExample))
}

// Validate checks bounds and the exclusivity of the two modes.
func (p PaginationParams) Validate() error {
	if p.Offset < 0 {
		return ErrInvalidOffset
	}
	if p.Page < 0 {
		return ErrInvalidPage
	}
	if p.PageSize < 0 || p.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	if p.PageSize > 0 && p.Page == 0 {
		return ErrPageSizeWithoutPage
	}
	if p.Page > 0 && p.PageSize == 0 {
		return fmt.Errorf("%w: --page requires --page-size", ErrInvalidPageSize)
	}
	if !p.IsPageBased() && (p.Limit < MinLimit || p.Limit > MaxLimit) {
		return ErrInvalidLimit
	}
	if _, _, err := ParseSort(p.Sort); err != nil {
		return err
	}
	return nil
}

// IsPageBased reports whether --page is in use.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// CalculateOffsetLimit returns the effective offset and limit.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// ParseSort parses "field" or "field:order". An empty string means unsorted.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", "", nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// Request validates p and builds the page request for a list call. Sort
// fields are resolved to backend columns through fields.
func (p PaginationParams) Request(fields SortFields, filter string) (pagedtable.PageRequest, error) {
	if err := p.Validate(); err != nil {
		return pagedtable.PageRequest{}, err
	}

	offset, limit := p.CalculateOffsetLimit()
	req := pagedtable.PageRequest{Limit: limit, Offset: offset, Filter: filter}

	field, order, _ := ParseSort(p.Sort)
	if field == "" {
		return req, nil
	}
	column, err := fields.Resolve(field)
	if err != nil {
		return pagedtable.PageRequest{}, err
	}
	req.SortColumn = column
	req.SortDirection = pagedtable.ParseSortDirection(order)
	return req, nil
}
