package pagedtable

import (
	"context"
	"errors"
	"strings"
)

// ErrFetchFailed is the only failure kind surfaced by this package. Network
// errors, non-2xx responses and decoding errors are all collapsed into it.
var ErrFetchFailed = errors.New("fetch failed")

// ErrAlreadyStarted is returned when Start is called more than once.
var ErrAlreadyStarted = errors.New("paged table already started")

// Pagination defaults.
const (
	DefaultPageSize = 10
)

// SortDirection is the active sort order of a table column.
type SortDirection int

const (
	// SortNone means no explicit ordering is requested.
	SortNone SortDirection = iota
	// SortAscending orders rows from lowest to highest.
	SortAscending
	// SortDescending orders rows from highest to lowest.
	SortDescending
)

// String returns "asc", "desc" or "" for SortNone.
func (d SortDirection) String() string {
	switch d {
	case SortAscending:
		return "asc"
	case SortDescending:
		return "desc"
	case SortNone:
		return ""
	default:
		return ""
	}
}

// Toggle flips ascending and descending. SortNone becomes SortAscending.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAscending {
		return SortDescending
	}
	return SortAscending
}

// ParseSortDirection accepts "asc"/"desc" in any case. Anything else maps to SortNone.
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return SortAscending
	case "desc", "descending":
		return SortDescending
	default:
		return SortNone
	}
}

// PageRequest describes one remote list query.
type PageRequest struct {
	Limit         int
	Offset        int
	SortColumn    string
	SortDirection SortDirection
	// Filter is an opaque scoping key, for example the id of the owning entity.
	Filter string
}

// PageIndex returns the zero-based page the request points at.
func (r PageRequest) PageIndex() int {
	if r.Limit <= 0 {
		return 0
	}
	return r.Offset / r.Limit
}

// PageResult is one page of rows plus the size of the whole remote collection.
type PageResult[T any] struct {
	Rows       []T
	TotalCount int
}

// Fetcher loads one page from the remote collection. Implementations must be
// idempotent and side-effect free.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, req PageRequest) (PageResult[T], error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, req PageRequest) (PageResult[T], error)

// FetchPage calls f.
func (f FetcherFunc[T]) FetchPage(ctx context.Context, req PageRequest) (PageResult[T], error) {
	return f(ctx, req)
}

// ViewState is the rendered state of a table. It is rebuilt, never patched,
// on every fetch completion.
type ViewState[T any] struct {
	Rows          []T
	TotalCount    int
	Loading       bool
	PageIndex     int
	PageSize      int
	SortColumn    string
	SortDirection SortDirection
	// Failed reports whether the most recently applied cycle failed. It is
	// cleared as soon as a new cycle begins.
	Failed bool
}

// TotalPages returns the number of pages implied by TotalCount and PageSize.
func (s ViewState[T]) TotalPages() int {
	if s.PageSize <= 0 || s.TotalCount <= 0 {
		return 0
	}
	return (s.TotalCount + s.PageSize - 1) / s.PageSize
}

// EventKind enumerates the triggers that start a fetch cycle.
type EventKind int

const (
	// EventStart is the synthetic event seeded when the table starts.
	EventStart EventKind = iota
	// EventSortChanged is emitted when the sort column or direction changes.
	EventSortChanged
	// EventPageChanged is emitted when the page index or size changes.
	EventPageChanged
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventSortChanged:
		return "sort_changed"
	case EventPageChanged:
		return "page_changed"
	default:
		return "unknown"
	}
}

// Event is one input to the reducer.
type Event struct {
	Kind          EventKind
	PageIndex     int
	PageSize      int
	SortColumn    string
	SortDirection SortDirection
}

// StartEvent returns the synthetic start event.
func StartEvent() Event {
	return Event{Kind: EventStart}
}

// SortChangedEvent returns an event for a new sort column/direction.
func SortChangedEvent(column string, dir SortDirection) Event {
	return Event{Kind: EventSortChanged, SortColumn: column, SortDirection: dir}
}

// PageChangedEvent returns an event for a new page index/size.
func PageChangedEvent(index, size int) Event {
	return Event{Kind: EventPageChanged, PageIndex: index, PageSize: size}
}
