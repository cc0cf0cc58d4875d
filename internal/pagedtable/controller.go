package pagedtable

import (
	"context"
	"fmt"
)

// Ticket identifies one issued fetch cycle.
type Ticket struct {
	Seq uint64
}

// Option customizes a Controller.
type Option func(*options)

type options struct {
	pageSize      int
	sortColumn    string
	sortDirection SortDirection
}

// WithPageSize sets the initial page size.
func WithPageSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.pageSize = size
		}
	}
}

// WithSort sets the initial sort column and direction.
func WithSort(column string, dir SortDirection) Option {
	return func(o *options) {
		o.sortColumn = column
		o.sortDirection = dir
	}
}

// Controller owns the ViewState of one table and enforces latest-wins
// supersession between overlapping fetch cycles.
//
// A Controller is not safe for concurrent use. Drivers (Table, Runner) make
// sure that events and completions are delivered on a single logical thread.
// Only Fetch may be called from another goroutine.
type Controller[T any] struct {
	fetcher Fetcher[T]
	filter  string
	state   ViewState[T]

	seq     uint64
	started bool
	stopped bool
}

// New creates a controller bound to fetcher and scoped by filter. The state
// starts in loading mode with the configured pagination defaults.
func New[T any](fetcher Fetcher[T], filter string, opts ...Option) *Controller[T] {
	o := options{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&o)
	}

	dir := o.sortDirection
	if o.sortColumn == "" {
		dir = SortNone
	}

	return &Controller[T]{
		fetcher: fetcher,
		filter:  filter,
		state: ViewState[T]{
			Rows:          []T{},
			Loading:       true,
			PageSize:      o.pageSize,
			SortColumn:    o.sortColumn,
			SortDirection: dir,
		},
	}
}

// Filter returns the scoping key passed at construction.
func (c *Controller[T]) Filter() string {
	return c.filter
}

// Start seeds the synthetic start event. It must be called exactly once, after
// the paginator and sort controls exist.
func (c *Controller[T]) Start() (Ticket, PageRequest, error) {
	if c.started {
		return Ticket{}, PageRequest{}, ErrAlreadyStarted
	}
	c.started = true
	ticket, req, _ := c.Begin(StartEvent())
	return ticket, req, nil
}

// Begin applies ev and issues a new cycle. It returns false when the
// controller has not been started yet or was stopped.
func (c *Controller[T]) Begin(ev Event) (Ticket, PageRequest, bool) {
	if !c.started || c.stopped {
		return Ticket{}, PageRequest{}, false
	}

	var req PageRequest
	c.state, req = Reduce(c.state, ev, c.filter)
	c.seq++
	return Ticket{Seq: c.seq}, req, true
}

// OnSortChanged starts a cycle for a new sort column/direction. The page index
// is reset to 0 before the request is built.
func (c *Controller[T]) OnSortChanged(column string, dir SortDirection) (Ticket, PageRequest, bool) {
	return c.Begin(SortChangedEvent(column, dir))
}

// OnPageChanged starts a cycle for a new page index/size.
func (c *Controller[T]) OnPageChanged(index, size int) (Ticket, PageRequest, bool) {
	return c.Begin(PageChangedEvent(index, size))
}

// Reload re-requests pageIndex with the current page size. Callers use it
// after mutating the remote collection.
func (c *Controller[T]) Reload(pageIndex int) (Ticket, PageRequest, bool) {
	return c.Begin(PageChangedEvent(pageIndex, c.state.PageSize))
}

// Fetch performs the remote call for req. Any error is wrapped in
// ErrFetchFailed. Fetch does not touch the state and may run on any goroutine.
func (c *Controller[T]) Fetch(ctx context.Context, req PageRequest) (PageResult[T], error) {
	res, err := c.fetcher.FetchPage(ctx, req)
	if err != nil {
		return PageResult[T]{}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return res, nil
}

// Complete applies the outcome of the cycle identified by t. Results of
// superseded cycles, and any result arriving after Stop, are discarded.
// Rows beyond the requested limit are dropped.
// It reports whether the state changed.
func (c *Controller[T]) Complete(t Ticket, res PageResult[T], err error) bool {
	if c.stopped || t.Seq == 0 || t.Seq != c.seq {
		return false
	}

	next := c.state
	next.Loading = false

	if err != nil {
		next.Rows = []T{}
		next.TotalCount = 0
		next.Failed = true
		c.state = next
		return true
	}

	next.TotalCount = max(res.TotalCount, 0)
	next.Failed = false
	if next.TotalCount == 0 || len(res.Rows) == 0 {
		next.Rows = []T{}
	} else {
		n := len(res.Rows)
		if next.PageSize > 0 {
			n = min(n, next.PageSize)
		}
		rows := make([]T, n)
		copy(rows, res.Rows[:n])
		next.Rows = rows
	}
	c.state = next
	return true
}

// Stop detaches the controller. Late completions are ignored from now on.
func (c *Controller[T]) Stop() {
	c.stopped = true
}

// State returns a snapshot of the view state. The Rows slice is a copy.
func (c *Controller[T]) State() ViewState[T] {
	s := c.state
	rows := make([]T, len(s.Rows))
	copy(rows, s.Rows)
	s.Rows = rows
	return s
}
