package pagedtable

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// nextTableID hands out ids so several tables can share one Bubble Tea program.
var nextTableID atomic.Uint64 //nolint:gochecknoglobals // Process-wide id source for FetchedMsg routing.

// FetchedMsg carries the outcome of one fetch cycle back into the Update loop.
type FetchedMsg[T any] struct {
	TableID uint64
	Ticket  Ticket
	Result  PageResult[T]
	Err     error
}

// Table drives a Controller from a Bubble Tea program. Every trigger returns a
// tea.Cmd that performs the fetch off the Update loop; the resulting
// FetchedMsg must be passed back to Update.
type Table[T any] struct {
	id   uint64
	ctx  context.Context
	ctrl *Controller[T]
}

// NewTable creates a Bubble Tea driver for a new Controller.
func NewTable[T any](ctx context.Context, fetcher Fetcher[T], filter string, opts ...Option) *Table[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Table[T]{
		id:   nextTableID.Add(1),
		ctx:  ctx,
		ctrl: New(fetcher, filter, opts...),
	}
}

// ID returns the id stamped on every FetchedMsg of this table.
func (t *Table[T]) ID() uint64 {
	return t.id
}

// Init starts the table and returns the command for the initial load.
// Calling it twice returns nil.
func (t *Table[T]) Init() tea.Cmd {
	ticket, req, err := t.ctrl.Start()
	if err != nil {
		return nil
	}
	return t.fetchCmd(ticket, req)
}

// SortChanged resets to the first page and fetches with the new ordering.
func (t *Table[T]) SortChanged(column string, dir SortDirection) tea.Cmd {
	return t.issue(t.ctrl.OnSortChanged(column, dir))
}

// PageChanged fetches the given page.
func (t *Table[T]) PageChanged(index, size int) tea.Cmd {
	return t.issue(t.ctrl.OnPageChanged(index, size))
}

// Reload fetches pageIndex again with the current page size.
func (t *Table[T]) Reload(pageIndex int) tea.Cmd {
	return t.issue(t.ctrl.Reload(pageIndex))
}

// Update applies a FetchedMsg addressed to this table. It reports whether the
// view state changed; stale or foreign messages return false.
func (t *Table[T]) Update(msg tea.Msg) bool {
	fetched, ok := msg.(FetchedMsg[T])
	if !ok || fetched.TableID != t.id {
		return false
	}
	return t.ctrl.Complete(fetched.Ticket, fetched.Result, fetched.Err)
}

// Stop releases the table; in-flight results are dropped when they arrive.
func (t *Table[T]) Stop() {
	t.ctrl.Stop()
}

// State returns a snapshot of the view state.
func (t *Table[T]) State() ViewState[T] {
	return t.ctrl.State()
}

// Filter returns the scoping key of the table.
func (t *Table[T]) Filter() string {
	return t.ctrl.Filter()
}

func (t *Table[T]) issue(ticket Ticket, req PageRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return t.fetchCmd(ticket, req)
}

func (t *Table[T]) fetchCmd(ticket Ticket, req PageRequest) tea.Cmd {
	id := t.id
	ctrl := t.ctrl
	ctx := t.ctx
	return func() tea.Msg {
		res, err := ctrl.Fetch(ctx, req)
		return FetchedMsg[T]{TableID: id, Ticket: ticket, Result: res, Err: err}
	}
}
