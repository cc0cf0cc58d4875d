package pagedtable

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrRunnerStopped is returned when events are sent to a stopped Runner.
var ErrRunnerStopped = errors.New("runner stopped")

type completion[T any] struct {
	ticket Ticket
	result PageResult[T]
	err    error
}

// Runner drives a Controller from a dedicated goroutine. Events and fetch
// completions are serialized through the loop, so the controller never sees
// concurrent access. Every state change is published to the subscriber from
// the loop goroutine.
type Runner[T any] struct {
	ctrl     *Controller[T]
	onChange func(ViewState[T])

	events      chan Event
	completions chan completion[T]
	quit        chan struct{}
	finished    chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

// NewRunner creates a Runner for ctrl. onChange may be nil.
func NewRunner[T any](ctrl *Controller[T], onChange func(ViewState[T])) *Runner[T] {
	if onChange == nil {
		onChange = func(ViewState[T]) {}
	}
	return &Runner[T]{
		ctrl:        ctrl,
		onChange:    onChange,
		events:      make(chan Event),
		completions: make(chan completion[T]),
		quit:        make(chan struct{}),
		finished:    make(chan struct{}),
	}
}

// Start launches the loop and seeds the initial load. Fetches run with ctx;
// cancelling ctx stops the loop.
func (r *Runner[T]) Start(ctx context.Context) error {
	err := ErrAlreadyStarted
	r.startOnce.Do(func() {
		ticket, req, startErr := r.ctrl.Start()
		if startErr != nil {
			err = startErr
			return
		}
		err = nil
		r.started.Store(true)
		r.onChange(r.ctrl.State())
		go r.loop(ctx, ticket, req)
	})
	return err
}

// SortChanged enqueues a sort change.
func (r *Runner[T]) SortChanged(column string, dir SortDirection) error {
	return r.send(SortChangedEvent(column, dir))
}

// PageChanged enqueues a page change.
func (r *Runner[T]) PageChanged(index, size int) error {
	return r.send(PageChangedEvent(index, size))
}

// Stop terminates the loop and waits for it to exit. Results that arrive
// afterwards are dropped. Stop is idempotent.
func (r *Runner[T]) Stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
	})
	if r.started.Load() {
		<-r.finished
	}
}

func (r *Runner[T]) send(ev Event) error {
	select {
	case <-r.finished:
		return ErrRunnerStopped
	case <-r.quit:
		return ErrRunnerStopped
	case r.events <- ev:
		return nil
	}
}

func (r *Runner[T]) loop(ctx context.Context, ticket Ticket, req PageRequest) {
	defer close(r.finished)
	defer r.ctrl.Stop()

	r.fetch(ctx, ticket, req)

	for {
		select {
		case <-r.quit:
			return
		case <-ctx.Done():
			return
		case ev := <-r.events:
			t, rq, ok := r.ctrl.Begin(ev)
			if !ok {
				continue
			}
			r.onChange(r.ctrl.State())
			r.fetch(ctx, t, rq)
		case c := <-r.completions:
			if r.ctrl.Complete(c.ticket, c.result, c.err) {
				r.onChange(r.ctrl.State())
			}
		}
	}
}

func (r *Runner[T]) fetch(ctx context.Context, ticket Ticket, req PageRequest) {
	go func() {
		res, err := r.ctrl.Fetch(ctx, req)
		select {
		case r.completions <- completion[T]{ticket: ticket, result: res, err: err}:
		case <-r.finished:
		}
	}()
}
