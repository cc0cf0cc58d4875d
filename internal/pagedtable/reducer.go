package pagedtable

// Reduce applies ev to s and returns the next state together with the request
// that the new cycle must issue. It has no side effects.
//
// A sort change always resets the page index to 0 before the request is built,
// so a new ordering never starts in the middle of the collection.
func Reduce[T any](s ViewState[T], ev Event, filter string) (ViewState[T], PageRequest) {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}

	switch ev.Kind {
	case EventSortChanged:
		s.SortColumn = ev.SortColumn
		s.SortDirection = ev.SortDirection
		if s.SortColumn == "" {
			s.SortDirection = SortNone
		}
		s.PageIndex = 0
	case EventPageChanged:
		if ev.PageSize > 0 {
			s.PageSize = ev.PageSize
		}
		s.PageIndex = max(ev.PageIndex, 0)
	case EventStart:
		// Keep the configured defaults.
	}

	s.Loading = true
	s.Failed = false

	return s, requestFor(s, filter)
}

// requestFor derives the request for the current pagination and sort state.
func requestFor[T any](s ViewState[T], filter string) PageRequest {
	dir := s.SortDirection
	if s.SortColumn == "" {
		dir = SortNone
	}
	return PageRequest{
		Limit:         s.PageSize,
		Offset:        s.PageIndex * s.PageSize,
		SortColumn:    s.SortColumn,
		SortDirection: dir,
		Filter:        filter,
	}
}
