package pagedtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduce(t *testing.T) {
	base := ViewState[string]{PageIndex: 2, PageSize: 10, SortColumn: "name", SortDirection: SortAscending}

	tests := []struct {
		name      string
		event     Event
		wantIndex int
		wantSize  int
		wantReq   PageRequest
	}{
		{
			name:      "start keeps defaults",
			event:     StartEvent(),
			wantIndex: 2,
			wantSize:  10,
			wantReq:   PageRequest{Limit: 10, Offset: 20, SortColumn: "name", SortDirection: SortAscending, Filter: "org-1"},
		},
		{
			name:      "sort change resets to first page",
			event:     SortChangedEvent("email", SortDescending),
			wantIndex: 0,
			wantSize:  10,
			wantReq:   PageRequest{Limit: 10, Offset: 0, SortColumn: "email", SortDirection: SortDescending, Filter: "org-1"},
		},
		{
			name:      "page change moves offset",
			event:     PageChangedEvent(3, 25),
			wantIndex: 3,
			wantSize:  25,
			wantReq:   PageRequest{Limit: 25, Offset: 75, SortColumn: "name", SortDirection: SortAscending, Filter: "org-1"},
		},
		{
			name:      "page change with zero size keeps size",
			event:     PageChangedEvent(1, 0),
			wantIndex: 1,
			wantSize:  10,
			wantReq:   PageRequest{Limit: 10, Offset: 10, SortColumn: "name", SortDirection: SortAscending, Filter: "org-1"},
		},
		{
			name:      "negative page index is clamped",
			event:     PageChangedEvent(-4, 10),
			wantIndex: 0,
			wantSize:  10,
			wantReq:   PageRequest{Limit: 10, Offset: 0, SortColumn: "name", SortDirection: SortAscending, Filter: "org-1"},
		},
		{
			name:      "clearing sort column drops direction",
			event:     SortChangedEvent("", SortDescending),
			wantIndex: 0,
			wantSize:  10,
			wantReq:   PageRequest{Limit: 10, Offset: 0, Filter: "org-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, req := Reduce(base, tt.event, "org-1")
			assert.True(t, next.Loading)
			assert.False(t, next.Failed)
			assert.Equal(t, tt.wantIndex, next.PageIndex)
			assert.Equal(t, tt.wantSize, next.PageSize)
			assert.Equal(t, tt.wantReq, req)
			assert.Zero(t, req.Offset%req.Limit, "offset must be a multiple of limit")
		})
	}
}

func TestReduce_DefaultsPageSize(t *testing.T) {
	next, req := Reduce(ViewState[int]{}, StartEvent(), "")
	assert.Equal(t, DefaultPageSize, next.PageSize)
	assert.Equal(t, DefaultPageSize, req.Limit)
}

func TestSortDirection(t *testing.T) {
	assert.Equal(t, SortAscending, ParseSortDirection("ASC"))
	assert.Equal(t, SortDescending, ParseSortDirection(" desc "))
	assert.Equal(t, SortNone, ParseSortDirection("sideways"))
	assert.Equal(t, SortDescending, SortAscending.Toggle())
	assert.Equal(t, SortAscending, SortDescending.Toggle())
	assert.Equal(t, SortAscending, SortNone.Toggle())
	assert.Equal(t, "asc", SortAscending.String())
	assert.Empty(t, SortNone.String())
}

func TestViewState_TotalPages(t *testing.T) {
	assert.Equal(t, 4, ViewState[int]{PageSize: 10, TotalCount: 35}.TotalPages())
	assert.Equal(t, 0, ViewState[int]{PageSize: 10}.TotalPages())
	assert.Equal(t, 1, ViewState[int]{PageSize: 10, TotalCount: 10}.TotalPages())
}
