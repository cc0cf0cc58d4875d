package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/os2iot/iotconsole/internal/i18n"
	"github.com/os2iot/iotconsole/internal/pagedtable"
)

// DefaultPageSizeOptions are the page sizes cycled with +/-.
//
//nolint:gochecknoglobals // Read-only defaults.
var DefaultPageSizeOptions = []int{5, 10, 20, 50}

// Column describes one table column.
type Column[T any] struct {
	// Key is the backend field used for ordering.
	Key string
	// TitleKey is the i18n key of the header.
	TitleKey string
	Width    int
	Sortable bool
	Value    func(row T, tr i18n.Translator) string
}

// TableConfig configures a TableModel.
type TableConfig[T any] struct {
	TitleKey        string
	Columns         []Column[T]
	Fetcher         pagedtable.Fetcher[T]
	Filter          string
	PageSize        int
	PageSizeOptions []int
	Translator      i18n.Translator

	// Label names a row in confirmation and status messages.
	Label func(row T) string
	// Delete removes a row. Deletion is disabled when nil.
	Delete func(ctx context.Context, row T) error
	// Open returns a detail screen for a row. Enter is disabled when nil.
	Open func(row T) tea.Model
}

// deleteDoneMsg reports the outcome of a delete started by a table.
type deleteDoneMsg struct {
	tableID uint64
	label   string
	err     error
}

// TableModel renders a server-side paginated and sorted list.
type TableModel[T any] struct {
	cfg TableConfig[T]
	tr  i18n.Translator
	ctx context.Context

	table   *pagedtable.Table[T]
	grid    table.Model
	pager   paginator.Model
	loading *LoadingState
	rows    []T

	state     ViewState
	sortIdx   int
	sortDir   pagedtable.SortDirection
	sizeIdx   int
	pending   *T
	status    string
	statusErr bool

	width  int
	height int
}

// NewTableModel creates a table screen. Fetching starts in Init.
func NewTableModel[T any](ctx context.Context, cfg TableConfig[T]) *TableModel[T] {
	if cfg.Translator == nil {
		cfg.Translator = i18n.MustNew(i18n.English)
	}
	if len(cfg.PageSizeOptions) == 0 {
		cfg.PageSizeOptions = DefaultPageSizeOptions
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = pagedtable.DefaultPageSize
	}
	if !slices.Contains(cfg.PageSizeOptions, cfg.PageSize) {
		cfg.PageSizeOptions = append(slices.Clone(cfg.PageSizeOptions), cfg.PageSize)
		slices.Sort(cfg.PageSizeOptions)
	}
	if cfg.Label == nil {
		cfg.Label = func(T) string { return "" }
	}

	tr := cfg.Translator
	m := &TableModel[T]{
		cfg:     cfg,
		tr:      tr,
		ctx:     ctx,
		table:   pagedtable.NewTable(ctx, cfg.Fetcher, cfg.Filter, pagedtable.WithPageSize(cfg.PageSize)),
		pager:   paginator.New(),
		loading: NewLoadingState(tr.T(i18n.KeyLoading)),
		state:   ViewStateLoading,
		sortIdx: -1,
		sizeIdx: slices.Index(cfg.PageSizeOptions, cfg.PageSize),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.pager.Type = paginator.Dots
	m.pager.PerPage = cfg.PageSize

	cols := make([]table.Column, len(cfg.Columns))
	for i, c := range cfg.Columns {
		cols[i] = table.Column{Title: tr.T(c.TitleKey), Width: c.Width}
	}
	m.grid = table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(m.gridHeight()),
	)
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	m.grid.SetStyles(s)
	return m
}

// Init starts the spinner and the initial fetch.
func (m *TableModel[T]) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.table.Init())
}

// State returns the pagination state backing the view.
func (m *TableModel[T]) State() pagedtable.ViewState[T] {
	return m.table.State()
}

// Status returns the current status line.
func (m *TableModel[T]) Status() string {
	return m.status
}

// ViewState returns the screen state.
func (m *TableModel[T]) ViewState() ViewState {
	return m.state
}

// TableID returns the id of the underlying pagedtable.Table.
func (m *TableModel[T]) TableID() uint64 {
	return m.table.ID()
}

// Update handles fetch results, deletes and key presses.
func (m *TableModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pagedtable.FetchedMsg[T]:
		if m.table.Update(msg) {
			m.sync()
		}
		return m, nil

	case deleteDoneMsg:
		if msg.tableID != m.table.ID() {
			return m, nil
		}
		return m, m.handleDeleted(msg)

	case ReloadMsg:
		return m, m.table.Reload(0)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetHeight(m.gridHeight())
		m.grid.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.state == ViewStateConfirm {
			return m, m.handleConfirmKey(msg)
		}
		return m, m.handleKey(msg)
	}

	return m, m.loading.Update(msg)
}

func (m *TableModel[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := m.table.State()

	switch msg.String() {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		m.table.Stop()
		return tea.Quit
	case keyEsc:
		m.table.Stop()
		return Back()
	case keyLeft, keyH:
		if st.PageIndex > 0 {
			return m.table.PageChanged(st.PageIndex-1, st.PageSize)
		}
		return nil
	case keyRight, keyL:
		if st.PageIndex+1 < st.TotalPages() {
			return m.table.PageChanged(st.PageIndex+1, st.PageSize)
		}
		return nil
	case keyS:
		return m.nextSortColumn()
	case keyShiftS:
		return m.toggleSortDirection()
	case keyPlus:
		return m.changePageSize(1)
	case keyMinus:
		return m.changePageSize(-1)
	case keyR:
		m.status = ""
		return m.table.Reload(st.PageIndex)
	case keyEnter:
		if row, ok := m.selected(); ok && m.cfg.Open != nil {
			return Push(m.cfg.Open(row))
		}
		return nil
	case keyD:
		if row, ok := m.selected(); ok && m.cfg.Delete != nil {
			m.pending = &row
			m.state = ViewStateConfirm
			m.status = m.tr.T(i18n.KeyConfirmDelete, m.cfg.Label(row))
			m.statusErr = false
		}
		return nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return cmd
}

func (m *TableModel[T]) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case IsConfirmKey(msg):
		row := *m.pending
		m.pending = nil
		m.state = ViewStateList
		return m.deleteCmd(row)
	case IsCancelKey(msg):
		m.pending = nil
		m.state = ViewStateList
		m.status = ""
	case msg.String() == keyCtrlC:
		return tea.Quit
	}
	return nil
}

func (m *TableModel[T]) deleteCmd(row T) tea.Cmd {
	id := m.table.ID()
	label := m.cfg.Label(row)
	del := m.cfg.Delete
	ctx := m.ctx
	return func() tea.Msg {
		return deleteDoneMsg{tableID: id, label: label, err: del(ctx, row)}
	}
}

// handleDeleted reports the outcome. After a successful delete the first page
// is reloaded because the current page may no longer exist.
func (m *TableModel[T]) handleDeleted(msg deleteDoneMsg) tea.Cmd {
	if msg.err != nil {
		m.status = m.tr.T(i18n.KeyDeleteFailed, msg.err)
		m.statusErr = true
		return nil
	}
	m.status = m.tr.T(i18n.KeyDeleted, msg.label)
	m.statusErr = false
	return m.table.Reload(0)
}

func (m *TableModel[T]) sortable() []int {
	var idx []int
	for i, c := range m.cfg.Columns {
		if c.Sortable && c.Key != "" {
			idx = append(idx, i)
		}
	}
	return idx
}

// nextSortColumn moves to the next sortable column, wrapping to unsorted
// after the last one.
func (m *TableModel[T]) nextSortColumn() tea.Cmd {
	cols := m.sortable()
	if len(cols) == 0 {
		return nil
	}
	pos := slices.Index(cols, m.sortIdx)
	switch {
	case pos < 0:
		m.sortIdx = cols[0]
		m.sortDir = pagedtable.SortAscending
	case pos == len(cols)-1:
		m.sortIdx = -1
		m.sortDir = pagedtable.SortNone
		return m.table.SortChanged("", pagedtable.SortNone)
	default:
		m.sortIdx = cols[pos+1]
		m.sortDir = pagedtable.SortAscending
	}
	return m.table.SortChanged(m.cfg.Columns[m.sortIdx].Key, m.sortDir)
}

func (m *TableModel[T]) toggleSortDirection() tea.Cmd {
	if m.sortIdx < 0 {
		cols := m.sortable()
		if len(cols) == 0 {
			return nil
		}
		m.sortIdx = cols[0]
	}
	m.sortDir = m.sortDir.Toggle()
	return m.table.SortChanged(m.cfg.Columns[m.sortIdx].Key, m.sortDir)
}

// changePageSize keeps the first visible row on screen when the size changes.
func (m *TableModel[T]) changePageSize(step int) tea.Cmd {
	next := m.sizeIdx + step
	if next < 0 || next >= len(m.cfg.PageSizeOptions) {
		return nil
	}
	m.sizeIdx = next
	st := m.table.State()
	size := m.cfg.PageSizeOptions[next]
	first := st.PageIndex * st.PageSize
	return m.table.PageChanged(first/size, size)
}

func (m *TableModel[T]) selected() (T, bool) {
	var zero T
	if m.state == ViewStateLoading || len(m.rows) == 0 {
		return zero, false
	}
	i := m.grid.Cursor()
	if i < 0 || i >= len(m.rows) {
		return zero, false
	}
	return m.rows[i], true
}

// sync rebuilds the grid from the latest applied state.
func (m *TableModel[T]) sync() {
	st := m.table.State()
	m.rows = st.Rows
	if m.state == ViewStateLoading || m.state == ViewStateError {
		m.state = ViewStateList
	}
	if st.Failed {
		m.state = ViewStateError
	}

	rows := make([]table.Row, len(st.Rows))
	for i, r := range st.Rows {
		cells := make(table.Row, len(m.cfg.Columns))
		for j, c := range m.cfg.Columns {
			cells[j] = c.Value(r, m.tr)
		}
		rows[i] = cells
	}
	m.grid.SetRows(rows)
	if m.grid.Cursor() >= len(rows) {
		m.grid.SetCursor(max(len(rows)-1, 0))
	}

	m.pager.PerPage = st.PageSize
	m.pager.SetTotalPages(max(st.TotalCount, 1))
	m.pager.Page = min(st.PageIndex, max(m.pager.TotalPages-1, 0))
}

func (m *TableModel[T]) gridHeight() int {
	return max(m.height-chromeHeight, 3)
}

// View renders title, table, footer and help.
func (m *TableModel[T]) View() string {
	var b strings.Builder
	st := m.table.State()

	b.WriteString(TitleStyle.Render(m.tr.T(m.cfg.TitleKey)))
	b.WriteString("\n\n")

	switch {
	case m.state == ViewStateLoading:
		b.WriteString(m.loading.View())
		b.WriteString("\n")
	case st.Failed:
		b.WriteString(CriticalStyle.Render(m.tr.T(i18n.KeyFetchFailed)))
		b.WriteString("\n")
	case st.TotalCount == 0 && !st.Loading:
		b.WriteString(InfoStyle.Render(m.tr.T(i18n.KeyEmpty)))
		b.WriteString("\n")
	default:
		b.WriteString(m.grid.View())
		b.WriteString("\n")
	}

	b.WriteString(m.footer(st))
	b.WriteString("\n")
	if m.status != "" {
		style := OKStyle
		if m.statusErr {
			style = CriticalStyle
		} else if m.state == ViewStateConfirm {
			style = WarningStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(m.tr.T(i18n.KeyTableHelp)))
	return b.String()
}

func (m *TableModel[T]) footer(st pagedtable.ViewState[T]) string {
	parts := []string{
		m.tr.T(i18n.KeyPageOf, st.PageIndex+1, max(st.TotalPages(), 1)),
		m.tr.T(i18n.KeyTotal, st.TotalCount),
	}
	if m.sortIdx >= 0 && st.SortColumn != "" {
		dir := m.tr.T(i18n.KeyAscending)
		if st.SortDirection == pagedtable.SortDescending {
			dir = m.tr.T(i18n.KeyDescending)
		}
		parts = append(parts, m.tr.T(i18n.KeySortedBy, m.tr.T(m.cfg.Columns[m.sortIdx].TitleKey), dir))
	} else {
		parts = append(parts, m.tr.T(i18n.KeyUnsorted))
	}
	line := SubtleStyle.Render(strings.Join(parts, " · "))
	if st.Loading && m.state != ViewStateLoading {
		line += " " + m.loading.View()
	}
	if m.pager.TotalPages > 1 {
		line = fmt.Sprintf("%s  %s", m.pager.View(), line)
	}
	return line
}
