package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected marks the highlighted row.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a keyboard-driven list that keeps the selected row visible.
type Model[T any] struct {
	items    []T
	render   RenderFunc[T]
	selected int
	offset   int
	height   int
}

// New creates a list showing height rows at a time.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	m := &Model[T]{items: items, render: render, height: max(height, 1)}
	m.clamp()
	return m
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.selected--
	case "down", "j":
		m.selected++
	case "pgup":
		m.selected -= m.height
	case "pgdown":
		m.selected += m.height
	case "home", "g":
		m.selected = 0
	case "end", "G":
		m.selected = len(m.items) - 1
	default:
		return m, nil
	}
	m.clamp()
	return m, nil
}

// clamp bounds the selection and scrolls the viewport to contain it.
func (m *Model[T]) clamp() {
	if len(m.items) == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = min(max(m.selected, 0), len(m.items)-1)
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.items)-m.height, 0))
}

// View renders the visible rows.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := min(m.offset+m.height, len(m.items))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items and keeps the selection in range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.clamp()
}

// SetHeight changes the number of visible rows.
func (m *Model[T]) SetHeight(height int) {
	m.height = max(height, 1)
	m.clamp()
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the selected index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// Offset returns the index of the first visible row.
func (m *Model[T]) Offset() int {
	return m.offset
}

// SelectedItem returns the selected item, or nil for an empty list.
func (m *Model[T]) SelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
