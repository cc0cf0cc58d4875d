package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/os2iot/iotconsole/internal/i18n"
)

// MenuEntry is one selectable view.
type MenuEntry struct {
	Name     string
	TitleKey string
	Open     func() tea.Model
}

// Menu lets the user pick an entity view.
type Menu struct {
	entries []MenuEntry
	tr      i18n.Translator
	cursor  int
}

// NewMenu creates a menu over entries.
func NewMenu(tr i18n.Translator, entries []MenuEntry) *Menu {
	return &Menu{entries: entries, tr: tr}
}

// Cursor returns the index of the highlighted entry.
func (m *Menu) Cursor() int {
	return m.cursor
}

// Init implements tea.Model.
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and opens the chosen entry.
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.entries) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case keyQuit, keyCtrlC, keyEsc:
		return m, tea.Quit
	case keyUp, keyK:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, keyJ:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case keyEnter:
		return m, Push(m.entries[m.cursor].Open())
	}
	return m, nil
}

// View lists the entries.
func (m *Menu) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.tr.T(i18n.KeyAppTitle)))
	b.WriteString("\n\n")
	for i, e := range m.entries {
		if i == m.cursor {
			b.WriteString(MenuSelectedStyle.Render("> " + m.tr.T(e.TitleKey)))
		} else {
			b.WriteString(MenuItemStyle.Render("  " + m.tr.T(e.TitleKey)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.tr.T(i18n.KeyMenuHelp)))
	return b.String()
}
