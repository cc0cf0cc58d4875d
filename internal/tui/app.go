package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PushMsg opens Model on top of the current screen.
type PushMsg struct {
	Model tea.Model
}

// BackMsg closes the current screen.
type BackMsg struct{}

// ReloadMsg asks every open table to reload its first page.
type ReloadMsg struct{}

// Push returns a command that opens m.
func Push(m tea.Model) tea.Cmd {
	return func() tea.Msg { return PushMsg{Model: m} }
}

// Back returns a command that closes the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Reload returns a command that emits ReloadMsg.
func Reload() tea.Cmd {
	return func() tea.Msg { return ReloadMsg{} }
}

// App is the root model. It keeps a stack of screens: key presses go to the
// top screen, every other message is delivered to all screens so that
// background fetches of covered screens still complete.
type App struct {
	stack  []tea.Model
	width  int
	height int
}

// NewApp returns an App showing root.
func NewApp(root tea.Model) *App {
	return &App{stack: []tea.Model{root}, width: defaultWidth, height: defaultHeight}
}

// Init initializes the root screen.
func (a *App) Init() tea.Cmd {
	return a.top().Init()
}

// Depth returns the number of open screens.
func (a *App) Depth() int {
	return len(a.stack)
}

// Top returns the screen currently shown.
func (a *App) Top() tea.Model {
	return a.top()
}

func (a *App) top() tea.Model {
	return a.stack[len(a.stack)-1]
}

// Update routes msg through the screen stack.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PushMsg:
		a.stack = append(a.stack, msg.Model)
		resize := func() tea.Msg { return tea.WindowSizeMsg{Width: a.width, Height: a.height} }
		return a, tea.Batch(msg.Model.Init(), resize)

	case BackMsg:
		if len(a.stack) == 1 {
			return a, tea.Quit
		}
		a.stack = a.stack[:len(a.stack)-1]
		return a, nil

	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			return a, tea.Quit
		}
		next, cmd := a.top().Update(msg)
		a.stack[len(a.stack)-1] = next
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	cmds := make([]tea.Cmd, 0, len(a.stack))
	for i, screen := range a.stack {
		next, cmd := screen.Update(msg)
		a.stack[i] = next
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

// View renders the top screen.
func (a *App) View() string {
	return a.top().View()
}
