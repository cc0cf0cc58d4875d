// Package tui implements the interactive terminal console on top of Bubble Tea.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the screen a model is currently showing.
type ViewState int

const (
	// ViewStateLoading shows a spinner while the first data arrives.
	ViewStateLoading ViewState = iota
	// ViewStateList shows a table or list.
	ViewStateList
	// ViewStateDetail shows a single entity.
	ViewStateDetail
	// ViewStateConfirm asks the user to confirm a destructive action.
	ViewStateConfirm
	// ViewStateError shows an error with a retry hint.
	ViewStateError
	// ViewStateQuitting is entered just before the program exits.
	ViewStateQuitting
)

// Key bindings shared by all models.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyLeft     = "left"
	keyRight    = "right"
	keyH        = "h"
	keyL        = "l"
	keyS        = "s"
	keyShiftS   = "S"
	keyPlus     = "+"
	keyMinus    = "-"
	keyR        = "r"
	keyD        = "d"
	keyY        = "y"
	keyN        = "n"
	keyUp       = "up"
	keyDown     = "down"
	keyJ        = "j"
	keyK        = "k"
	keyPageUp   = "pgup"
	keyPageDown = "pgdown"
)

// Default terminal dimensions before the first WindowSizeMsg.
const (
	defaultWidth  = 100
	defaultHeight = 24

	// chromeHeight is the number of lines used by title, footer and help.
	chromeHeight = 7
)

// IsQuitKey reports whether msg asks to exit the program.
func IsQuitKey(msg tea.KeyMsg) bool {
	s := msg.String()
	return s == keyQuit || s == keyCtrlC
}

// IsBackKey reports whether msg asks to leave the current screen.
func IsBackKey(msg tea.KeyMsg) bool {
	return msg.String() == keyEsc
}

// IsConfirmKey reports whether msg answers yes to a pending question.
func IsConfirmKey(msg tea.KeyMsg) bool {
	return msg.String() == keyY
}

// IsCancelKey reports whether msg answers no to a pending question.
func IsCancelKey(msg tea.KeyMsg) bool {
	s := msg.String()
	return s == keyN || s == keyEsc
}

// LoadingState wraps a spinner with a message.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a spinner showing message.
func NewLoadingState(message string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingState{spinner: s, message: message}
}

// Init starts the spinner animation.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner. Messages for other spinners are ignored.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(tick)
	return cmd
}

// View renders the spinner followed by the message.
func (l *LoadingState) View() string {
	if l == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", l.spinner.View(), l.message)
}
