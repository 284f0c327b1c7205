package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the lifecycle state of a screen.
type ViewState int

// View states.
const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateDetail
	ViewStateQuitting
	ViewStateError
)

// String returns the state name, for logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}

// LoadingState is the spinner shown while a fetch is outstanding.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, message: "Henter data..."}
}

// WithMessage sets the text shown next to the spinner.
func (l *LoadingState) WithMessage(msg string) *LoadingState {
	l.message = msg
	return l
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return "Henter data..."
	}
	return l.spinner.View() + " " + l.message
}
