package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/wattsonctl/internal/logging"
)

// App is the root model. It owns the mounted screen and routes between
// screens on NavigateMsg. Every list mount gets a fresh sequence number and
// context; navigating away cancels the context, and results carrying an
// older sequence number are dropped.
type App struct {
	ctx    context.Context
	deps   Deps
	start  Route
	screen Screen
	seq    uint64
	width  int
	height int
	err    error
}

// NewApp creates the root model opening at start.
func NewApp(ctx context.Context, deps Deps, start Route) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	return &App{
		ctx:    ctx,
		deps:   deps,
		start:  start,
		screen: newMenuScreen(),
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Run starts the console and blocks until the user quits.
func Run(ctx context.Context, deps Deps, start Route, opts ...tea.ProgramOption) error {
	app := NewApp(ctx, deps, start)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return app.Err()
}

// Init mounts the start route.
func (a *App) Init() tea.Cmd {
	return a.navigate(NavigateMsg{To: a.start})
}

// Screen returns the mounted screen.
func (a *App) Screen() Screen {
	return a.screen
}

// Err returns the error that stopped the app, if any.
func (a *App) Err() error {
	return a.err
}

// Update routes messages to the mounted screen.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			a.unmount()
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case NavigateMsg:
		return a, a.navigate(msg)
	case sequencedMsg:
		if ms, ok := a.screen.(mountedScreen); !ok || ms.Seq() != msg.mountSeq() {
			logging.FromContext(a.ctx).Debug().
				Uint64("seq", msg.mountSeq()).
				Str("route", a.screen.Route().String()).
				Msg("dropping late fetch result")
			return a, nil
		}
	}

	model, cmd := a.screen.Update(msg)
	if s, ok := model.(Screen); ok {
		a.screen = s
	}
	return a, cmd
}

// View renders the mounted screen.
func (a *App) View() string {
	return a.screen.View()
}

func (a *App) unmount() {
	if ms, ok := a.screen.(mountedScreen); ok {
		ms.Unmount()
	}
}

func (a *App) navigate(msg NavigateMsg) tea.Cmd {
	a.unmount()
	log := logging.FromContext(a.ctx)
	log.Debug().Str("route", msg.To.String()).Msg("navigate")

	var next Screen
	switch {
	case msg.To.IsHome():
		next = newMenuScreen()
	case msg.To.IsDetail() && msg.Fields != nil:
		next = newDetailScreen(msg.To, msg.Fields)
	default:
		a.seq++
		page, err := newPage(a.ctx, a.seq, a.deps, msg.To)
		if err != nil {
			log.Error().Err(err).Str("route", msg.To.String()).Msg("cannot mount page")
			a.err = err
			return tea.Quit
		}
		next = page
	}

	a.screen = next
	next.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
	return next.Init()
}
