package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/wattsonctl/internal/view"
)

// detailChrome is the number of lines around the viewport: title, blank,
// box border and help.
const detailChrome = 6

// DetailScreen is the boxed key/value view of one entity.
type DetailScreen struct {
	route    Route
	fields   []view.Field
	viewport viewport.Model
	state    ViewState
}

func newDetailScreen(route Route, fields []view.Field) *DetailScreen {
	d := &DetailScreen{route: route, fields: fields, state: ViewStateDetail}
	d.viewport = viewport.New(defaultWidth-borderPadding*2, defaultHeight-detailChrome)
	d.viewport.SetContent(renderFields(fields))
	return d
}

// Init implements tea.Model.
func (d *DetailScreen) Init() tea.Cmd {
	return nil
}

// Route returns the detail route.
func (d *DetailScreen) Route() Route {
	return d.route
}

// Fields returns the rendered fields.
func (d *DetailScreen) Fields() []view.Field {
	return d.fields
}

// Update handles resizes, scrolling and the back and quit keys.
func (d *DetailScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.viewport.Width = max(msg.Width-borderPadding*2, filterInputWidth)
		d.viewport.Height = max(msg.Height-detailChrome, minHeight)
		return d, nil
	case tea.KeyMsg:
		switch msg.String() {
		case keyEsc:
			return d, Navigate(d.route.List(), nil)
		case keyQuit:
			d.state = ViewStateQuitting
			return d, tea.Quit
		}
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the box.
func (d *DetailScreen) View() string {
	if d.state == ViewStateQuitting {
		return ""
	}
	title := HeaderStyle.Render(d.route.Collection.Title()) + SubtleStyle.Render("  "+d.route.ID.String())
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		BoxStyle.Render(d.viewport.View()),
		SubtleStyle.Render(detailHelp),
	)
}

func renderFields(fields []view.Field) string {
	if len(fields) == 0 {
		return SubtleStyle.Render("Ingen oplysninger")
	}
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.Label))
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(LabelStyle.Width(labelWidth + borderPadding).Render(f.Label))
		if f.Value.Tagged {
			b.WriteString(RenderTag(f.Value.Text, f.Value.Tone))
		} else {
			b.WriteString(ValueStyle.Render(f.Value.Text))
		}
	}
	return b.String()
}
