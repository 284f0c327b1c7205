package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/wattsonctl/internal/billing"
	listview "github.com/rshade/wattsonctl/internal/tui/list"
)

const menuTitleWidth = 20

type menuItem struct {
	collection  billing.Collection
	description string
}

//nolint:gochecknoglobals // Read-only menu text.
var menuDescriptions = map[billing.Collection]string{
	billing.CollectionSettlements:    "Afregningskørsler og korrektioner",
	billing.CollectionMeteringPoints: "Målepunkter og tilslutningstilstand",
	billing.CollectionCustomers:      "Private og erhvervskunder",
	billing.CollectionSupplies:       "Leverancer pr. kunde og målepunkt",
}

// MenuScreen is the home screen listing the four collections.
type MenuScreen struct {
	list     *listview.Model[menuItem]
	quitting bool
}

func newMenuScreen() *MenuScreen {
	items := make([]menuItem, len(billing.AllCollections))
	for i, c := range billing.AllCollections {
		items[i] = menuItem{collection: c, description: menuDescriptions[c]}
	}
	return &MenuScreen{list: listview.New(items, 0, renderMenuItem)}
}

func renderMenuItem(item menuItem, selected bool) string {
	cursor, style := "  ", LabelStyle
	if selected {
		cursor, style = HeaderStyle.Render("▸ "), HeaderStyle
	}
	return cursor + style.Width(menuTitleWidth).Render(item.collection.Title()) + SubtleStyle.Render(item.description)
}

// Init implements tea.Model.
func (m *MenuScreen) Init() tea.Cmd {
	return nil
}

// Route returns the home route.
func (m *MenuScreen) Route() Route {
	return Home()
}

// Update opens the selected collection on Enter or a digit shortcut.
func (m *MenuScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case keyQuit, keyEsc:
		m.quitting = true
		return m, tea.Quit
	case keyEnter:
		if item, found := m.list.Item(); found {
			return m, Navigate(ListRoute(item.collection), nil)
		}
		return m, nil
	}
	if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= m.list.Len() {
		m.list.Select(n - 1)
		return m, Navigate(ListRoute(billing.AllCollections[n-1]), nil)
	}
	_, cmd := m.list.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m *MenuScreen) View() string {
	if m.quitting {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		HeaderStyle.Render("WattsOn"),
		SubtleStyle.Render("Afregning og stamdata"),
		"",
		m.list.View(),
		"",
		SubtleStyle.Render(menuHelp),
	)
}
