package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected is true for the item under the
// cursor.
type RenderFunc[T any] func(item T, selected bool) string

// Model is a cursor over a slice of items that renders only the rows fitting
// in its height.
type Model[T any] struct {
	items  []T
	render RenderFunc[T]
	cursor int
	offset int // first rendered item
	height int
}

// New creates a list of items rendered by render, height rows tall. A
// height below 1 shows every item.
func New[T any](items []T, height int, render RenderFunc[T]) *Model[T] {
	return &Model[T]{items: items, render: render, height: height}
}

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on arrow, vim, paging and home/end keys.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.Select(m.cursor - 1)
		case "down", "j":
			m.Select(m.cursor + 1)
		case "pgup":
			m.Select(m.cursor - m.pageStep())
		case "pgdown":
			m.Select(m.cursor + m.pageStep())
		case "home", "g":
			m.Select(0)
		case "end", "G":
			m.Select(len(m.items) - 1)
		}
	case tea.WindowSizeMsg:
		m.SetHeight(msg.Height)
	}
	return m, nil
}

func (m *Model[T]) pageStep() int {
	if m.height < 1 {
		return len(m.items)
	}
	return m.height
}

// View renders the window around the cursor.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}
	end := len(m.items)
	if m.height > 0 {
		end = min(m.offset+m.height, len(m.items))
	}
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// Len returns the number of items.
func (m *Model[T]) Len() int {
	return len(m.items)
}

// Cursor returns the selected index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Select moves the cursor to index, clamped to the list bounds, and
// scrolls it into view.
func (m *Model[T]) Select(index int) {
	if len(m.items) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = max(0, min(index, len(m.items)-1))
	m.scroll()
}

// SetHeight resizes the window.
func (m *Model[T]) SetHeight(h int) {
	m.height = h
	m.scroll()
}

func (m *Model[T]) scroll() {
	if m.height < 1 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// Item returns the item under the cursor, or false for an empty list.
func (m *Model[T]) Item() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}
