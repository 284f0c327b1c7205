package tui

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/wattsonctl/internal/view"
)

const tagPrefix = "● "

// renderTable draws t with the row at cursor highlighted. A negative cursor
// highlights nothing. Tagged cells keep their tone colour on every row.
func renderTable(t view.Table, cursor int) string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = cellText(c, columnWidth(t, j))
		}
		rows[i] = rec
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(t.Headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle(t, row, col, cursor)
		}).
		String()
}

func columnWidth(t view.Table, col int) int {
	if col < 0 || col >= len(t.Columns) {
		return 0
	}
	return t.Columns[col].Width
}

func cellText(c view.Cell, width int) string {
	if !c.Tagged {
		return clip(c.Text, width)
	}
	return tagPrefix + clip(c.Text, width-lipgloss.Width(tagPrefix))
}

func cellStyle(t view.Table, row, col, cursor int) lipgloss.Style {
	var s lipgloss.Style
	switch {
	case row == ltable.HeaderRow:
		s = TableHeaderStyle
	case row == cursor:
		s = TableSelectedStyle
	default:
		s = TableCellStyle
	}

	if col >= len(t.Columns) {
		return s
	}
	column := t.Columns[col]
	if column.Width > 0 {
		s = s.Width(column.Width + borderPadding)
	}
	if column.Align == view.AlignRight {
		s = s.Align(lipgloss.Right)
	}
	if row >= 0 && row < len(t.Rows) && col < len(t.Rows[row]) {
		if c := t.Rows[row][col]; c.Tagged {
			s = s.Bold(true).Foreground(toneColors[c.Tone])
		}
	}
	return s
}

// clip shortens s to width cells, ending in an ellipsis. Cell text carries
// no escape sequences, so trimming runes is safe.
func clip(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
