// Package tui is the interactive Bubble Tea console: a menu, one list page
// per collection and a detail screen, tied together by a path router.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/wattsonctl/internal/billing"
)

// Layout defaults used before the first WindowSizeMsg arrives.
const (
	defaultWidth         = 120
	defaultHeight        = 30
	minHeight            = 5
	borderPadding        = 2
	filterInputCharLimit = 64
	filterInputWidth     = 40
	chromeHeight         = 8 // title, chips, table header, footer, help
)

// Palette.
//
//nolint:gochecknoglobals // Read-only colour table.
var (
	colorBorder   = lipgloss.Color("240")
	colorSubtle   = lipgloss.Color("245")
	colorAccent   = lipgloss.Color("63")
	colorSelected = lipgloss.Color("57")

	toneColors = map[billing.Tone]lipgloss.Color{
		billing.ToneNeutral: lipgloss.Color("245"),
		billing.ToneInfo:    lipgloss.Color("39"),
		billing.ToneSuccess: lipgloss.Color("42"),
		billing.ToneWarning: lipgloss.Color("214"),
		billing.ToneDanger:  lipgloss.Color("196"),
	}
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	LabelStyle  = lipgloss.NewStyle().Bold(true)
	ValueStyle  = lipgloss.NewStyle()
	SubtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	InfoStyle   = lipgloss.NewStyle().Foreground(toneColors[billing.ToneInfo])

	WarningStyle  = lipgloss.NewStyle().Foreground(toneColors[billing.ToneWarning])
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(toneColors[billing.ToneDanger])

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	ErrorBoxStyle = BoxStyle.BorderForeground(toneColors[billing.ToneDanger])

	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	TableCellStyle     = lipgloss.NewStyle().Padding(0, 1)
	TableSelectedStyle = TableCellStyle.Foreground(lipgloss.Color("229")).Background(colorSelected)
)

// ToneStyle returns the foreground style for a tone. Unknown tones are
// neutral.
func ToneStyle(t billing.Tone) lipgloss.Style {
	c, ok := toneColors[t]
	if !ok {
		c = toneColors[billing.ToneNeutral]
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// RenderTag renders a badge.
func RenderTag(text string, t billing.Tone) string {
	return ToneStyle(t).Render("● " + text)
}
