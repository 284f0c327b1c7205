// Package view turns entities into formatted table cells and detail fields.
// The TUI, the plain-text CLI output and the exporters all render from the
// same Table so that every surface shows identical values.
package view

import (
	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/format"
)

// Align is the horizontal alignment of a column.
type Align int

// Alignments.
const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Key   string // stable identifier used in JSON and spreadsheets
	Title string // Danish header
	Width int    // preferred width in terminal cells
	Align Align
}

// Cell is one formatted value. Tagged cells render as a coloured badge.
type Cell struct {
	Text   string
	Tone   billing.Tone
	Tagged bool
}

// Plain returns an untagged cell.
func Plain(text string) Cell {
	return Cell{Text: text}
}

// Tag returns a badge cell.
func Tag(text string, tone billing.Tone) Cell {
	return Cell{Text: text, Tone: tone, Tagged: true}
}

// Table is a rendered collection.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]Cell
}

// Field is one labelled value in a detail view.
type Field struct {
	Label string
	Value Cell
}

// Layout binds a collection type to its columns, row renderer and detail
// renderer.
type Layout[T any] struct {
	Collection billing.Collection
	Columns    []Column
	Row        func(item T, f *format.Formatter) []Cell
	Detail     func(item T, f *format.Formatter) []Field
}

// Table renders items with the layout.
func (l Layout[T]) Table(items []T, f *format.Formatter) Table {
	rows := make([][]Cell, len(items))
	for i, item := range items {
		rows[i] = l.Row(item, f)
	}
	return Table{Title: l.Collection.Title(), Columns: l.Columns, Rows: rows}
}

// Headers returns the column titles.
func (t Table) Headers() []string {
	h := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Title
	}
	return h
}

// Records returns the rows as plain strings.
func (t Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = c.Text
		}
		out[i] = rec
	}
	return out
}
