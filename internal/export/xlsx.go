package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/wattsonctl/internal/view"
)

const (
	infoSheet      = "Om udtrækket"
	maxSheetName   = 31
	minColumnWidth = 8
	headerFill     = "#DDEBF7"
)

// XLSX writes t as a workbook with one data sheet and an info sheet.
func XLSX(w io.Writer, t view.Table, meta Meta) error {
	f, err := buildWorkbook(t, meta)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // In-memory workbook.

	if err = f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func sheetName(title string) string {
	name := strings.NewReplacer("[", "", "]", "", ":", "", "*", "", "?", "", "/", "", "\\", "").Replace(title)
	if name == "" {
		name = "Data"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

func buildWorkbook(t view.Table, meta Meta) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := sheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	rightStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "right"}})
	if err != nil {
		return nil, fmt.Errorf("creating number style: %w", err)
	}

	headers := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Title
	}
	if err = f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range t.Records() {
		cell, cerr := excelize.CoordinatesToCellName(1, i+2) //nolint:mnd // Row 1 is the header.
		if cerr != nil {
			return nil, cerr
		}
		row := make([]any, len(rec))
		for j, v := range rec {
			row[j] = v
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if len(t.Columns) > 0 {
		if err = styleColumns(f, sheet, t, headerStyle, rightStyle); err != nil {
			return nil, err
		}
	}
	if err = writeInfoSheet(f, t, meta); err != nil {
		return nil, err
	}
	return f, nil
}

func styleColumns(f *excelize.File, sheet string, t view.Table, headerStyle, rightStyle int) error {
	lastRow := len(t.Rows) + 1
	first, _ := excelize.CoordinatesToCellName(1, 1)
	lastHeader, err := excelize.CoordinatesToCellName(len(t.Columns), 1)
	if err != nil {
		return err
	}
	if err = f.SetCellStyle(sheet, first, lastHeader, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, c := range t.Columns {
		name, cerr := excelize.ColumnNumberToName(i + 1)
		if cerr != nil {
			return cerr
		}
		if err = f.SetColWidth(sheet, name, name, float64(max(c.Width, minColumnWidth)+2)); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
		if c.Align == view.AlignRight && lastRow > 1 {
			if err = f.SetCellStyle(sheet, name+"2", fmt.Sprintf("%s%d", name, lastRow), rightStyle); err != nil {
				return fmt.Errorf("aligning column %s: %w", name, err)
			}
		}
	}

	if err = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}
	lastCell, err := excelize.CoordinatesToCellName(len(t.Columns), lastRow)
	if err != nil {
		return err
	}
	if err = f.AutoFilter(sheet, first+":"+lastCell, nil); err != nil {
		return fmt.Errorf("adding filter: %w", err)
	}
	return nil
}

func writeInfoSheet(f *excelize.File, t view.Table, meta Meta) error {
	if _, err := f.NewSheet(infoSheet); err != nil {
		return fmt.Errorf("creating info sheet: %w", err)
	}
	filters := "Ingen"
	if len(meta.Filters) > 0 {
		filters = strings.Join(meta.Filters, ", ")
	}
	rows := [][]any{
		{"Udtræk", t.Title},
		{"Genereret", meta.generatedAt().Format("02.01.2006 15.04")},
		{"Kilde", meta.Source},
		{"Filtre", filters},
		{"Rækker", len(t.Rows)},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(infoSheet, cell, &r); err != nil {
			return fmt.Errorf("writing info sheet: %w", err)
		}
	}
	if err := f.SetColWidth(infoSheet, "A", "A", 14); err != nil { //nolint:mnd // Label column.
		return fmt.Errorf("sizing info sheet: %w", err)
	}
	return nil
}
