package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/view"
)

const (
	pdfFont       = "Arial"
	pdfMargin     = 10.0
	pdfRowHeight  = 6.0
	pdfFontSize   = 8.0
	pdfTitleSize  = 14.0
	pdfFooterSize = 7.0
)

type rgb struct{ r, g, b int }

//nolint:gochecknoglobals // Read-only colour table.
var pdfToneColors = map[billing.Tone]rgb{
	billing.ToneNeutral: {90, 90, 90},
	billing.ToneInfo:    {0, 102, 204},
	billing.ToneSuccess: {0, 128, 0},
	billing.ToneWarning: {204, 122, 0},
	billing.ToneDanger:  {192, 0, 0},
}

// PDF writes t as a landscape A4 report. The header row repeats on every
// page and tagged cells are coloured by tone.
func PDF(w io.Writer, t view.Table, meta Meta) error {
	pdf := buildPDF(t, meta)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func buildPDF(t view.Table, meta Meta) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr(t.Title), false)
	pdf.SetCreator("wattsonctl", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(pdfFont, "I", pdfFooterSize)
		pdf.SetTextColor(120, 120, 120) //nolint:mnd // Grey.
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("Side %d/{nb}", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	widths := columnWidths(pdf, t.Columns)
	pdf.AddPage()
	writeHeading(pdf, tr, t, meta)
	writeHeaderRow(pdf, tr, t.Columns, widths)

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - pdfMargin*2
	for _, row := range t.Rows {
		if pdf.GetY()+pdfRowHeight > limit {
			pdf.AddPage()
			writeHeaderRow(pdf, tr, t.Columns, widths)
		}
		writeRow(pdf, tr, t.Columns, widths, row)
	}
	if len(t.Rows) == 0 {
		pdf.SetFont(pdfFont, "I", pdfFontSize)
		pdf.CellFormat(0, pdfRowHeight, tr("Ingen rækker"), "", 1, "L", false, 0, "")
	}
	return pdf
}

// columnWidths scales the preferred terminal widths to the printable page
// width.
func columnWidths(pdf *gofpdf.Fpdf, cols []view.Column) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	printable := pageWidth - pdfMargin*2
	total := 0
	for _, c := range cols {
		total += max(c.Width, 1)
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = printable * float64(max(c.Width, 1)) / float64(max(total, 1))
	}
	return widths
}

func writeHeading(pdf *gofpdf.Fpdf, tr func(string) string, t view.Table, meta Meta) {
	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "") //nolint:mnd // Title line height.

	pdf.SetFont(pdfFont, "", pdfFontSize)
	lines := []string{
		"Genereret: " + meta.generatedAt().Format("02.01.2006 15.04"),
		fmt.Sprintf("Rækker: %d", len(t.Rows)),
	}
	if meta.Source != "" {
		lines = append(lines, "Kilde: "+meta.Source)
	}
	if len(meta.Filters) > 0 {
		lines = append(lines, "Filtre: "+strings.Join(meta.Filters, ", "))
	}
	for _, l := range lines {
		pdf.CellFormat(0, 4, tr(l), "", 1, "L", false, 0, "") //nolint:mnd // Meta line height.
	}
	pdf.Ln(2) //nolint:mnd // Gap before the table.
}

func writeHeaderRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []view.Column, widths []float64) {
	pdf.SetFont(pdfFont, "B", pdfFontSize)
	pdf.SetFillColor(221, 235, 247) //nolint:mnd // Same fill as the workbook header.
	pdf.SetTextColor(0, 0, 0)
	for i, c := range cols {
		pdf.CellFormat(widths[i], pdfRowHeight, tr(fitText(pdf, tr, c.Title, widths[i])), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []view.Column, widths []float64, row []view.Cell) {
	pdf.SetFont(pdfFont, "", pdfFontSize)
	for i := range cols {
		var c view.Cell
		if i < len(row) {
			c = row[i]
		}
		align := "L"
		if cols[i].Align == view.AlignRight {
			align = "R"
		}
		if c.Tagged {
			col := pdfToneColors[c.Tone]
			pdf.SetTextColor(col.r, col.g, col.b)
			pdf.SetFont(pdfFont, "B", pdfFontSize)
		}
		pdf.CellFormat(widths[i], pdfRowHeight, tr(fitText(pdf, tr, c.Text, widths[i])), "1", 0, align, false, 0, "")
		if c.Tagged {
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont(pdfFont, "", pdfFontSize)
		}
	}
	pdf.Ln(-1)
}

// fitText shortens s until it fits in width millimetres with cell padding.
func fitText(pdf *gofpdf.Fpdf, tr func(string) string, s string, width float64) string {
	const padding = 2.0
	if pdf.GetStringWidth(tr(s)) <= width-padding {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+"…")) > width-padding {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
