// Package export writes a rendered table to an XLSX workbook or a PDF
// report. Values are taken verbatim from the view.Table, so exports carry
// the same locale formatting as the terminal.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rshade/wattsonctl/internal/view"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat is returned for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "xlsx" or "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w %q (valid: xlsx, pdf)", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	return f, err == nil
}

// Meta is printed alongside the table.
type Meta struct {
	GeneratedAt time.Time
	Source      string   // API base URL
	Filters     []string // human-readable filter chips
}

func (m Meta) generatedAt() time.Time {
	if m.GeneratedAt.IsZero() {
		return time.Now()
	}
	return m.GeneratedAt
}

// Write renders t in format f to w.
func Write(w io.Writer, f Format, t view.Table, meta Meta) error {
	switch f {
	case FormatXLSX:
		return XLSX(w, t, meta)
	case FormatPDF:
		return PDF(w, t, meta)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, f)
	}
}

// WriteFile renders t to path. The file is written next to path and renamed
// into place, so a failed export leaves no partial file behind.
func WriteFile(path string, f Format, t view.Table, meta Meta) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".wattsonctl-export-*")
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // No-op after a successful rename.

	if err = Write(tmp, f, t, meta); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
