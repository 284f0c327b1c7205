package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rshade/wattsonctl/internal/cli/pagination"
	"github.com/rshade/wattsonctl/internal/config"
	"github.com/rshade/wattsonctl/internal/view"
)

const tabPadding = 2

// validateOutputFormat accepts table, json and ndjson.
func validateOutputFormat(f string) error {
	switch f {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: table, json, ndjson)", f)
	}
}

// renderDataset writes ds in the requested format.
func renderDataset(w io.Writer, outputFormat string, ds *dataset) error {
	switch outputFormat {
	case config.FormatJSON:
		return renderDatasetJSON(w, ds)
	case config.FormatNDJSON:
		return renderDatasetNDJSON(w, ds)
	default:
		return renderDatasetTable(w, ds)
	}
}

// renderDatasetTable prints the table with a title line, the active filters
// and a page footer when the set is paged.
func renderDatasetTable(w io.Writer, ds *dataset) error {
	title := fmt.Sprintf("%s (%d)", ds.Table.Title, ds.Page.TotalItems)
	fmt.Fprintln(w, title)
	if len(ds.Filters) > 0 {
		fmt.Fprintln(w, strings.Join(ds.Filters, " | "))
	}
	fmt.Fprintln(w)

	if err := writeTable(w, ds.Table); err != nil {
		return err
	}
	if len(ds.Table.Rows) == 0 {
		fmt.Fprintln(w, "Ingen rækker")
	}
	if ds.Page.Paginated {
		fmt.Fprintf(w, "\nSide %d/%d (brug --page for at bladre)\n", ds.Page.Number, ds.Page.TotalPages)
	}
	return nil
}

// writeTable prints headers and rows aligned with a tabwriter. Right-aligned
// columns keep their text as-is; tabwriter only pads to the left edge.
func writeTable(w io.Writer, t view.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Headers(), "\t"))
	fmt.Fprintln(tw, strings.Join(underline(t.Headers()), "\t"))
	for _, rec := range t.Records() {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

func underline(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = strings.Repeat("-", len([]rune(h)))
	}
	return out
}

type datasetJSON struct {
	Collection string          `json:"collection"`
	Filters    []string        `json:"filters,omitempty"`
	Items      []any           `json:"items"`
	Pagination pagination.Meta `json:"pagination"`
}

func renderDatasetJSON(w io.Writer, ds *dataset) error {
	out := datasetJSON{
		Collection: string(ds.Collection),
		Filters:    ds.Filters,
		Items:      ds.Items,
		Pagination: pagination.NewMeta(ds.Page),
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

type ndjsonSummary struct {
	Type       string          `json:"type"`
	Collection string          `json:"collection"`
	Filters    []string        `json:"filters,omitempty"`
	Pagination pagination.Meta `json:"pagination"`
}

// renderDatasetNDJSON emits a summary line with type "summary" followed by
// one line per entity.
func renderDatasetNDJSON(w io.Writer, ds *dataset) error {
	encoder := json.NewEncoder(w)
	summary := ndjsonSummary{
		Type:       "summary",
		Collection: string(ds.Collection),
		Filters:    ds.Filters,
		Pagination: pagination.NewMeta(ds.Page),
	}
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("encoding NDJSON summary: %w", err)
	}
	for _, item := range ds.Items {
		if err := encoder.Encode(item); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}
