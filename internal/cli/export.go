package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/cli/pagination"
	"github.com/rshade/wattsonctl/internal/export"
)

type exportParams struct {
	filters filterFlags
	format  string
	out     string
	sort    string
}

func newExportCmd() *cobra.Command {
	var params exportParams

	cmd := &cobra.Command{
		Use:   "export <collection>",
		Short: "Export a collection to XLSX or PDF",
		Long: `Fetches a collection once, applies the filters and writes every matching
row to a workbook or a PDF report, formatted as on screen.

The format is taken from --format, or else from the extension of --out.`,
		Example: `  wattsonctl export settlements --status faktureret --out faktureret.xlsx
  wattsonctl export customers --kind company --format pdf --out erhverv.pdf`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: collectionNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], params)
		},
	}

	addFilterFlags(cmd, &params.filters, "")
	cmd.Flags().StringVar(&params.format, "format", "", "export format: xlsx or pdf")
	cmd.Flags().StringVar(&params.out, "out", "", "file to write")
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort as field[:asc|desc]")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, collArg string, params exportParams) error {
	ctx := cmd.Context()
	sess := sessionFrom(cmd)

	coll, err := billing.ParseCollection(collArg)
	if err != nil {
		return err
	}
	f, err := exportFormat(params)
	if err != nil {
		return err
	}
	presets, err := params.filters.presets(coll)
	if err != nil {
		return err
	}
	client, err := sess.newClient()
	if err != nil {
		return err
	}

	ds, err := runnerFor(coll).Load(ctx, client, loadRequest{
		presets:   presets,
		params:    pagination.Params{Sort: params.sort},
		paged:     false,
		formatter: sess.formatter(),
	})
	if err != nil {
		return reportFetchError(cmd, err)
	}

	meta := export.Meta{
		GeneratedAt: time.Now(),
		Source:      sess.baseURL(),
		Filters:     ds.Filters,
	}
	if err = export.WriteFile(params.out, f, ds.Table, meta); err != nil {
		return err
	}

	logger.Info().Ctx(ctx).
		Str("collection", string(coll)).
		Str("format", string(f)).
		Str("path", params.out).
		Int("rows", len(ds.Table.Rows)).
		Msg("export written")
	cmd.Printf("Wrote %d rows to %s\n", len(ds.Table.Rows), params.out)
	return nil
}

func exportFormat(params exportParams) (export.Format, error) {
	if params.format != "" {
		return export.ParseFormat(params.format)
	}
	if f, ok := export.FormatFromPath(params.out); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format from %q, use --format xlsx or pdf",
		export.ErrUnknownFormat, params.out)
}

func collectionNames() []string {
	names := make([]string, len(billing.AllCollections))
	for i, c := range billing.AllCollections {
		names[i] = string(c)
	}
	return names
}
