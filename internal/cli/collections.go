package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/cli/pagination"
	"github.com/rshade/wattsonctl/internal/tui"
)

// collectionAliases are the Danish command names.
//
//nolint:gochecknoglobals // Read-only table.
var collectionAliases = map[billing.Collection][]string{
	billing.CollectionSettlements:    {"afregninger"},
	billing.CollectionMeteringPoints: {"maalepunkter", "målepunkter"},
	billing.CollectionCustomers:      {"kunder"},
	billing.CollectionSupplies:       {"leverancer"},
}

type collectionParams struct {
	filters filterFlags
	page    *pagination.Params
	output  string
}

// newCollectionCmd creates the list command of coll. In a terminal without
// --output it opens the console on that page with the filters applied.
func newCollectionCmd(coll billing.Collection) *cobra.Command {
	r := runnerFor(coll)
	params := collectionParams{page: pagination.NewParams(0)}

	cmd := &cobra.Command{
		Use:     string(coll),
		Aliases: collectionAliases[coll],
		Short:   "List " + strings.ReplaceAll(string(coll), "-", " "),
		Long: fmt.Sprintf(`Fetches %s and prints them.

In an interactive terminal the console opens on the page with the given
filters applied, unless --output is set. Larger sets are shown in pages of
--page-size rows.`, coll.Title()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCollection(cmd, r, params)
		},
	}

	addFilterFlags(cmd, &params.filters, coll)
	pagination.AddFlags(cmd, params.page, r.SortFields())
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "output format: table, json or ndjson")

	return cmd
}

func runCollection(cmd *cobra.Command, r collectionRunner, params collectionParams) error {
	ctx := cmd.Context()
	sess := sessionFrom(cmd)
	coll := r.Collection()

	presets, err := params.filters.presets(coll)
	if err != nil {
		return err
	}

	client, err := sess.newClient()
	if err != nil {
		return err
	}

	if !cmd.Flags().Changed("output") && interactive(cmd) {
		return tui.Run(ctx, sess.deps(client, presets), tui.ListRoute(coll))
	}

	outputFormat := params.output
	if outputFormat == "" {
		outputFormat = sess.cfg.Output.DefaultFormat
	}
	if err = validateOutputFormat(outputFormat); err != nil {
		return err
	}

	page := *params.page
	if !cmd.Flags().Changed("page-size") {
		page.PageSize = sess.cfg.UI.PageSize
	}
	if err = page.Validate(); err != nil {
		return err
	}

	ds, err := r.Load(ctx, client, loadRequest{
		presets:   presets,
		params:    page,
		paged:     true,
		formatter: sess.formatter(),
	})
	if err != nil {
		return reportFetchError(cmd, err)
	}
	return renderDataset(cmd.OutOrStdout(), outputFormat, ds)
}

// reportFetchError prints the error block of a failed fetch to stderr and
// returns an ExitError. Other errors are returned unchanged.
func reportFetchError(cmd *cobra.Command, err error) error {
	var fetchErr *api.FetchError
	if !errors.As(err, &fetchErr) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), tui.FetchErrorBlock(fetchErr, outputWidth(cmd)))
	return &ExitError{ExitCode: ExitFetch, Err: err, Reported: true}
}
