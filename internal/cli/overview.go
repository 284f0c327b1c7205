package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/config"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/listing"
)

// count is one labelled number of the overview.
type count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type overviewSection struct {
	Collection string  `json:"collection"`
	Title      string  `json:"title"`
	Total      int     `json:"total"`
	Breakdown  []count `json:"breakdown"`
}

// overview counts every collection of the backend.
type overview struct {
	Sections []overviewSection `json:"sections"`
}

func newOverviewCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "overview",
		Aliases: []string{"oversigt"},
		Short:   "Count the entities of every collection",
		Long: `Fetches all four collections concurrently and prints counts: settlement
runs and corrections per status, metering points per connection state,
private and company customers, and active and ended supplies.

Any failed fetch fails the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = config.FormatTable
			}
			if output != config.FormatTable && output != config.FormatJSON {
				return fmt.Errorf("invalid output format %q (valid: table, json)", output)
			}

			sess := sessionFrom(cmd)
			client, err := sess.newClient()
			if err != nil {
				return err
			}
			ov, err := fetchOverview(cmd.Context(), client)
			if err != nil {
				return reportFetchError(cmd, err)
			}
			if output == config.FormatJSON {
				return renderOverviewJSON(cmd.OutOrStdout(), ov)
			}
			return renderOverviewTable(cmd.OutOrStdout(), ov, sess.formatter())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table or json")
	return cmd
}

// fetchOverview fetches the four collections concurrently. The first failure
// cancels the remaining fetches and is returned.
func fetchOverview(ctx context.Context, fetcher api.Fetcher) (*overview, error) {
	var (
		docs      []billing.SettlementDocument
		points    []billing.MeteringPoint
		customers []billing.Customer
		supplies  []billing.Supply
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = fetcher.FetchSettlementDocuments(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		points, err = fetcher.FetchMeteringPoints(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = fetcher.FetchCustomers(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		supplies, err = fetcher.FetchSupplies(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(docs, points, customers, supplies), nil
}

// summarize builds the overview. Breakdown order follows the enum display
// order so output is stable.
func summarize(
	docs []billing.SettlementDocument,
	points []billing.MeteringPoint,
	customers []billing.Customer,
	supplies []billing.Supply,
) *overview {
	runs, corrections := listing.PartitionDocuments(docs)
	settlements := overviewSection{
		Collection: string(billing.CollectionSettlements),
		Title:      billing.CollectionSettlements.Title(),
		Total:      len(docs),
		Breakdown: []count{
			{Label: listing.SegmentRuns.String(), Count: len(runs)},
			{Label: listing.SegmentCorrections.String(), Count: len(corrections)},
		},
	}
	for _, s := range billing.AllDocumentStatuses {
		n := len(listing.Filter(docs, func(d billing.SettlementDocument) bool { return d.Status == s }))
		settlements.Breakdown = append(settlements.Breakdown, count{Label: "Status: " + s.String(), Count: n})
	}

	meteringPoints := overviewSection{
		Collection: string(billing.CollectionMeteringPoints),
		Title:      billing.CollectionMeteringPoints.Title(),
		Total:      len(points),
	}
	for _, st := range billing.AllConnectionStates {
		n := len(listing.Filter(points, func(m billing.MeteringPoint) bool { return m.ConnectionState == st }))
		meteringPoints.Breakdown = append(meteringPoints.Breakdown, count{Label: st.String(), Count: n})
	}

	customerSection := overviewSection{
		Collection: string(billing.CollectionCustomers),
		Title:      billing.CollectionCustomers.Title(),
		Total:      len(customers),
	}
	for _, k := range []billing.CustomerKind{billing.KindPrivate, billing.KindCompany} {
		n := len(listing.Filter(customers, func(c billing.Customer) bool { return c.Kind() == k }))
		customerSection.Breakdown = append(customerSection.Breakdown, count{Label: k.String(), Count: n})
	}

	active := len(listing.Filter(supplies, func(s billing.Supply) bool { return s.IsActive }))
	supplySection := overviewSection{
		Collection: string(billing.CollectionSupplies),
		Title:      billing.CollectionSupplies.Title(),
		Total:      len(supplies),
		Breakdown: []count{
			{Label: listing.ActivityActive.String(), Count: active},
			{Label: listing.ActivityEnded.String(), Count: len(supplies) - active},
		},
	}

	return &overview{Sections: []overviewSection{settlements, meteringPoints, customerSection, supplySection}}
}

func renderOverviewTable(w io.Writer, ov *overview, f *format.Formatter) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for i, s := range ov.Sections {
		if i > 0 {
			fmt.Fprintln(tw, "\t\t")
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", s.Title, f.Integer(int64(s.Total)))
		for _, c := range s.Breakdown {
			fmt.Fprintf(tw, "  %s\t%s\t\n", c.Label, f.Integer(int64(c.Count)))
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing overview: %w", err)
	}
	return nil
}

func renderOverviewJSON(w io.Writer, ov *overview) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ov); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
