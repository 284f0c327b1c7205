package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/listing"
	"github.com/rshade/wattsonctl/internal/tui"
)

// ErrFilterNotApplicable is returned when a filter flag is used with a
// collection it does not apply to.
var ErrFilterNotApplicable = errors.New("filter does not apply to this collection")

// filterFlags holds the raw filter flags of the list and export commands.
type filterFlags struct {
	status  string
	docType string
	state   string
	kind    string
	active  bool
	ended   bool
	search  string
}

// addFilterFlags registers the filter flags relevant to coll. An empty coll
// registers all of them, for commands whose collection is an argument.
func addFilterFlags(cmd *cobra.Command, ff *filterFlags, coll billing.Collection) {
	all := coll == ""
	if all || coll == billing.CollectionSettlements {
		cmd.Flags().StringVar(&ff.status, "status", "",
			"settlement status: beregnet, faktureret, justeret or andet")
		cmd.Flags().StringVar(&ff.docType, "type", "",
			"settlement documents to show: all, runs or corrections")
	}
	if all || coll == billing.CollectionMeteringPoints {
		cmd.Flags().StringVar(&ff.state, "state", "",
			"connection state: tilsluttet, afbrudt, ny, nedlagt or ukendt")
	}
	if all || coll == billing.CollectionCustomers {
		cmd.Flags().StringVar(&ff.kind, "kind", "", "customer kind: private or company")
	}
	if all || coll == billing.CollectionSupplies {
		cmd.Flags().BoolVar(&ff.active, "active", false, "only active supplies")
		cmd.Flags().BoolVar(&ff.ended, "ended", false, "only ended supplies")
		cmd.MarkFlagsMutuallyExclusive("active", "ended")
	}
	cmd.Flags().StringVar(&ff.search, "search", "", "free-text search, as on the console search bar")
}

// presets parses the flags into the filter state of coll's page.
func (ff filterFlags) presets(coll billing.Collection) (tui.Presets, error) {
	var p tui.Presets
	if err := ff.checkApplicable(coll); err != nil {
		return p, err
	}

	switch coll {
	case billing.CollectionSettlements:
		seg, ok := listing.ParseSegment(ff.docType)
		if !ok {
			return p, fmt.Errorf("invalid --type %q (valid: all, runs, corrections)", ff.docType)
		}
		status, err := parseStatusChoice(ff.status)
		if err != nil {
			return p, err
		}
		p.Settlements = listing.SettlementFilter{Segment: seg, Status: status, Query: ff.search}
	case billing.CollectionMeteringPoints:
		state, err := parseStateChoice(ff.state)
		if err != nil {
			return p, err
		}
		p.MeteringPoints = listing.MeteringPointFilter{State: state, Query: ff.search}
	case billing.CollectionCustomers:
		kind := listing.Any[billing.CustomerKind]()
		if ff.kind != "" {
			k, err := billing.ParseCustomerKind(ff.kind)
			if err != nil {
				return p, fmt.Errorf("invalid --kind: %w", err)
			}
			kind = listing.Only(k)
		}
		p.Customers = listing.CustomerFilter{Kind: kind, Query: ff.search}
	case billing.CollectionSupplies:
		if ff.active && ff.ended {
			return p, errors.New("--active and --ended are mutually exclusive")
		}
		activity := listing.ActivityAll
		switch {
		case ff.active:
			activity = listing.ActivityActive
		case ff.ended:
			activity = listing.ActivityEnded
		}
		p.Supplies = listing.SupplyFilter{Activity: activity, Query: ff.search}
	}
	return p, nil
}

func (ff filterFlags) checkApplicable(coll billing.Collection) error {
	reject := func(flag string) error {
		return fmt.Errorf("%w: --%s cannot be used with %s", ErrFilterNotApplicable, flag, coll)
	}
	if coll != billing.CollectionSettlements {
		if ff.status != "" {
			return reject("status")
		}
		if ff.docType != "" {
			return reject("type")
		}
	}
	if coll != billing.CollectionMeteringPoints && ff.state != "" {
		return reject("state")
	}
	if coll != billing.CollectionCustomers && ff.kind != "" {
		return reject("kind")
	}
	if coll != billing.CollectionSupplies {
		if ff.active {
			return reject("active")
		}
		if ff.ended {
			return reject("ended")
		}
	}
	return nil
}

func parseStatusChoice(s string) (listing.Choice[billing.DocumentStatus], error) {
	if strings.TrimSpace(s) == "" {
		return listing.Any[billing.DocumentStatus](), nil
	}
	status := billing.ParseDocumentStatus(s)
	if status == billing.StatusUnknown && !isUnknownAlias(s, "andet", "other") {
		return listing.Choice[billing.DocumentStatus]{},
			fmt.Errorf("invalid --status %q (valid: beregnet, faktureret, justeret, andet)", s)
	}
	return listing.Only(status), nil
}

func parseStateChoice(s string) (listing.Choice[billing.ConnectionState], error) {
	if strings.TrimSpace(s) == "" {
		return listing.Any[billing.ConnectionState](), nil
	}
	state := billing.ParseConnectionState(s)
	if state == billing.ConnectionUnknown && !isUnknownAlias(s, "ukendt", "unknown") {
		return listing.Choice[billing.ConnectionState]{},
			fmt.Errorf("invalid --state %q (valid: tilsluttet, afbrudt, ny, nedlagt, ukendt)", s)
	}
	return listing.Only(state), nil
}

func isUnknownAlias(s string, aliases ...string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range aliases {
		if s == a {
			return true
		}
	}
	return false
}

// describeFilters returns human-readable labels for the active filters of
// coll, as printed above tables and on the export info sheet.
func describeFilters(coll billing.Collection, p tui.Presets) []string {
	var out []string
	addQuery := func(q string) {
		if q != "" {
			out = append(out, fmt.Sprintf("Søg: %q", q))
		}
	}
	switch coll {
	case billing.CollectionSettlements:
		if p.Settlements.Segment != listing.SegmentAll {
			out = append(out, "Visning: "+p.Settlements.Segment.String())
		}
		if v, ok := p.Settlements.Status.Value(); ok {
			out = append(out, "Status: "+v.String())
		}
		addQuery(p.Settlements.Query)
	case billing.CollectionMeteringPoints:
		if v, ok := p.MeteringPoints.State.Value(); ok {
			out = append(out, "Tilstand: "+v.String())
		}
		addQuery(p.MeteringPoints.Query)
	case billing.CollectionCustomers:
		if v, ok := p.Customers.Kind.Value(); ok {
			out = append(out, "Type: "+v.String())
		}
		addQuery(p.Customers.Query)
	case billing.CollectionSupplies:
		if p.Supplies.Activity != listing.ActivityAll {
			out = append(out, "Status: "+p.Supplies.Activity.String())
		}
		addQuery(p.Supplies.Query)
	}
	return out
}
