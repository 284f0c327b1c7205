package cli

import (
	"context"
	"time"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/cli/pagination"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/listing"
	"github.com/rshade/wattsonctl/internal/logging"
	"github.com/rshade/wattsonctl/internal/tui"
	"github.com/rshade/wattsonctl/internal/view"
)

// loadRequest describes one non-interactive read of a collection.
type loadRequest struct {
	presets   tui.Presets
	params    pagination.Params
	paged     bool // false returns every filtered row, e.g. for export
	formatter *format.Formatter
}

// dataset is a fetched, filtered and sorted collection ready for output.
type dataset struct {
	Collection billing.Collection
	Items      []any // the page's entities, for JSON output
	Page       listing.Page
	Table      view.Table
	Filters    []string
}

// collectionRunner loads one collection without knowing its entity type.
type collectionRunner interface {
	Collection() billing.Collection
	SortFields() []string
	Load(ctx context.Context, fetcher api.Fetcher, req loadRequest) (*dataset, error)
}

type runner[T billing.Entity] struct {
	collection billing.Collection
	layout     view.Layout[T]
	sorter     *listing.Sorter[T]
	fetch      func(api.Fetcher, context.Context) ([]T, error)
	filter     func(tui.Presets) func([]T) []T
}

func (r runner[T]) Collection() billing.Collection { return r.collection }

func (r runner[T]) SortFields() []string { return r.sorter.FieldNames() }

// Load fetches the collection once, then filters, sorts and pages it the way
// the console page does.
func (r runner[T]) Load(ctx context.Context, fetcher api.Fetcher, req loadRequest) (*dataset, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	items, err := r.fetch(fetcher, ctx)
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "cli").
			Str("collection", string(r.collection)).
			Err(err).
			Msg("fetch failed")
		return nil, err
	}
	if dupErr := billing.CheckUnique(items); dupErr != nil {
		log.Warn().Ctx(ctx).Str("collection", string(r.collection)).Err(dupErr).Msg("duplicate identifiers")
	}

	visible := r.filter(req.presets)(items)

	params := req.params
	if !req.paged {
		params.Page = 1
		params.PageSize = max(len(visible), 1)
	}
	window, page, err := pagination.Apply(visible, params, r.sorter)
	if err != nil {
		return nil, err
	}

	log.Debug().Ctx(ctx).
		Str("collection", string(r.collection)).
		Int("fetched", len(items)).
		Int("visible", len(visible)).
		Int("page", page.Number).
		Dur("elapsed", time.Since(start)).
		Msg("collection loaded")

	return &dataset{
		Collection: r.collection,
		Items:      toAny(window),
		Page:       page,
		Table:      r.layout.Table(window, req.formatter),
		Filters:    describeFilters(r.collection, req.presets),
	}, nil
}

// runnerFor returns the runner of coll.
func runnerFor(coll billing.Collection) collectionRunner {
	switch coll {
	case billing.CollectionSettlements:
		return runner[billing.SettlementDocument]{
			collection: coll,
			layout:     view.Settlements,
			sorter:     listing.SettlementSorter(),
			fetch:      api.Fetcher.FetchSettlementDocuments,
			filter: func(p tui.Presets) func([]billing.SettlementDocument) []billing.SettlementDocument {
				return p.Settlements.Apply
			},
		}
	case billing.CollectionMeteringPoints:
		return runner[billing.MeteringPoint]{
			collection: coll,
			layout:     view.MeteringPoints,
			sorter:     listing.MeteringPointSorter(),
			fetch:      api.Fetcher.FetchMeteringPoints,
			filter: func(p tui.Presets) func([]billing.MeteringPoint) []billing.MeteringPoint {
				return p.MeteringPoints.Apply
			},
		}
	case billing.CollectionCustomers:
		return runner[billing.Customer]{
			collection: coll,
			layout:     view.Customers,
			sorter:     listing.CustomerSorter(),
			fetch:      api.Fetcher.FetchCustomers,
			filter: func(p tui.Presets) func([]billing.Customer) []billing.Customer {
				return p.Customers.Apply
			},
		}
	case billing.CollectionSupplies:
		return runner[billing.Supply]{
			collection: coll,
			layout:     view.Supplies,
			sorter:     listing.SupplySorter(),
			fetch:      api.Fetcher.FetchSupplies,
			filter: func(p tui.Presets) func([]billing.Supply) []billing.Supply {
				return p.Supplies.Apply
			},
		}
	default:
		return nil
	}
}

func toAny[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
