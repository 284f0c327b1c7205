package tui

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rshade/wattsonctl/internal/api"
	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/listing"
	"github.com/rshade/wattsonctl/internal/view"
)

// Deps are the collaborators every page is built from.
type Deps struct {
	Fetcher   api.Fetcher
	Formatter *format.Formatter
	PageSize  int
	Presets   Presets
}

// Presets are the filters a page opens with, e.g. from CLI flags.
type Presets struct {
	Settlements    listing.SettlementFilter
	MeteringPoints listing.MeteringPointFilter
	Customers      listing.CustomerFilter
	Supplies       listing.SupplyFilter
}

// newPage mounts the list page of route's collection. A detail route
// mounts the list too and opens the entity once the fetch completes.
func newPage(ctx context.Context, seq uint64, deps Deps, route Route) (mountedScreen, error) {
	if deps.Fetcher == nil {
		return nil, fmt.Errorf("no fetcher configured for %s", route)
	}
	switch route.Collection {
	case billing.CollectionSettlements:
		return withOpenID(newSettlementsPage(ctx, seq, deps), route.ID), nil
	case billing.CollectionMeteringPoints:
		return withOpenID(newMeteringPointsPage(ctx, seq, deps), route.ID), nil
	case billing.CollectionCustomers:
		return withOpenID(newCustomersPage(ctx, seq, deps), route.ID), nil
	case billing.CollectionSupplies:
		return withOpenID(newSuppliesPage(ctx, seq, deps), route.ID), nil
	default:
		return nil, fmt.Errorf("no page for %s", route)
	}
}

func withOpenID[T billing.Entity](p *ListPage[T], id uuid.UUID) *ListPage[T] {
	p.openID = id
	return p
}

func newSettlementsPage(ctx context.Context, seq uint64, deps Deps) *ListPage[billing.SettlementDocument] {
	return newListPage(ctx, seq, deps, pageConfig[billing.SettlementDocument]{
		layout: view.Settlements,
		fetch:  deps.Fetcher.FetchSettlementDocuments,
		sorter: listing.SettlementSorter(),
		filter: &settlementFilter{f: deps.Presets.Settlements},
	})
}

func newMeteringPointsPage(ctx context.Context, seq uint64, deps Deps) *ListPage[billing.MeteringPoint] {
	return newListPage(ctx, seq, deps, pageConfig[billing.MeteringPoint]{
		layout: view.MeteringPoints,
		fetch:  deps.Fetcher.FetchMeteringPoints,
		sorter: listing.MeteringPointSorter(),
		filter: &meteringPointFilter{f: deps.Presets.MeteringPoints},
	})
}

func newCustomersPage(ctx context.Context, seq uint64, deps Deps) *ListPage[billing.Customer] {
	return newListPage(ctx, seq, deps, pageConfig[billing.Customer]{
		layout: view.Customers,
		fetch:  deps.Fetcher.FetchCustomers,
		sorter: listing.CustomerSorter(),
		filter: &customerFilter{f: deps.Presets.Customers},
	})
}

func newSuppliesPage(ctx context.Context, seq uint64, deps Deps) *ListPage[billing.Supply] {
	return newListPage(ctx, seq, deps, pageConfig[billing.Supply]{
		layout: view.Supplies,
		fetch:  deps.Fetcher.FetchSupplies,
		sorter: listing.SupplySorter(),
		filter: &supplyFilter{f: deps.Presets.Supplies},
	})
}

func choiceLabel[T interface {
	comparable
	fmt.Stringer
}](c listing.Choice[T]) string {
	if v, ok := c.Value(); ok {
		return v.String()
	}
	return "Alle"
}

type settlementFilter struct {
	f listing.SettlementFilter
}

func (a *settlementFilter) Apply(items []billing.SettlementDocument) []billing.SettlementDocument {
	return a.f.Apply(items)
}

func (a *settlementFilter) Query() string { return a.f.Query }
func (a *settlementFilter) SetQuery(q string) { a.f.Query = q }

func (a *settlementFilter) Cycle() bool {
	a.f.Status = a.f.Status.Next(billing.AllDocumentStatuses)
	return true
}

func (a *settlementFilter) CycleSegment() bool {
	switch a.f.Segment {
	case listing.SegmentAll:
		a.f.Segment = listing.SegmentRuns
	case listing.SegmentRuns:
		a.f.Segment = listing.SegmentCorrections
	case listing.SegmentCorrections:
		a.f.Segment = listing.SegmentAll
	}
	return true
}

func (a *settlementFilter) Summary() []string {
	return []string{
		"[tab] Visning: " + a.f.Segment.String(),
		"[f] Status: " + choiceLabel(a.f.Status),
	}
}

type meteringPointFilter struct {
	f listing.MeteringPointFilter
}

func (a *meteringPointFilter) Apply(items []billing.MeteringPoint) []billing.MeteringPoint {
	return a.f.Apply(items)
}

func (a *meteringPointFilter) Query() string { return a.f.Query }
func (a *meteringPointFilter) SetQuery(q string) { a.f.Query = q }
func (a *meteringPointFilter) CycleSegment() bool { return false }

func (a *meteringPointFilter) Cycle() bool {
	a.f.State = a.f.State.Next(billing.AllConnectionStates)
	return true
}

func (a *meteringPointFilter) Summary() []string {
	return []string{"[f] Tilstand: " + choiceLabel(a.f.State)}
}

type customerFilter struct {
	f listing.CustomerFilter
}

func (a *customerFilter) Apply(items []billing.Customer) []billing.Customer {
	return a.f.Apply(items)
}

func (a *customerFilter) Query() string { return a.f.Query }
func (a *customerFilter) SetQuery(q string) { a.f.Query = q }
func (a *customerFilter) CycleSegment() bool { return false }

func (a *customerFilter) Cycle() bool {
	a.f.Kind = a.f.Kind.Next([]billing.CustomerKind{billing.KindPrivate, billing.KindCompany})
	return true
}

func (a *customerFilter) Summary() []string {
	return []string{"[f] Type: " + choiceLabel(a.f.Kind)}
}

type supplyFilter struct {
	f listing.SupplyFilter
}

func (a *supplyFilter) Apply(items []billing.Supply) []billing.Supply {
	return a.f.Apply(items)
}

func (a *supplyFilter) Query() string { return a.f.Query }
func (a *supplyFilter) SetQuery(q string) { a.f.Query = q }
func (a *supplyFilter) CycleSegment() bool { return false }

func (a *supplyFilter) Cycle() bool {
	a.f.Activity = a.f.Activity.Next()
	return true
}

func (a *supplyFilter) Summary() []string {
	return []string{"[f] Status: " + a.f.Activity.String()}
}
