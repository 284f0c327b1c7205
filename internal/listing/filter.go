package listing

import (
	"strings"

	"github.com/rshade/wattsonctl/internal/billing"
)

// Choice is a filter selection: either "all" or one specific value.
type Choice[T comparable] struct {
	value T
	set   bool
}

// Any returns the "all" choice.
func Any[T comparable]() Choice[T] {
	return Choice[T]{}
}

// Only returns a choice matching exactly v.
func Only[T comparable](v T) Choice[T] {
	return Choice[T]{value: v, set: true}
}

// IsAll reports whether the choice matches everything.
func (c Choice[T]) IsAll() bool {
	return !c.set
}

// Value returns the selected value and whether one is selected.
func (c Choice[T]) Value() (T, bool) {
	return c.value, c.set
}

// Matches reports whether v passes the choice.
func (c Choice[T]) Matches(v T) bool {
	return !c.set || c.value == v
}

// Next cycles all -> options[0] -> ... -> options[n-1] -> all.
func (c Choice[T]) Next(options []T) Choice[T] {
	if len(options) == 0 {
		return Any[T]()
	}
	if !c.set {
		return Only(options[0])
	}
	for i, o := range options {
		if o == c.value {
			if i+1 < len(options) {
				return Only(options[i+1])
			}
			return Any[T]()
		}
	}
	return Any[T]()
}

// Filter returns the items for which keep returns true. The result is a new
// slice, never nil.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// ContainsFold reports whether any field contains query, ignoring case. An
// empty query matches everything.
func ContainsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Segment splits settlement documents into runs and corrections.
type Segment int

// Segments.
const (
	SegmentAll Segment = iota
	SegmentRuns
	SegmentCorrections
)

// String returns the Danish tab label.
func (s Segment) String() string {
	switch s {
	case SegmentRuns:
		return "Kørsler"
	case SegmentCorrections:
		return "Korrektioner"
	case SegmentAll:
		return "Alle"
	default:
		return "Alle"
	}
}

// ParseSegment accepts "all", "runs" and "corrections".
func ParseSegment(s string) (Segment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "alle":
		return SegmentAll, true
	case "runs", "run", "kørsler":
		return SegmentRuns, true
	case "corrections", "correction", "korrektioner":
		return SegmentCorrections, true
	default:
		return SegmentAll, false
	}
}

// PartitionDocuments splits docs into original runs and corrections. Every
// document lands in exactly one of the two slices.
func PartitionDocuments(docs []billing.SettlementDocument) (runs, corrections []billing.SettlementDocument) {
	runs = make([]billing.SettlementDocument, 0, len(docs))
	corrections = make([]billing.SettlementDocument, 0)
	for _, d := range docs {
		if d.DocumentType.IsRun() {
			runs = append(runs, d)
		} else {
			corrections = append(corrections, d)
		}
	}
	return runs, corrections
}

// SettlementFilter is the filter state of the settlements page.
type SettlementFilter struct {
	Segment Segment
	Status  Choice[billing.DocumentStatus]
	Query   string
}

// Apply returns the documents passing the filter.
func (f SettlementFilter) Apply(docs []billing.SettlementDocument) []billing.SettlementDocument {
	source := docs
	switch f.Segment {
	case SegmentRuns:
		source, _ = PartitionDocuments(docs)
	case SegmentCorrections:
		_, source = PartitionDocuments(docs)
	case SegmentAll:
	}
	return Filter(source, func(d billing.SettlementDocument) bool {
		return f.Status.Matches(d.Status) &&
			ContainsFold(f.Query, d.MeteringPoint.GSRN, d.Buyer.Name, d.DocumentNumber)
	})
}

// MeteringPointFilter is the filter state of the metering points page.
type MeteringPointFilter struct {
	State Choice[billing.ConnectionState]
	Query string
}

// Apply returns the metering points passing the filter.
func (f MeteringPointFilter) Apply(points []billing.MeteringPoint) []billing.MeteringPoint {
	return Filter(points, func(m billing.MeteringPoint) bool {
		return f.State.Matches(m.ConnectionState) &&
			ContainsFold(f.Query, m.GSRN, m.GridArea, m.Type)
	})
}

// CustomerFilter is the filter state of the customers page.
type CustomerFilter struct {
	Kind  Choice[billing.CustomerKind]
	Query string
}

// Apply returns the customers passing the filter. The query matches name,
// email, CPR and CVR.
func (f CustomerFilter) Apply(customers []billing.Customer) []billing.Customer {
	return Filter(customers, func(c billing.Customer) bool {
		return f.Kind.Matches(c.Kind()) &&
			ContainsFold(f.Query, c.Name, c.Email, c.CPR, c.CVR)
	})
}

// Activity filters supplies by whether they are active.
type Activity int

// Activity values.
const (
	ActivityAll Activity = iota
	ActivityActive
	ActivityEnded
)

// String returns the Danish label.
func (a Activity) String() string {
	switch a {
	case ActivityActive:
		return "Aktive"
	case ActivityEnded:
		return "Ophørte"
	case ActivityAll:
		return "Alle"
	default:
		return "Alle"
	}
}

// Next cycles all -> active -> ended -> all.
func (a Activity) Next() Activity {
	switch a {
	case ActivityAll:
		return ActivityActive
	case ActivityActive:
		return ActivityEnded
	case ActivityEnded:
		return ActivityAll
	default:
		return ActivityAll
	}
}

// SupplyFilter is the filter state of the supplies page.
type SupplyFilter struct {
	Activity Activity
	Query    string
}

// Apply returns the supplies passing the filter.
func (f SupplyFilter) Apply(supplies []billing.Supply) []billing.Supply {
	return Filter(supplies, func(s billing.Supply) bool {
		switch f.Activity {
		case ActivityActive:
			if !s.IsActive {
				return false
			}
		case ActivityEnded:
			if s.IsActive {
				return false
			}
		case ActivityAll:
		}
		return ContainsFold(f.Query, s.CustomerName, s.GSRN)
	})
}
