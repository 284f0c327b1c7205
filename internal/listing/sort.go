package listing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/wattsonctl/internal/billing"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Sort parsing errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'total:desc')")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
)

// SortField is a named ordering over T.
type SortField[T any] struct {
	Name  string // flag value, e.g. "total"
	Label string // display label, e.g. "Beløb"
	Less  func(a, b T) bool
}

// Sorter holds the sort fields a collection supports. The first field is the
// default.
type Sorter[T any] struct {
	fields []SortField[T]
}

// NewSorter creates a sorter over fields.
func NewSorter[T any](fields ...SortField[T]) *Sorter[T] {
	return &Sorter[T]{fields: fields}
}

// Fields returns the supported fields in cycle order.
func (s *Sorter[T]) Fields() []SortField[T] {
	return s.fields
}

// FieldNames returns the valid field names.
func (s *Sorter[T]) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Field looks up a field by name.
func (s *Sorter[T]) Field(name string) (SortField[T], bool) {
	for _, f := range s.fields {
		if f.Name == name {
			return f, true
		}
	}
	return SortField[T]{}, false
}

// Sort returns a stably sorted copy of items. Index i of Fields() is used;
// an out-of-range index returns a copy in the original order.
func (s *Sorter[T]) Sort(items []T, index int, desc bool) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	if index < 0 || index >= len(s.fields) {
		return sorted
	}
	less := s.fields[index].Less
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// SortByName sorts by a field name and order ("asc"/"desc").
func (s *Sorter[T]) SortByName(items []T, name, order string) ([]T, error) {
	for i, f := range s.fields {
		if f.Name == name {
			return s.Sort(items, i, order == SortOrderDesc), nil
		}
	}
	return nil, fmt.Errorf("%w %q (valid: %s)", ErrInvalidSortField, name, strings.Join(s.FieldNames(), ", "))
}

// ParseSort parses "field" or "field:order". An empty string yields "" and
// "asc".
//
//nolint:nonamedreturns // Named returns document the two strings.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return "", SortOrderAsc, nil
	}
	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field, order = strings.TrimSpace(parts[0]), SortOrderAsc
	case 2: //nolint:mnd // field:order
		field, order = strings.TrimSpace(parts[0]), strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}
	if field == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// SettlementSorter orders settlement documents.
func SettlementSorter() *Sorter[billing.SettlementDocument] {
	return NewSorter(
		SortField[billing.SettlementDocument]{Name: "calculated", Label: "Beregnet", Less: func(a, b billing.SettlementDocument) bool {
			return a.CalculatedAt.Before(b.CalculatedAt)
		}},
		SortField[billing.SettlementDocument]{Name: "period", Label: "Periode", Less: func(a, b billing.SettlementDocument) bool {
			return a.Period.Start.Before(b.Period.Start)
		}},
		SortField[billing.SettlementDocument]{Name: "total", Label: "Beløb", Less: func(a, b billing.SettlementDocument) bool {
			return a.TotalExclVat.LessThan(b.TotalExclVat)
		}},
		SortField[billing.SettlementDocument]{Name: "buyer", Label: "Køber", Less: func(a, b billing.SettlementDocument) bool {
			return strings.ToLower(a.Buyer.Name) < strings.ToLower(b.Buyer.Name)
		}},
	)
}

// MeteringPointSorter orders metering points.
func MeteringPointSorter() *Sorter[billing.MeteringPoint] {
	return NewSorter(
		SortField[billing.MeteringPoint]{Name: "gsrn", Label: "GSRN", Less: func(a, b billing.MeteringPoint) bool {
			return a.GSRN < b.GSRN
		}},
		SortField[billing.MeteringPoint]{Name: "grid-area", Label: "Netområde", Less: func(a, b billing.MeteringPoint) bool {
			return a.GridArea < b.GridArea
		}},
		SortField[billing.MeteringPoint]{Name: "state", Label: "Tilstand", Less: func(a, b billing.MeteringPoint) bool {
			return a.ConnectionState < b.ConnectionState
		}},
	)
}

// CustomerSorter orders customers.
func CustomerSorter() *Sorter[billing.Customer] {
	return NewSorter(
		SortField[billing.Customer]{Name: "name", Label: "Navn", Less: func(a, b billing.Customer) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}},
		SortField[billing.Customer]{Name: "created", Label: "Oprettet", Less: func(a, b billing.Customer) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}},
	)
}

// SupplySorter orders supplies.
func SupplySorter() *Sorter[billing.Supply] {
	return NewSorter(
		SortField[billing.Supply]{Name: "start", Label: "Fra", Less: func(a, b billing.Supply) bool {
			return a.SupplyStart.Before(b.SupplyStart)
		}},
		SortField[billing.Supply]{Name: "customer", Label: "Kunde", Less: func(a, b billing.Supply) bool {
			return strings.ToLower(a.CustomerName) < strings.ToLower(b.CustomerName)
		}},
		SortField[billing.Supply]{Name: "gsrn", Label: "GSRN", Less: func(a, b billing.Supply) bool {
			return a.GSRN < b.GSRN
		}},
	)
}
