package listing

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/billing"
)

func sampleDocuments() []billing.SettlementDocument {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(i int, typ billing.DocumentType, status billing.DocumentStatus) billing.SettlementDocument {
		return billing.SettlementDocument{
			ID:            uuid.New(),
			DocumentType:  typ,
			Status:        status,
			MeteringPoint: billing.MeteringPointRef{GSRN: fmt.Sprintf("5713131804000%05d", i)},
			Buyer:         billing.BuyerRef{Name: fmt.Sprintf("Kunde %d", i)},
			Period:        billing.Period{Start: base.AddDate(0, i, 0)},
			TotalExclVat:  decimal.NewFromInt(int64(100 * i)),
			CalculatedAt:  base.AddDate(0, i, 3),
		}
	}
	return []billing.SettlementDocument{
		mk(1, billing.DocumentTypeSettlement, billing.StatusCalculated),
		mk(2, billing.DocumentTypeSettlement, billing.StatusInvoiced),
		mk(3, billing.DocumentTypeCreditNote, billing.StatusAdjusted),
		mk(4, billing.DocumentTypeDebitNote, billing.StatusCalculated),
		mk(5, billing.DocumentTypeUnknown, billing.StatusUnknown),
		mk(6, billing.DocumentTypeSettlement, billing.StatusInvoiced),
	}
}

func TestPartitionDocuments_DisjointAndCovering(t *testing.T) {
	docs := sampleDocuments()
	runs, corrections := PartitionDocuments(docs)

	assert.Len(t, runs, 3)
	assert.Len(t, corrections, 3)
	assert.Equal(t, len(docs), len(runs)+len(corrections))

	seen := map[uuid.UUID]int{}
	for _, d := range runs {
		assert.True(t, d.DocumentType.IsRun())
		seen[d.ID]++
	}
	for _, d := range corrections {
		assert.False(t, d.DocumentType.IsRun())
		seen[d.ID]++
	}
	for _, d := range docs {
		assert.Equal(t, 1, seen[d.ID], "document %s must appear exactly once", d.ID)
	}
}

func TestPartitionDocuments_Empty(t *testing.T) {
	runs, corrections := PartitionDocuments(nil)
	assert.NotNil(t, runs)
	assert.NotNil(t, corrections)
	assert.Empty(t, runs)
	assert.Empty(t, corrections)
}

func TestSettlementFilter_Status(t *testing.T) {
	docs := sampleDocuments()

	all := SettlementFilter{Status: Any[billing.DocumentStatus]()}.Apply(docs)
	assert.Len(t, all, len(docs))

	for _, status := range billing.AllDocumentStatuses {
		t.Run(status.String(), func(t *testing.T) {
			got := SettlementFilter{Status: Only(status)}.Apply(docs)
			want := 0
			for _, d := range docs {
				if d.Status == status {
					want++
				}
			}
			require.Len(t, got, want)
			for _, d := range got {
				assert.Equal(t, status, d.Status)
			}
		})
	}
}

func TestSettlementFilter_SegmentAndQuery(t *testing.T) {
	docs := sampleDocuments()

	runs := SettlementFilter{Segment: SegmentRuns, Status: Only(billing.StatusInvoiced)}.Apply(docs)
	assert.Len(t, runs, 2)

	corr := SettlementFilter{Segment: SegmentCorrections, Query: "kunde 3"}.Apply(docs)
	require.Len(t, corr, 1)
	assert.Equal(t, billing.DocumentTypeCreditNote, corr[0].DocumentType)
}

func TestCustomerFilter_Query(t *testing.T) {
	customers := []billing.Customer{
		{ID: uuid.New(), Name: "Jens Hansen", IsPrivate: true, CPR: "0101801234", Email: "jens@example.dk"},
		{ID: uuid.New(), Name: "Hansen ApS", IsCompany: true, CVR: "12345678"},
		{ID: uuid.New(), Name: "Mette Olsen", IsPrivate: true},
	}

	tests := []struct {
		name   string
		filter CustomerFilter
		want   []string
	}{
		{"empty query", CustomerFilter{}, []string{"Jens Hansen", "Hansen ApS", "Mette Olsen"}},
		{"case-insensitive name", CustomerFilter{Query: "HANSEN"}, []string{"Jens Hansen", "Hansen ApS"}},
		{"email", CustomerFilter{Query: "example.dk"}, []string{"Jens Hansen"}},
		{"cvr", CustomerFilter{Query: "345678"}, []string{"Hansen ApS"}},
		{"cpr", CustomerFilter{Query: "010180"}, []string{"Jens Hansen"}},
		{"kind", CustomerFilter{Kind: Only(billing.KindCompany)}, []string{"Hansen ApS"}},
		{"no match", CustomerFilter{Query: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(customers)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestMeteringPointFilter(t *testing.T) {
	points := []billing.MeteringPoint{
		{ID: uuid.New(), GSRN: "571313180400000001", GridArea: "DK1", ConnectionState: billing.ConnectionConnected},
		{ID: uuid.New(), GSRN: "571313180400000002", GridArea: "DK2", ConnectionState: billing.ConnectionClosedDown},
	}
	got := MeteringPointFilter{State: Only(billing.ConnectionClosedDown)}.Apply(points)
	require.Len(t, got, 1)
	assert.Equal(t, "DK2", got[0].GridArea)

	got = MeteringPointFilter{Query: "dk1"}.Apply(points)
	require.Len(t, got, 1)
}

func TestSupplyFilter_Activity(t *testing.T) {
	supplies := []billing.Supply{
		{ID: uuid.New(), CustomerName: "A", IsActive: true},
		{ID: uuid.New(), CustomerName: "B", IsActive: false},
	}
	assert.Len(t, SupplyFilter{}.Apply(supplies), 2)
	assert.Len(t, SupplyFilter{Activity: ActivityActive}.Apply(supplies), 1)
	assert.Len(t, SupplyFilter{Activity: ActivityEnded}.Apply(supplies), 1)
	assert.Equal(t, ActivityActive, ActivityAll.Next())
	assert.Equal(t, ActivityAll, ActivityEnded.Next())
}

func TestChoice_Next(t *testing.T) {
	opts := []billing.DocumentStatus{billing.StatusCalculated, billing.StatusInvoiced}
	c := Any[billing.DocumentStatus]()

	c = c.Next(opts)
	v, ok := c.Value()
	require.True(t, ok)
	assert.Equal(t, billing.StatusCalculated, v)

	c = c.Next(opts)
	v, _ = c.Value()
	assert.Equal(t, billing.StatusInvoiced, v)

	c = c.Next(opts)
	assert.True(t, c.IsAll())
}

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	first, page := Paginate(items, 1, DefaultPageSize)
	assert.Len(t, first, 20)
	assert.True(t, page.Paginated)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrevious())

	second, page := Paginate(items, 2, DefaultPageSize)
	assert.Equal(t, []int{20, 21, 22, 23, 24}, second)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrevious())

	clamped, page := Paginate(items, 9, DefaultPageSize)
	assert.Equal(t, second, clamped)
	assert.Equal(t, 2, page.Number)
}

func TestPaginate_BelowThreshold(t *testing.T) {
	items := make([]int, 20)
	got, page := Paginate(items, 3, DefaultPageSize)
	assert.Len(t, got, 20)
	assert.False(t, page.Paginated)
	assert.Equal(t, 1, page.TotalPages)

	empty, page := Paginate([]int{}, 1, 0)
	assert.Empty(t, empty)
	assert.Equal(t, 0, page.TotalItems)
	assert.Equal(t, DefaultPageSize, page.Size)
}

func TestSorter(t *testing.T) {
	docs := sampleDocuments()
	s := SettlementSorter()

	sorted, err := s.SortByName(docs, "total", SortOrderDesc)
	require.NoError(t, err)
	assert.True(t, sorted[0].TotalExclVat.Equal(decimal.NewFromInt(600)))
	// The input is untouched.
	assert.True(t, docs[0].TotalExclVat.Equal(decimal.NewFromInt(100)))

	_, err = s.SortByName(docs, "nope", SortOrderAsc)
	assert.ErrorIs(t, err, ErrInvalidSortField)
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in        string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{"", "", SortOrderAsc, nil},
		{"total", "total", SortOrderAsc, nil},
		{"total:DESC", "total", SortOrderDesc, nil},
		{"a:b:c", "", "", ErrInvalidSortFormat},
		{":desc", "", "", ErrInvalidSortFormat},
		{"total:up", "", "", ErrInvalidSortOrder},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			field, order, err := ParseSort(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}
