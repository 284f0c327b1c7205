package view_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/format"
	"github.com/rshade/wattsonctl/internal/view"
)

func danish() *format.Formatter {
	return format.NewFormatter(format.Danish)
}

func TestCustomerIdentifier(t *testing.T) {
	f := danish()
	tests := []struct {
		name     string
		customer billing.Customer
		want     string
	}{
		{"cpr only", billing.Customer{CPR: "0101801234"}, "0101801234"},
		{"cvr only", billing.Customer{CVR: "31001379"}, "31001379"},
		{"both prefers cpr", billing.Customer{CPR: "0101801234", CVR: "31001379"}, "0101801234"},
		{"neither", billing.Customer{}, "–"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := view.CustomerIdentifier(tt.customer, f)
			assert.Equal(t, tt.want, got)
			if tt.customer.CPR != "" && tt.customer.CVR != "" {
				assert.NotContains(t, got, tt.customer.CVR)
			}
		})
	}
}

func TestSupplies_OpenEnded(t *testing.T) {
	supply := billing.Supply{
		ID:           uuid.New(),
		CustomerName: "Jens Hansen",
		GSRN:         "571313180400010001",
		SupplyStart:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}

	tbl := view.Supplies.Table([]billing.Supply{supply}, danish())
	require.Len(t, tbl.Rows, 1)
	row := tbl.Rows[0]

	til := columnIndex(t, tbl, "Til")
	assert.Equal(t, "Løbende", row[til].Text)

	status := row[columnIndex(t, tbl, "Status")]
	assert.True(t, status.Tagged)
	assert.Equal(t, billing.ToneSuccess, status.Tone)
	assert.Equal(t, "Aktiv", status.Text)
}

func TestSupplies_Ended(t *testing.T) {
	end := time.Date(2025, 3, 31, 22, 0, 0, 0, time.UTC)
	supply := billing.Supply{ID: uuid.New(), SupplyEnd: &end}

	tbl := view.Supplies.Table([]billing.Supply{supply}, danish())
	row := tbl.Rows[0]
	assert.Equal(t, "01.04.2025", row[columnIndex(t, tbl, "Til")].Text)
	assert.Equal(t, billing.ToneNeutral, row[columnIndex(t, tbl, "Status")].Tone)
}

func TestSettlements_Row(t *testing.T) {
	end := time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)
	doc := billing.SettlementDocument{
		ID:            uuid.MustParse("6f1c9a52-0b7e-4d0a-9c1e-2f5d8e3b7a01"),
		DocumentType:  billing.DocumentTypeCreditNote,
		Status:        billing.StatusInvoiced,
		MeteringPoint: billing.MeteringPointRef{GSRN: "571313180400010001"},
		Period:        billing.Period{Start: time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC), End: &end},
		Buyer:         billing.BuyerRef{Name: "Hansen ApS"},
		TotalExclVat:  decimal.RequireFromString("1234.5"),
	}

	tbl := view.Settlements.Table([]billing.SettlementDocument{doc}, danish())
	assert.Equal(t, "Afregninger", tbl.Title)
	rec := tbl.Records()[0]

	assert.Equal(t, "6f1c9a52", rec[0], "falls back to the short id")
	assert.Equal(t, "01.01.2025 – 01.02.2025", rec[columnIndex(t, tbl, "Periode")])
	assert.Equal(t, "1.234,50 kr.", rec[columnIndex(t, tbl, "Beløb ekskl. moms")])
	assert.Equal(t, "–", rec[columnIndex(t, tbl, "Beregnet")])
	assert.Equal(t, billing.StatusInvoiced.Tone(), tbl.Rows[0][columnIndex(t, tbl, "Status")].Tone)
}

func TestTable_Empty(t *testing.T) {
	tbl := view.Customers.Table(nil, danish())
	assert.Empty(t, tbl.Rows)
	assert.Equal(t, []string{"Navn", "Type", "CPR/CVR", "E-mail", "Oprettet"}, tbl.Headers())
	assert.Empty(t, tbl.Records())
}

func TestDetail(t *testing.T) {
	mp := billing.MeteringPoint{
		ID:              uuid.New(),
		GSRN:            "571313180400010001",
		ConnectionState: billing.ConnectionClosedDown,
	}
	fields := view.MeteringPoints.Detail(mp, danish())
	require.NotEmpty(t, fields)

	byLabel := map[string]view.Cell{}
	for _, fd := range fields {
		byLabel[fd.Label] = fd.Value
	}
	assert.Equal(t, "Nedlagt", byLabel["Tilstand"].Text)
	assert.Equal(t, billing.ToneDanger, byLabel["Tilstand"].Tone)
	assert.Equal(t, "Nej", byLabel["Aktiv leverance"].Text)
	assert.Equal(t, "–", byLabel["Netområde"].Text)
}

func columnIndex(t *testing.T, tbl view.Table, title string) int {
	t.Helper()
	for i, c := range tbl.Columns {
		if c.Title == title {
			return i
		}
	}
	require.Failf(t, "missing column", "%q", title)
	return -1
}
