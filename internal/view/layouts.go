package view

import (
	"github.com/google/uuid"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/format"
)

const shortIDLen = 8

// shortID abbreviates an identifier for narrow columns.
func shortID(id uuid.UUID) string {
	return id.String()[:shortIDLen]
}

// documentNumber falls back to the abbreviated id when the backend sent no
// number.
func documentNumber(d billing.SettlementDocument) string {
	if d.DocumentNumber != "" {
		return d.DocumentNumber
	}
	return shortID(d.ID)
}

// CustomerIdentifier shows the CPR number, else the CVR number, else the
// placeholder. Never both.
func CustomerIdentifier(c billing.Customer, f *format.Formatter) string {
	return f.Text(c.Identifier())
}

// SupplyStatus is the badge shown for a supply.
func SupplyStatus(s billing.Supply) Cell {
	if s.IsActive {
		return Tag("Aktiv", billing.ToneSuccess)
	}
	return Tag("Ophørt", billing.ToneNeutral)
}

func activeSupplyTag(has bool, f *format.Formatter) Cell {
	if has {
		return Tag(f.Bool(true), billing.ToneSuccess)
	}
	return Tag(f.Bool(false), billing.ToneNeutral)
}

// Settlements lays out settlement documents.
//
//nolint:gochecknoglobals // Read-only layout.
var Settlements = Layout[billing.SettlementDocument]{
	Collection: billing.CollectionSettlements,
	Columns: []Column{
		{Key: "number", Title: "Nr.", Width: 12},
		{Key: "type", Title: "Type", Width: 11},
		{Key: "status", Title: "Status", Width: 11},
		{Key: "gsrn", Title: "Målepunkt", Width: 18},
		{Key: "period", Title: "Periode", Width: 23},
		{Key: "buyer", Title: "Køber", Width: 20},
		{Key: "totalExclVat", Title: "Beløb ekskl. moms", Width: 18, Align: AlignRight},
		{Key: "calculatedAt", Title: "Beregnet", Width: 16},
	},
	Row: func(d billing.SettlementDocument, f *format.Formatter) []Cell {
		return []Cell{
			Plain(documentNumber(d)),
			Plain(d.DocumentType.Label()),
			Tag(d.Status.String(), d.Status.Tone()),
			Plain(f.Text(d.MeteringPoint.GSRN)),
			Plain(f.Range(d.Period.Start, d.Period.End)),
			Plain(f.Text(d.Buyer.Name)),
			Plain(f.Currency(d.TotalExclVat)),
			Plain(f.DateTime(d.CalculatedAt)),
		}
	},
	Detail: func(d billing.SettlementDocument, f *format.Formatter) []Field {
		original := f.Placeholder()
		if d.OriginalDocumentID != nil {
			original = d.OriginalDocumentID.String()
		}
		return []Field{
			{Label: "Id", Value: Plain(d.ID.String())},
			{Label: "Dokumentnummer", Value: Plain(documentNumber(d))},
			{Label: "Type", Value: Plain(d.DocumentType.Label())},
			{Label: "Status", Value: Tag(d.Status.String(), d.Status.Tone())},
			{Label: "Målepunkt", Value: Plain(f.Text(d.MeteringPoint.GSRN))},
			{Label: "Køber", Value: Plain(f.Text(d.Buyer.Name))},
			{Label: "Periode fra", Value: Plain(f.Date(d.Period.Start))},
			{Label: "Periode til", Value: Plain(f.EndDate(d.Period.End))},
			{Label: "Beløb ekskl. moms", Value: Plain(f.Currency(d.TotalExclVat))},
			{Label: "Moms", Value: Plain(f.NullCurrency(d.VatAmount))},
			{Label: "Beløb inkl. moms", Value: Plain(f.NullCurrency(d.TotalInclVat))},
			{Label: "Beregnet", Value: Plain(f.DateTime(d.CalculatedAt))},
			{Label: "Korrigerer", Value: Plain(original)},
		}
	},
}

// MeteringPoints lays out metering points.
//
//nolint:gochecknoglobals // Read-only layout.
var MeteringPoints = Layout[billing.MeteringPoint]{
	Collection: billing.CollectionMeteringPoints,
	Columns: []Column{
		{Key: "gsrn", Title: "GSRN", Width: 18},
		{Key: "type", Title: "Type", Width: 6},
		{Key: "settlementMethod", Title: "Afregningsform", Width: 14},
		{Key: "resolution", Title: "Opløsning", Width: 9},
		{Key: "connectionState", Title: "Tilstand", Width: 11},
		{Key: "gridArea", Title: "Netområde", Width: 9},
		{Key: "hasActiveSupply", Title: "Aktiv leverance", Width: 15},
	},
	Row: func(m billing.MeteringPoint, f *format.Formatter) []Cell {
		return []Cell{
			Plain(f.Text(m.GSRN)),
			Plain(f.Text(m.Type)),
			Plain(f.Text(m.SettlementMethod)),
			Plain(f.Text(m.Resolution)),
			Tag(m.ConnectionState.String(), m.ConnectionState.Tone()),
			Plain(f.Text(m.GridArea)),
			activeSupplyTag(m.HasActiveSupply, f),
		}
	},
	Detail: func(m billing.MeteringPoint, f *format.Formatter) []Field {
		return []Field{
			{Label: "Id", Value: Plain(m.ID.String())},
			{Label: "GSRN", Value: Plain(f.Text(m.GSRN))},
			{Label: "Type", Value: Plain(f.Text(m.Type))},
			{Label: "Afregningsform", Value: Plain(f.Text(m.SettlementMethod))},
			{Label: "Opløsning", Value: Plain(f.Text(m.Resolution))},
			{Label: "Tilstand", Value: Tag(m.ConnectionState.String(), m.ConnectionState.Tone())},
			{Label: "Netområde", Value: Plain(f.Text(m.GridArea))},
			{Label: "Aktiv leverance", Value: activeSupplyTag(m.HasActiveSupply, f)},
		}
	},
}

// Customers lays out customers.
//
//nolint:gochecknoglobals // Read-only layout.
var Customers = Layout[billing.Customer]{
	Collection: billing.CollectionCustomers,
	Columns: []Column{
		{Key: "name", Title: "Navn", Width: 24},
		{Key: "kind", Title: "Type", Width: 8},
		{Key: "identifier", Title: "CPR/CVR", Width: 12},
		{Key: "email", Title: "E-mail", Width: 26},
		{Key: "createdAt", Title: "Oprettet", Width: 10},
	},
	Row: func(c billing.Customer, f *format.Formatter) []Cell {
		return []Cell{
			Plain(f.Text(c.Name)),
			Tag(c.Kind().String(), c.Kind().Tone()),
			Plain(CustomerIdentifier(c, f)),
			Plain(f.Text(c.Email)),
			Plain(f.Date(c.CreatedAt)),
		}
	},
	Detail: func(c billing.Customer, f *format.Formatter) []Field {
		return []Field{
			{Label: "Id", Value: Plain(c.ID.String())},
			{Label: "Navn", Value: Plain(f.Text(c.Name))},
			{Label: "Type", Value: Tag(c.Kind().String(), c.Kind().Tone())},
			{Label: "CPR", Value: Plain(f.Text(c.CPR))},
			{Label: "CVR", Value: Plain(f.Text(c.CVR))},
			{Label: "E-mail", Value: Plain(f.Text(c.Email))},
			{Label: "Oprettet", Value: Plain(f.DateTime(c.CreatedAt))},
		}
	},
}

// Supplies lays out supply deliveries.
//
//nolint:gochecknoglobals // Read-only layout.
var Supplies = Layout[billing.Supply]{
	Collection: billing.CollectionSupplies,
	Columns: []Column{
		{Key: "customerName", Title: "Kunde", Width: 24},
		{Key: "gsrn", Title: "GSRN", Width: 18},
		{Key: "supplyStart", Title: "Fra", Width: 10},
		{Key: "supplyEnd", Title: "Til", Width: 10},
		{Key: "isActive", Title: "Status", Width: 8},
	},
	Row: func(s billing.Supply, f *format.Formatter) []Cell {
		return []Cell{
			Plain(f.Text(s.CustomerName)),
			Plain(f.Text(s.GSRN)),
			Plain(f.Date(s.SupplyStart)),
			Plain(f.EndDate(s.SupplyEnd)),
			SupplyStatus(s),
		}
	},
	Detail: func(s billing.Supply, f *format.Formatter) []Field {
		return []Field{
			{Label: "Id", Value: Plain(s.ID.String())},
			{Label: "Kunde", Value: Plain(f.Text(s.CustomerName))},
			{Label: "Kunde-id", Value: Plain(s.CustomerID.String())},
			{Label: "GSRN", Value: Plain(f.Text(s.GSRN))},
			{Label: "Målepunkt-id", Value: Plain(s.MeteringPointID.String())},
			{Label: "Fra", Value: Plain(f.Date(s.SupplyStart))},
			{Label: "Til", Value: Plain(f.EndDate(s.SupplyEnd))},
			{Label: "Status", Value: SupplyStatus(s)},
		}
	},
}
