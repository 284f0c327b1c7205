package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_Amount(t *testing.T) {
	da := NewFormatter(Danish)
	en := NewFormatter(English)

	tests := []struct {
		name   string
		amount string
		wantDA string
		wantEN string
	}{
		{name: "zero", amount: "0", wantDA: "0,00", wantEN: "0.00"},
		{name: "small", amount: "12.3", wantDA: "12,30", wantEN: "12.30"},
		{name: "thousands", amount: "1234.5", wantDA: "1.234,50", wantEN: "1,234.50"},
		{name: "millions", amount: "1234567.891", wantDA: "1.234.567,89", wantEN: "1,234,567.89"},
		{name: "negative", amount: "-1234.5", wantDA: "-1.234,50", wantEN: "-1,234.50"},
		{name: "negative below one", amount: "-0.5", wantDA: "-0,50", wantEN: "-0.50"},
		{name: "rounds half up", amount: "0.005", wantDA: "0,01", wantEN: "0.01"},
		{name: "negative rounding to zero", amount: "-0.001", wantDA: "0,00", wantEN: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.wantDA, da.Amount(d))
			assert.Equal(t, tt.wantEN, en.Amount(d))
		})
	}
}

func TestFormatter_Currency(t *testing.T) {
	da := NewFormatter(Danish)
	assert.Equal(t, "1.234,50 kr.", da.Currency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "–", da.NullCurrency(decimal.NullDecimal{}))
	assert.Equal(t, "25,00 kr.", da.NullCurrency(decimal.NewNullDecimal(decimal.NewFromInt(25))))
}

func TestFormatter_Dates(t *testing.T) {
	da := NewFormatter(Danish)

	// 23:30 UTC on Jan 31 is already Feb 1 in Copenhagen (UTC+1).
	ts := time.Date(2025, 1, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "01.02.2025", da.Date(ts))
	assert.Equal(t, "01.02.2025 00.30", da.DateTime(ts))
	assert.Equal(t, "–", da.Date(time.Time{}))
}

func TestFormatter_EndDateAndRange(t *testing.T) {
	da := NewFormatter(Danish)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Løbende", da.EndDate(nil))
	assert.Equal(t, "01.02.2025", da.EndDate(&end))
	assert.Equal(t, "01.01.2025 – Løbende", da.Range(start, nil))
	assert.Equal(t, "01.01.2025 – 01.02.2025", da.Range(start, &end))
}

func TestFormatter_TextAndBool(t *testing.T) {
	da := NewFormatter(Danish)
	assert.Equal(t, "–", da.Text("  "))
	assert.Equal(t, "a@b.dk", da.Text("a@b.dk"))
	assert.Equal(t, "Ja", da.Bool(true))
	assert.Equal(t, "Nej", da.Bool(false))
}

func TestLookupLocale(t *testing.T) {
	assert.Equal(t, "en", LookupLocale("EN").Name)
	assert.Equal(t, "da", LookupLocale("da-DK").Name)
	assert.Equal(t, "da", LookupLocale("").Name)
}

func TestNewFormatter_BadTimeZone(t *testing.T) {
	loc := Danish
	loc.TimeZone = "Nowhere/Invalid"
	f := NewFormatter(loc)
	ts := time.Date(2025, 1, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "31.01.2025", f.Date(ts))
}
