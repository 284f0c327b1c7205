// Package format renders amounts and dates for display according to a Locale.
// Rendering code calls a Formatter and stays locale-agnostic.
package format

import (
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Europe/Copenhagen must resolve on hosts without zoneinfo.

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale holds the conventions a Formatter applies.
type Locale struct {
	Name             string
	Tag              language.Tag
	DecimalSeparator string
	CurrencySuffix   string
	DateLayout       string
	DateTimeLayout   string
	TimeZone         string
	OpenEnded        string // shown for a missing end date
	Placeholder      string // shown for a missing value
	Yes              string
	No               string
}

// Built-in locales.
//
//nolint:gochecknoglobals // Read-only locale tables.
var (
	Danish = Locale{
		Name:             "da",
		Tag:              language.Danish,
		DecimalSeparator: ",",
		CurrencySuffix:   " kr.",
		DateLayout:       "02.01.2006",
		DateTimeLayout:   "02.01.2006 15.04",
		TimeZone:         "Europe/Copenhagen",
		OpenEnded:        "Løbende",
		Placeholder:      "–",
		Yes:              "Ja",
		No:               "Nej",
	}
	English = Locale{
		Name:             "en",
		Tag:              language.English,
		DecimalSeparator: ".",
		CurrencySuffix:   " DKK",
		DateLayout:       "2006-01-02",
		DateTimeLayout:   "2006-01-02 15:04",
		TimeZone:         "Europe/Copenhagen",
		OpenEnded:        "Ongoing",
		Placeholder:      "-",
		Yes:              "Yes",
		No:               "No",
	}
)

// LookupLocale returns the built-in locale for name ("da", "en"), defaulting
// to Danish.
func LookupLocale(name string) Locale {
	switch strings.ToLower(name) {
	case "en", "en-gb", "en-us", "english":
		return English
	default:
		return Danish
	}
}

// Formatter renders values for one locale.
type Formatter struct {
	locale   Locale
	printer  *message.Printer
	location *time.Location
}

// NewFormatter creates a Formatter for loc. An unknown time zone falls back
// to UTC.
func NewFormatter(loc Locale) *Formatter {
	tz, err := time.LoadLocation(loc.TimeZone)
	if err != nil || loc.TimeZone == "" {
		tz = time.UTC
	}
	return &Formatter{
		locale:   loc,
		printer:  message.NewPrinter(loc.Tag),
		location: tz,
	}
}

// Locale returns the formatter's locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

// Integer formats n with the locale's thousand separators.
// Example (da): Integer(18248) returns "18.248".
func (f *Formatter) Integer(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Amount formats d with exactly two decimals and thousand separators.
// Example (da): Amount(1234.5) returns "1.234,50".
func (f *Formatter) Amount(d decimal.Decimal) string {
	const precision = 2
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(precision)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := intPart
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil {
		grouped = f.Integer(n)
	}

	out := grouped + f.locale.DecimalSeparator + fracPart
	if negative && !d.Round(precision).IsZero() {
		out = "-" + out
	}
	return out
}

// Currency formats d as an amount followed by the locale's currency suffix.
func (f *Formatter) Currency(d decimal.Decimal) string {
	return f.Amount(d) + f.locale.CurrencySuffix
}

// NullCurrency formats an optional amount, using the placeholder when absent.
func (f *Formatter) NullCurrency(d decimal.NullDecimal) string {
	if !d.Valid {
		return f.locale.Placeholder
	}
	return f.Currency(d.Decimal)
}

// Date formats t as a short date in the locale's time zone.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return f.locale.Placeholder
	}
	return t.In(f.location).Format(f.locale.DateLayout)
}

// DateTime formats t as a short date and time in the locale's time zone.
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return f.locale.Placeholder
	}
	return t.In(f.location).Format(f.locale.DateTimeLayout)
}

// EndDate formats an optional end date. A nil end renders the open-ended
// marker.
func (f *Formatter) EndDate(t *time.Time) string {
	if t == nil {
		return f.locale.OpenEnded
	}
	return f.Date(*t)
}

// Range formats a start/end pair as "start – end".
func (f *Formatter) Range(start time.Time, end *time.Time) string {
	return f.Date(start) + " – " + f.EndDate(end)
}

// Text returns s, or the placeholder when s is empty.
func (f *Formatter) Text(s string) string {
	if strings.TrimSpace(s) == "" {
		return f.locale.Placeholder
	}
	return s
}

// Bool returns the locale's yes/no word.
func (f *Formatter) Bool(b bool) string {
	if b {
		return f.locale.Yes
	}
	return f.locale.No
}

// OpenEndedMarker returns the marker used for missing end dates.
func (f *Formatter) OpenEndedMarker() string {
	return f.locale.OpenEnded
}

// Placeholder returns the marker used for missing values.
func (f *Formatter) Placeholder() string {
	return f.locale.Placeholder
}
