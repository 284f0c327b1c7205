package billing

import (
	"fmt"
	"strings"
)

// Tone is the semantic colour class of an enum value. The TUI maps tones to
// concrete colours.
type Tone int

// Tones, from neutral to alarming.
const (
	ToneNeutral Tone = iota
	ToneInfo
	ToneSuccess
	ToneWarning
	ToneDanger
)

// DocumentType distinguishes original settlement runs from corrections.
type DocumentType int

// Document types. DocumentTypeUnknown covers any value the backend adds later.
const (
	DocumentTypeUnknown DocumentType = iota
	DocumentTypeSettlement
	DocumentTypeDebitNote
	DocumentTypeCreditNote
)

//nolint:gochecknoglobals // Lookup table.
var documentTypeNames = map[string]DocumentType{
	"settlement": DocumentTypeSettlement,
	"afregning":  DocumentTypeSettlement,
	"debitnote":  DocumentTypeDebitNote,
	"creditnote": DocumentTypeCreditNote,
	"kreditnota": DocumentTypeCreditNote,
	"debetnota":  DocumentTypeDebitNote,
}

// ParseDocumentType maps a wire value to a DocumentType, case-insensitively.
func ParseDocumentType(s string) DocumentType {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	if t, ok := documentTypeNames[key]; ok {
		return t
	}
	return DocumentTypeUnknown
}

// String returns the wire value.
func (t DocumentType) String() string {
	switch t {
	case DocumentTypeSettlement:
		return "settlement"
	case DocumentTypeDebitNote:
		return "debitNote"
	case DocumentTypeCreditNote:
		return "creditNote"
	case DocumentTypeUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Label returns the Danish display label.
func (t DocumentType) Label() string {
	switch t {
	case DocumentTypeSettlement:
		return "Afregning"
	case DocumentTypeDebitNote:
		return "Debetnota"
	case DocumentTypeCreditNote:
		return "Kreditnota"
	case DocumentTypeUnknown:
		return "Ukendt"
	default:
		return "Ukendt"
	}
}

// IsRun reports whether the document is an original settlement run. Every
// other type, unknown included, is treated as a correction.
func (t DocumentType) IsRun() bool {
	return t == DocumentTypeSettlement
}

// MarshalText implements encoding.TextMarshaler.
func (t DocumentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognised values
// decode to DocumentTypeUnknown rather than failing.
func (t *DocumentType) UnmarshalText(b []byte) error {
	*t = ParseDocumentType(string(b))
	return nil
}

// DocumentStatus is the lifecycle state of a settlement document.
type DocumentStatus int

// Document statuses.
const (
	StatusUnknown DocumentStatus = iota
	StatusCalculated
	StatusInvoiced
	StatusAdjusted
)

// AllDocumentStatuses lists the known statuses in display order.
//
//nolint:gochecknoglobals // Read-only list.
var AllDocumentStatuses = []DocumentStatus{StatusCalculated, StatusInvoiced, StatusAdjusted, StatusUnknown}

// ParseDocumentStatus accepts the Danish labels and their English names.
func ParseDocumentStatus(s string) DocumentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beregnet", "calculated":
		return StatusCalculated
	case "faktureret", "invoiced":
		return StatusInvoiced
	case "justeret", "adjusted":
		return StatusAdjusted
	default:
		return StatusUnknown
	}
}

// String returns the Danish label used on the wire and in the UI.
func (s DocumentStatus) String() string {
	switch s {
	case StatusCalculated:
		return "Beregnet"
	case StatusInvoiced:
		return "Faktureret"
	case StatusAdjusted:
		return "Justeret"
	case StatusUnknown:
		return "Andet"
	default:
		return "Andet"
	}
}

// Tone returns the badge colour class.
func (s DocumentStatus) Tone() Tone {
	switch s {
	case StatusCalculated:
		return ToneInfo
	case StatusInvoiced:
		return ToneSuccess
	case StatusAdjusted:
		return ToneWarning
	case StatusUnknown:
		return ToneNeutral
	default:
		return ToneNeutral
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s DocumentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DocumentStatus) UnmarshalText(b []byte) error {
	*s = ParseDocumentStatus(string(b))
	return nil
}

// ConnectionState is the physical state of a metering point.
type ConnectionState int

// Connection states.
const (
	ConnectionUnknown ConnectionState = iota
	ConnectionConnected
	ConnectionDisconnected
	ConnectionNew
	ConnectionClosedDown
)

// AllConnectionStates lists the known states in display order.
//
//nolint:gochecknoglobals // Read-only list.
var AllConnectionStates = []ConnectionState{
	ConnectionConnected, ConnectionDisconnected, ConnectionNew, ConnectionClosedDown, ConnectionUnknown,
}

// ParseConnectionState accepts the Danish labels and their English names.
func ParseConnectionState(s string) ConnectionState {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "tilsluttet", "connected":
		return ConnectionConnected
	case "afbrudt", "disconnected":
		return ConnectionDisconnected
	case "ny", "new":
		return ConnectionNew
	case "nedlagt", "closeddown":
		return ConnectionClosedDown
	default:
		return ConnectionUnknown
	}
}

// String returns the Danish label.
func (c ConnectionState) String() string {
	switch c {
	case ConnectionConnected:
		return "Tilsluttet"
	case ConnectionDisconnected:
		return "Afbrudt"
	case ConnectionNew:
		return "Ny"
	case ConnectionClosedDown:
		return "Nedlagt"
	case ConnectionUnknown:
		return "Ukendt"
	default:
		return "Ukendt"
	}
}

// Tone returns the badge colour class.
func (c ConnectionState) Tone() Tone {
	switch c {
	case ConnectionConnected:
		return ToneSuccess
	case ConnectionDisconnected:
		return ToneWarning
	case ConnectionNew:
		return ToneInfo
	case ConnectionClosedDown:
		return ToneDanger
	case ConnectionUnknown:
		return ToneNeutral
	default:
		return ToneNeutral
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c ConnectionState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ConnectionState) UnmarshalText(b []byte) error {
	*c = ParseConnectionState(string(b))
	return nil
}

// CustomerKind classifies a customer as a private person or a company.
type CustomerKind int

// Customer kinds.
const (
	KindUnknown CustomerKind = iota
	KindPrivate
	KindCompany
)

// String returns the Danish label.
func (k CustomerKind) String() string {
	switch k {
	case KindPrivate:
		return "Privat"
	case KindCompany:
		return "Erhverv"
	case KindUnknown:
		return "Ukendt"
	default:
		return "Ukendt"
	}
}

// Tone returns the badge colour class.
func (k CustomerKind) Tone() Tone {
	switch k {
	case KindPrivate:
		return ToneInfo
	case KindCompany:
		return ToneSuccess
	case KindUnknown:
		return ToneNeutral
	default:
		return ToneNeutral
	}
}

// ParseCustomerKind accepts "private"/"privat" and "company"/"erhverv".
func ParseCustomerKind(s string) (CustomerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private", "privat":
		return KindPrivate, nil
	case "company", "erhverv":
		return KindCompany, nil
	default:
		return KindUnknown, fmt.Errorf("unknown customer kind %q", s)
	}
}
