// Package billing defines the read-only projections of the settlement
// backend's resources: settlement documents, metering points, customers and
// supply deliveries.
//
// Values are snapshots; nothing in wattsonctl mutates them after decoding.
package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entity is implemented by every collection element.
type Entity interface {
	EntityID() uuid.UUID
}

// Period is a half-open date range. A nil End means open-ended.
type Period struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// IsOpenEnded reports whether the period has no end.
func (p Period) IsOpenEnded() bool {
	return p.End == nil
}

// MeteringPointRef is the metering point a document was settled for.
type MeteringPointRef struct {
	GSRN string `json:"gsrn"`
}

// BuyerRef is the customer a document was issued to.
type BuyerRef struct {
	Name string `json:"name"`
}

// SettlementDocument is a computed billing statement for a metering point
// over a period.
type SettlementDocument struct {
	ID                 uuid.UUID           `json:"id"`
	DocumentNumber     string              `json:"documentNumber,omitempty"`
	DocumentType       DocumentType        `json:"documentType"`
	Status             DocumentStatus      `json:"status"`
	MeteringPoint      MeteringPointRef    `json:"meteringPoint"`
	Period             Period              `json:"period"`
	Buyer              BuyerRef            `json:"buyer"`
	TotalExclVat       decimal.Decimal     `json:"totalExclVat"`
	VatAmount          decimal.NullDecimal `json:"vatAmount"`
	TotalInclVat       decimal.NullDecimal `json:"totalInclVat"`
	CalculatedAt       time.Time           `json:"calculatedAt"`
	OriginalDocumentID *uuid.UUID          `json:"originalDocumentId,omitempty"`
}

// EntityID implements Entity.
func (d SettlementDocument) EntityID() uuid.UUID { return d.ID }

// MeteringPoint is a point in the grid where consumption or production is
// measured.
type MeteringPoint struct {
	ID               uuid.UUID       `json:"id"`
	GSRN             string          `json:"gsrn"`
	Type             string          `json:"type"`
	SettlementMethod string          `json:"settlementMethod"`
	Resolution       string          `json:"resolution"`
	ConnectionState  ConnectionState `json:"connectionState"`
	GridArea         string          `json:"gridArea"`
	HasActiveSupply  bool            `json:"hasActiveSupply"`
}

// EntityID implements Entity.
func (m MeteringPoint) EntityID() uuid.UUID { return m.ID }

// Customer is a private person (identified by CPR) or a company (CVR).
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsPrivate bool      `json:"isPrivate"`
	IsCompany bool      `json:"isCompany"`
	CPR       string    `json:"cpr,omitempty"`
	CVR       string    `json:"cvr,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EntityID implements Entity.
func (c Customer) EntityID() uuid.UUID { return c.ID }

// Kind derives the customer kind from the two flags.
func (c Customer) Kind() CustomerKind {
	switch {
	case c.IsPrivate && !c.IsCompany:
		return KindPrivate
	case c.IsCompany && !c.IsPrivate:
		return KindCompany
	default:
		return KindUnknown
	}
}

// Identifier returns the CPR number if present, else the CVR number, else "".
// It never returns both.
func (c Customer) Identifier() string {
	if c.CPR != "" {
		return c.CPR
	}
	return c.CVR
}

// Customer invariant violations.
var (
	ErrCustomerKind        = errors.New("customer must be exactly one of private or company")
	ErrCustomerIdentifiers = errors.New("customer has both cpr and cvr")
)

// Validate checks the customer invariants.
func (c Customer) Validate() error {
	var errs []error
	if c.IsPrivate == c.IsCompany {
		errs = append(errs, ErrCustomerKind)
	}
	if c.CPR != "" && c.CVR != "" {
		errs = append(errs, ErrCustomerIdentifiers)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("customer %s: %w", c.ID, errors.Join(errs...))
}

// Supply is a delivery relation between a customer and a metering point.
// The Danish wire names come from the backend's Leverance resource.
type Supply struct {
	ID              uuid.UUID  `json:"id"`
	MeteringPointID uuid.UUID  `json:"målepunktId"`
	CustomerID      uuid.UUID  `json:"kundeId"`
	CustomerName    string     `json:"kundeNavn"`
	GSRN            string     `json:"gsrn"`
	SupplyStart     time.Time  `json:"supplyStart"`
	SupplyEnd       *time.Time `json:"supplyEnd,omitempty"`
	IsActive        bool       `json:"isActive"`
}

// EntityID implements Entity.
func (s Supply) EntityID() uuid.UUID { return s.ID }

// IsOpenEnded reports whether the supply has no end date.
func (s Supply) IsOpenEnded() bool {
	return s.SupplyEnd == nil
}

// ErrDuplicateID is returned by CheckUnique.
var ErrDuplicateID = errors.New("duplicate identifier")

// CheckUnique verifies that no two items share an identifier.
func CheckUnique[T Entity](items []T) error {
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id := item.EntityID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
