package mockapi

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rshade/wattsonctl/internal/billing"
)

// Fixtures is the data served by the mock backend.
type Fixtures struct {
	SettlementDocuments []billing.SettlementDocument `json:"settlementDocuments"`
	MeteringPoints      []billing.MeteringPoint      `json:"meteringPoints"`
	Customers           []billing.Customer           `json:"customers"`
	Supplies            []billing.Supply             `json:"supplies"`
}

// LoadFixtures reads a YAML fixture file. The YAML is re-encoded as JSON and
// decoded with the same tags the API client uses, so fixture keys match the
// backend's wire names.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures %s: %w", path, err)
	}
	var raw map[string]any
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing fixtures %s: %w", path, err)
	}
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encoding fixtures %s: %w", path, err)
	}
	var fx Fixtures
	if err = json.Unmarshal(asJSON, &fx); err != nil {
		return nil, fmt.Errorf("decoding fixtures %s: %w", path, err)
	}
	return &fx, nil
}

// fixtureNamespace seeds deterministic sample identifiers.
//
//nolint:gochecknoglobals // Constant namespace UUID.
var fixtureNamespace = uuid.MustParse("3b1e6f0c-4d8a-4b7e-9a51-0c2f7d9e6a10")

func sampleID(kind string, i int) uuid.UUID {
	return uuid.NewSHA1(fixtureNamespace, fmt.Appendf(nil, "%s-%d", kind, i))
}

// Sample sizes are chosen so that settlements and supplies exceed one page.
const (
	sampleCustomers      = 12
	sampleMeteringPoints = 24
	sampleSettlements    = 30
)

// SampleFixtures returns deterministic demo data.
func SampleFixtures() *Fixtures {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	names := []string{
		"Jens Hansen", "Mette Olsen", "Hansen ApS", "Nordvind A/S", "Lars Nielsen", "Sofie Jensen",
		"Grøn Energi I/S", "Peter Madsen", "Anne Kristensen", "Bager Larsen ApS", "Karen Poulsen", "Fjordens Varmeværk",
	}

	fx := &Fixtures{}
	for i := range sampleCustomers {
		company := i%3 == 2
		c := billing.Customer{
			ID:        sampleID("customer", i),
			Name:      names[i%len(names)],
			IsPrivate: !company,
			IsCompany: company,
			CreatedAt: base.AddDate(0, 0, i*9),
		}
		if company {
			c.CVR = fmt.Sprintf("%08d", 31000000+i*1379)
		} else {
			c.CPR = fmt.Sprintf("%02d%02d80%04d", i%28+1, i%12+1, 1000+i)
			if i%2 == 0 {
				c.Email = fmt.Sprintf("kunde%d@example.dk", i)
			}
		}
		fx.Customers = append(fx.Customers, c)
	}

	states := billing.AllConnectionStates[:4]
	for i := range sampleMeteringPoints {
		fx.MeteringPoints = append(fx.MeteringPoints, billing.MeteringPoint{
			ID:               sampleID("metering-point", i),
			GSRN:             fmt.Sprintf("5713131804%08d", 10000+i),
			Type:             []string{"E17", "E18", "E20"}[i%3],
			SettlementMethod: []string{"E02", "D01"}[i%2],
			Resolution:       []string{"PT1H", "PT15M"}[i%2],
			ConnectionState:  states[i%len(states)],
			GridArea:         []string{"DK1", "DK2"}[i%2],
			HasActiveSupply:  i%4 == 0,
		})
	}

	for i, mp := range fx.MeteringPoints {
		cust := fx.Customers[i%len(fx.Customers)]
		s := billing.Supply{
			ID:              sampleID("supply", i),
			MeteringPointID: mp.ID,
			CustomerID:      cust.ID,
			CustomerName:    cust.Name,
			GSRN:            mp.GSRN,
			SupplyStart:     base.AddDate(0, i%6, 0),
			IsActive:        mp.HasActiveSupply || i%3 == 0,
		}
		if !s.IsActive {
			end := s.SupplyStart.AddDate(1, 0, 0)
			s.SupplyEnd = &end
		}
		fx.Supplies = append(fx.Supplies, s)
	}

	statuses := []billing.DocumentStatus{billing.StatusCalculated, billing.StatusInvoiced, billing.StatusAdjusted}
	for i := range sampleSettlements {
		mp := fx.MeteringPoints[i%len(fx.MeteringPoints)]
		cust := fx.Customers[i%len(fx.Customers)]
		start := base.AddDate(0, i%12, 0)
		end := start.AddDate(0, 1, 0)
		doc := billing.SettlementDocument{
			ID:             sampleID("settlement", i),
			DocumentNumber: fmt.Sprintf("AF-%06d", 1000+i),
			DocumentType:   billing.DocumentTypeSettlement,
			Status:         statuses[i%len(statuses)],
			MeteringPoint:  billing.MeteringPointRef{GSRN: mp.GSRN},
			Period:         billing.Period{Start: start, End: &end},
			Buyer:          billing.BuyerRef{Name: cust.Name},
			TotalExclVat:   decimal.NewFromInt(int64(35000 + i*4321)).Shift(-2),
			CalculatedAt:   end.Add(26 * time.Hour),
		}
		if i%5 == 4 {
			orig := sampleID("settlement", i-1)
			doc.DocumentType = billing.DocumentTypeCreditNote
			doc.OriginalDocumentID = &orig
			doc.TotalExclVat = doc.TotalExclVat.Neg()
		}
		if i == sampleSettlements-1 {
			doc.Period.End = nil
		}
		vat := doc.TotalExclVat.Mul(decimal.RequireFromString("0.25")).Round(2)
		doc.VatAmount = decimal.NewNullDecimal(vat)
		doc.TotalInclVat = decimal.NewNullDecimal(doc.TotalExclVat.Add(vat))
		fx.SettlementDocuments = append(fx.SettlementDocuments, doc)
	}
	return fx
}
