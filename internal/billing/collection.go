package billing

import "fmt"

// Collection names one of the four entity collections. The value doubles as
// the route segment in the TUI.
type Collection string

// Collections.
const (
	CollectionSettlements    Collection = "settlements"
	CollectionMeteringPoints Collection = "metering-points"
	CollectionCustomers      Collection = "customers"
	CollectionSupplies       Collection = "supplies"
)

// AllCollections lists the collections in menu order.
//
//nolint:gochecknoglobals // Read-only list.
var AllCollections = []Collection{
	CollectionSettlements, CollectionMeteringPoints, CollectionCustomers, CollectionSupplies,
}

// ParseCollection accepts the route segment or a few common aliases.
func ParseCollection(s string) (Collection, error) {
	switch s {
	case "settlements", "settlement-documents", "afregninger":
		return CollectionSettlements, nil
	case "metering-points", "meteringpoints", "maalepunkter", "målepunkter":
		return CollectionMeteringPoints, nil
	case "customers", "kunder":
		return CollectionCustomers, nil
	case "supplies", "deliveries", "leverancer":
		return CollectionSupplies, nil
	default:
		return "", fmt.Errorf("unknown collection %q", s)
	}
}

// Title returns the Danish page title.
func (c Collection) Title() string {
	switch c {
	case CollectionSettlements:
		return "Afregninger"
	case CollectionMeteringPoints:
		return "Målepunkter"
	case CollectionCustomers:
		return "Kunder"
	case CollectionSupplies:
		return "Leverancer"
	default:
		return string(c)
	}
}

// APIPath returns the backend resource path.
func (c Collection) APIPath() string {
	switch c {
	case CollectionSettlements:
		return "/api/settlement-documents"
	case CollectionMeteringPoints:
		return "/api/metering-points"
	case CollectionCustomers:
		return "/api/customers"
	case CollectionSupplies:
		return "/api/supplies"
	default:
		return "/api/" + string(c)
	}
}
