package invoicing

import (
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CatalogItem is a read-only projection of a client's purchasable item.
// The engine snapshots UnitPrice into a line item at selection time and
// never writes back; later catalog changes do not retroactively alter
// already-created line items.
type CatalogItem struct {
	ID        uuid.UUID
	Name      string
	UnitPrice valueobject.Money
}

// Client is the reference data the engine needs about the invoiced client
type Client struct {
	ID          uuid.UUID
	CompanyName string
}
