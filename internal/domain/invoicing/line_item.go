package invoicing

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// LineItem represents one selected catalog item on a draft invoice.
// Exactly one LineItem exists per currently-selected catalog item; it is
// removed when the item is deselected.
type LineItem struct {
	ID            uuid.UUID
	DraftID       uuid.UUID
	CatalogItemID uuid.UUID
	Description   string
	Quantity      int64
	UnitPrice     valueobject.Money // snapshot taken at selection time
	TaxRate       valueobject.TaxRate
	Amount        valueobject.Money // Quantity * UnitPrice * (1 + TaxRate/100)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeQuantity converts an untrusted quantity into a usable one.
// Non-positive values collapse to 1. The permissive fallback is relied
// upon by the dashboard UI.
func NormalizeQuantity(quantity int64) int64 {
	if quantity <= 0 {
		return 1
	}
	return quantity
}

// ComputeLineAmount returns quantity * unitPrice * (1 + rate/100).
// Full decimal precision is kept; rounding happens only at formatting time.
func ComputeLineAmount(quantity int64, unitPrice valueobject.Money, rate valueobject.TaxRate) valueobject.Money {
	return unitPrice.MultiplyByInt(quantity).Multiply(rate.Multiplier())
}

// NewLineItem creates a line item for the given catalog item, snapshotting
// its current unit price. Quantity starts at 1.
func NewLineItem(draftID uuid.UUID, item CatalogItem, rate valueobject.TaxRate) (*LineItem, error) {
	if item.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATALOG_ITEM", "Catalog item ID cannot be empty")
	}
	if item.Name == "" {
		return nil, shared.NewDomainError("INVALID_CATALOG_ITEM", "Catalog item name cannot be empty")
	}
	if item.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &LineItem{
		ID:            uuid.New(),
		DraftID:       draftID,
		CatalogItemID: item.ID,
		Description:   item.Name,
		Quantity:      1,
		UnitPrice:     item.UnitPrice,
		TaxRate:       rate,
		Amount:        ComputeLineAmount(1, item.UnitPrice, rate),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// UpdateQuantity sets the quantity (normalized) and recomputes the amount
func (i *LineItem) UpdateQuantity(quantity int64) {
	i.Quantity = NormalizeQuantity(quantity)
	i.recompute()
}

// UpdateTaxRate sets the per-item tax rate and recomputes the amount
func (i *LineItem) UpdateTaxRate(rate valueobject.TaxRate) {
	i.TaxRate = rate
	i.recompute()
}

func (i *LineItem) recompute() {
	i.Amount = ComputeLineAmount(i.Quantity, i.UnitPrice, i.TaxRate)
	i.UpdatedAt = time.Now()
}
