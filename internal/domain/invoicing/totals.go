package invoicing

import (
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
)

// Totals is the derived (subtotal, tax, total) triple for a draft.
// It is always produced as a whole; callers never see a partially
// updated combination.
type Totals struct {
	Subtotal valueobject.Money
	Tax      valueobject.Money
	Total    valueobject.Money
}

// ZeroTotals returns an all-zero triple
func ZeroTotals() Totals {
	return Totals{
		Subtotal: valueobject.ZeroUSD(),
		Tax:      valueobject.ZeroUSD(),
		Total:    valueobject.ZeroUSD(),
	}
}

// ComputeTotals derives the totals triple from the current line items and
// the invoice-level default tax rate. Each line amount already embeds its
// own per-item tax, so the subtotal is tax-inclusive per item, and the
// default rate is applied again on top of it. That second application
// matches the observed behavior of the dashboard this service backs and
// is kept verbatim; see DESIGN.md before changing it.
func ComputeTotals(items []LineItem, defaultRate valueobject.TaxRate) Totals {
	subtotal := valueobject.ZeroUSD()
	for _, item := range items {
		subtotal = subtotal.MustAdd(item.Amount)
	}
	tax := defaultRate.Apply(subtotal)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.MustAdd(tax),
	}
}
