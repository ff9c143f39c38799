package invoicing

import (
	"time"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/google/uuid"
)

// CatalogItemResponse is one purchasable item in the catalog view,
// annotated with whether it is currently on the draft
type CatalogItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Selected  bool      `json:"selected"`
}

// LineItemResponse is one selected item on the draft
type LineItemResponse struct {
	ID            uuid.UUID `json:"id"`
	CatalogItemID uuid.UUID `json:"catalog_item_id"`
	Description   string    `json:"description"`
	Quantity      int64     `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TaxRate       float64   `json:"tax_rate"`
	Amount        float64   `json:"amount"`
}

// DraftResponse is the full draft state returned by every operation
type DraftResponse struct {
	ID                uuid.UUID          `json:"id"`
	ClientID          *uuid.UUID         `json:"client_id,omitempty"`
	ClientCompanyName string             `json:"client_company_name,omitempty"`
	Number            string             `json:"number"`
	NumberOverridden  bool               `json:"number_overridden"`
	InvoiceDate       time.Time          `json:"invoice_date"`
	DueDate           time.Time          `json:"due_date"`
	InvoiceStatus     string             `json:"invoice_status"`
	Items             []LineItemResponse `json:"items"`
	DefaultTaxRate    float64            `json:"default_tax_rate"`
	Notes             string             `json:"notes,omitempty"`
	Terms             string             `json:"terms,omitempty"`
	Subtotal          string             `json:"subtotal"`
	Tax               string             `json:"tax"`
	Total             string             `json:"total"`
	Status            string             `json:"status"`
	SubmittedAt       *time.Time         `json:"submitted_at,omitempty"`
}

// SetDatesRequest carries the invoice and due dates
type SetDatesRequest struct {
	InvoiceDate time.Time `json:"invoice_date"`
	DueDate     time.Time `json:"due_date"`
}

// ToDraftResponse converts a domain draft to its response representation.
// Money fields are formatted to two decimal places here; the domain keeps
// full precision internally.
func ToDraftResponse(draft *invoicing.Draft) DraftResponse {
	items := make([]LineItemResponse, len(draft.Items))
	for i, item := range draft.Items {
		items[i] = LineItemResponse{
			ID:            item.ID,
			CatalogItemID: item.CatalogItemID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.Float64(),
			TaxRate:       item.TaxRate.Float64(),
			Amount:        item.Amount.Float64(),
		}
	}

	return DraftResponse{
		ID:                draft.ID,
		ClientID:          draft.ClientID,
		ClientCompanyName: draft.ClientCompanyName,
		Number:            draft.Number,
		NumberOverridden:  draft.NumberOverridden,
		InvoiceDate:       draft.InvoiceDate,
		DueDate:           draft.DueDate,
		InvoiceStatus:     string(draft.InvoiceStatus),
		Items:             items,
		DefaultTaxRate:    draft.DefaultTaxRate.Float64(),
		Notes:             draft.Notes,
		Terms:             draft.Terms,
		Subtotal:          draft.Subtotal.StringFixed(2),
		Tax:               draft.Tax.StringFixed(2),
		Total:             draft.Total.StringFixed(2),
		Status:            string(draft.Status),
		SubmittedAt:       draft.SubmittedAt,
	}
}

// ToCatalogResponse converts a catalog snapshot, marking selected items
func ToCatalogResponse(items []invoicing.CatalogItem, draft *invoicing.Draft) []CatalogItemResponse {
	responses := make([]CatalogItemResponse, len(items))
	for i, item := range items {
		responses[i] = CatalogItemResponse{
			ID:        item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.Float64(),
			Selected:  draft.IsSelected(item.ID),
		}
	}
	return responses
}
