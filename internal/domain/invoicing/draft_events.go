package invoicing

import (
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDraft = "InvoiceDraft"

// Event type constants
const (
	EventTypeDraftCreated   = "InvoiceDraftCreated"
	EventTypeClientAttached = "InvoiceClientAttached"
	EventTypeDraftSubmitted = "InvoiceDraftSubmitted"
)

// DraftCreatedEvent is raised when a new empty draft is created
type DraftCreatedEvent struct {
	shared.BaseDomainEvent
	DraftID uuid.UUID `json:"draft_id"`
}

// NewDraftCreatedEvent creates a new DraftCreatedEvent
func NewDraftCreatedEvent(draft *Draft) *DraftCreatedEvent {
	return &DraftCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDraftCreated, AggregateTypeDraft, draft.ID),
		DraftID:         draft.ID,
	}
}

// EventType returns the event type name
func (e *DraftCreatedEvent) EventType() string {
	return EventTypeDraftCreated
}

// ClientAttachedEvent is raised when a client is attached to a draft
type ClientAttachedEvent struct {
	shared.BaseDomainEvent
	DraftID           uuid.UUID `json:"draft_id"`
	ClientID          uuid.UUID `json:"client_id"`
	ClientCompanyName string    `json:"client_company_name"`
}

// NewClientAttachedEvent creates a new ClientAttachedEvent
func NewClientAttachedEvent(draft *Draft) *ClientAttachedEvent {
	return &ClientAttachedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeClientAttached, AggregateTypeDraft, draft.ID),
		DraftID:           draft.ID,
		ClientID:          *draft.ClientID,
		ClientCompanyName: draft.ClientCompanyName,
	}
}

// EventType returns the event type name
func (e *ClientAttachedEvent) EventType() string {
	return EventTypeClientAttached
}

// LineItemInfo represents line item information for events
type LineItemInfo struct {
	ItemID        uuid.UUID       `json:"item_id"`
	CatalogItemID uuid.UUID       `json:"catalog_item_id"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Amount        decimal.Decimal `json:"amount"`
}

// DraftSubmittedEvent is raised when a draft is submitted to persistence
type DraftSubmittedEvent struct {
	shared.BaseDomainEvent
	DraftID     uuid.UUID       `json:"draft_id"`
	Number      string          `json:"number"`
	ClientID    uuid.UUID       `json:"client_id"`
	InvoiceDate time.Time       `json:"invoice_date"`
	DueDate     time.Time       `json:"due_date"`
	Items       []LineItemInfo  `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// NewDraftSubmittedEvent creates a new DraftSubmittedEvent
func NewDraftSubmittedEvent(draft *Draft) *DraftSubmittedEvent {
	items := make([]LineItemInfo, len(draft.Items))
	for i, item := range draft.Items {
		items[i] = LineItemInfo{
			ItemID:        item.ID,
			CatalogItemID: item.CatalogItemID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.Amount(),
			TaxRate:       item.TaxRate.Percent(),
			Amount:        item.Amount.Amount(),
		}
	}

	return &DraftSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDraftSubmitted, AggregateTypeDraft, draft.ID),
		DraftID:         draft.ID,
		Number:          draft.Number,
		ClientID:        *draft.ClientID,
		InvoiceDate:     draft.InvoiceDate,
		DueDate:         draft.DueDate,
		Items:           items,
		Subtotal:        draft.Subtotal.Amount(),
		Tax:             draft.Tax.Amount(),
		Total:           draft.Total.Amount(),
	}
}

// EventType returns the event type name
func (e *DraftSubmittedEvent) EventType() string {
	return EventTypeDraftSubmitted
}
