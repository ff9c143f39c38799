package invoicing

import (
	"fmt"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DraftStatus represents the composition lifecycle of a draft invoice
type DraftStatus string

const (
	DraftStatusEmpty          DraftStatus = "EMPTY"
	DraftStatusClientAttached DraftStatus = "CLIENT_ATTACHED"
	DraftStatusItemsPopulated DraftStatus = "ITEMS_POPULATED"
	DraftStatusSubmitted      DraftStatus = "SUBMITTED"
)

// IsValid checks if the status is a valid DraftStatus
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusEmpty, DraftStatusClientAttached, DraftStatusItemsPopulated, DraftStatusSubmitted:
		return true
	}
	return false
}

// String returns the string representation of DraftStatus
func (s DraftStatus) String() string {
	return string(s)
}

// InvoiceStatus is the document status carried on the persisted invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Draft is the invoice composition aggregate root. It combines the client
// reference, dates, notes/terms, the current catalog selection and the
// derived totals, and is the unit handed to persistence on submission.
//
// Subtotal, Tax and Total are pure functions of Items and DefaultTaxRate;
// every mutation recomputes them in full rather than patching them
// incrementally, so a consistent triple is always observable.
type Draft struct {
	shared.BaseAggregateRoot
	ClientID          *uuid.UUID
	ClientCompanyName string
	Number            string
	NumberOverridden  bool
	InvoiceDate       time.Time
	DueDate           time.Time
	InvoiceStatus     InvoiceStatus
	Items             []LineItem
	DefaultTaxRate    valueobject.TaxRate
	Notes             string
	Terms             string
	Subtotal          valueobject.Money
	Tax               valueobject.Money
	Total             valueobject.Money
	Status            DraftStatus
	SubmittedAt       *time.Time
}

// NewDraft creates an empty draft with no client and no items
func NewDraft() *Draft {
	now := time.Now()
	draft := &Draft{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceDate:       now,
		DueDate:           now,
		InvoiceStatus:     InvoiceStatusDraft,
		Items:             make([]LineItem, 0),
		DefaultTaxRate:    valueobject.ZeroTaxRate(),
		Subtotal:          valueobject.ZeroUSD(),
		Tax:               valueobject.ZeroUSD(),
		Total:             valueobject.ZeroUSD(),
		Status:            DraftStatusEmpty,
	}

	draft.AddDomainEvent(NewDraftCreatedEvent(draft))

	return draft
}

// AttachClient attaches a client reference. Any existing selection is
// cleared: selections do not carry over across clients.
func (d *Draft) AttachClient(client Client) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot attach a client to a submitted draft")
	}
	if client.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	clientID := client.ID
	d.ClientID = &clientID
	d.ClientCompanyName = client.CompanyName
	d.Items = d.Items[:0]
	d.Status = DraftStatusClientAttached
	d.recalculateTotals()
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewClientAttachedEvent(d))

	return nil
}

// ToggleItem adds the catalog item to the selection, or removes it if it is
// already selected. Adding snapshots the item's unit price and starts at
// quantity 1 with the current default tax rate.
func (d *Draft) ToggleItem(item CatalogItem) error {
	if !d.canModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify items in %s status", d.Status))
	}

	for idx := range d.Items {
		if d.Items[idx].CatalogItemID == item.ID {
			d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
			d.afterItemsChanged()
			return nil
		}
	}

	lineItem, err := NewLineItem(d.ID, item, d.DefaultTaxRate)
	if err != nil {
		return err
	}

	d.Items = append(d.Items, *lineItem)
	d.afterItemsChanged()

	return nil
}

// SetItemQuantity updates the quantity of a selected item. Non-positive
// quantities collapse to 1. Targeting an unselected item is an error, not
// an implicit selection.
func (d *Draft) SetItemQuantity(catalogItemID uuid.UUID, quantity int64) error {
	if !d.canModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify items in %s status", d.Status))
	}

	item := d.findItem(catalogItemID)
	if item == nil {
		return shared.NewDomainError("NOT_SELECTED", "Catalog item is not on the invoice")
	}

	item.UpdateQuantity(quantity)
	d.recalculateTotals()
	d.UpdatedAt = time.Now()

	return nil
}

// SetItemTaxRate overrides one line item's tax rate independent of the
// invoice default. The override is lost on the next SetDefaultTaxRate.
func (d *Draft) SetItemTaxRate(catalogItemID uuid.UUID, rate valueobject.TaxRate) error {
	if !d.canModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify items in %s status", d.Status))
	}

	item := d.findItem(catalogItemID)
	if item == nil {
		return shared.NewDomainError("NOT_SELECTED", "Catalog item is not on the invoice")
	}

	item.UpdateTaxRate(rate)
	d.recalculateTotals()
	d.UpdatedAt = time.Now()

	return nil
}

// SetDefaultTaxRate updates the invoice-level default and cascades: every
// existing line item's rate is overwritten and its amount recomputed.
// This is a deliberate bulk overwrite, not a new-items-only default.
func (d *Draft) SetDefaultTaxRate(rate valueobject.TaxRate) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot change tax rate on a submitted draft")
	}

	d.DefaultTaxRate = rate
	for idx := range d.Items {
		d.Items[idx].UpdateTaxRate(rate)
	}
	d.recalculateTotals()
	d.UpdatedAt = time.Now()

	return nil
}

// ClearItems empties the selection
func (d *Draft) ClearItems() error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot clear items on a submitted draft")
	}

	d.Items = d.Items[:0]
	d.afterItemsChanged()

	return nil
}

// SetDates sets the invoice and due dates. The engine accepts any pair;
// ordering policy belongs to the caller selecting the dates.
func (d *Draft) SetDates(invoiceDate, dueDate time.Time) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot change dates on a submitted draft")
	}

	d.InvoiceDate = invoiceDate
	d.DueDate = dueDate
	d.UpdatedAt = time.Now()

	return nil
}

// SetNotes sets the free-form notes shown on the invoice
func (d *Draft) SetNotes(notes string) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot change notes on a submitted draft")
	}

	d.Notes = notes
	d.UpdatedAt = time.Now()

	return nil
}

// SetTerms sets the payment terms shown on the invoice
func (d *Draft) SetTerms(terms string) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot change terms on a submitted draft")
	}

	d.Terms = terms
	d.UpdatedAt = time.Now()

	return nil
}

// OverrideNumber stores an operator-supplied invoice number verbatim.
// Once set it is immutable and takes precedence over generation for the
// lifetime of the draft.
func (d *Draft) OverrideNumber(number string) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot change the number of a submitted draft")
	}
	if number == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if d.NumberOverridden {
		return shared.NewDomainError("NUMBER_OVERRIDDEN", "Invoice number has already been set")
	}

	d.Number = number
	d.NumberOverridden = true
	d.UpdatedAt = time.Now()

	return nil
}

// CurrentNumber returns the number the draft would carry if submitted now:
// the operator override when present, otherwise a freshly generated one.
func (d *Draft) CurrentNumber(now time.Time) string {
	if d.NumberOverridden {
		return d.Number
	}
	return GenerateNumber(d.clientRef(), len(d.Items), now)
}

// Submit freezes the invoice number and moves the draft to its terminal
// state. It requires an attached client and a non-empty selection; a
// rejected submit leaves the draft unchanged.
func (d *Draft) Submit(now time.Time) error {
	if d.Status == DraftStatusSubmitted {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Draft has already been submitted")
	}
	if d.ClientID == nil {
		return shared.NewDomainError("MISSING_CLIENT", "Cannot submit without an attached client")
	}
	if len(d.Items) == 0 {
		return shared.NewDomainError("EMPTY_SELECTION", "Cannot submit without any selected items")
	}

	if !d.NumberOverridden {
		d.Number = GenerateNumber(d.clientRef(), len(d.Items), now)
	}

	submittedAt := now
	d.Status = DraftStatusSubmitted
	d.InvoiceStatus = InvoiceStatusPending
	d.SubmittedAt = &submittedAt
	d.UpdatedAt = now

	d.AddDomainEvent(NewDraftSubmittedEvent(d))

	return nil
}

// RevertSubmit undoes a submission whose hand-off to persistence failed,
// returning the draft to ItemsPopulated so it can be retried. A generated
// number is discarded; an operator override is kept.
func (d *Draft) RevertSubmit() {
	if d.Status != DraftStatusSubmitted {
		return
	}

	d.Status = DraftStatusItemsPopulated
	d.InvoiceStatus = InvoiceStatusDraft
	d.SubmittedAt = nil
	if !d.NumberOverridden {
		d.Number = ""
	}
	d.UpdatedAt = time.Now()
}

// IsSubmitted returns true if the draft reached its terminal state
func (d *Draft) IsSubmitted() bool {
	return d.Status == DraftStatusSubmitted
}

// HasClient returns true if a client is attached
func (d *Draft) HasClient() bool {
	return d.ClientID != nil
}

// IsSelected returns true if the catalog item is currently on the invoice
func (d *Draft) IsSelected(catalogItemID uuid.UUID) bool {
	return d.findItem(catalogItemID) != nil
}

// SelectionCount returns the number of selected items
func (d *Draft) SelectionCount() int {
	return len(d.Items)
}

// GetItem returns the line item for a catalog item, or nil
func (d *Draft) GetItem(catalogItemID uuid.UUID) *LineItem {
	return d.findItem(catalogItemID)
}

// Totals returns the current derived triple
func (d *Draft) Totals() Totals {
	return Totals{Subtotal: d.Subtotal, Tax: d.Tax, Total: d.Total}
}

func (d *Draft) canModifyItems() bool {
	return d.Status == DraftStatusClientAttached || d.Status == DraftStatusItemsPopulated
}

func (d *Draft) findItem(catalogItemID uuid.UUID) *LineItem {
	for idx := range d.Items {
		if d.Items[idx].CatalogItemID == catalogItemID {
			return &d.Items[idx]
		}
	}
	return nil
}

func (d *Draft) clientRef() *Client {
	if d.ClientID == nil {
		return nil
	}
	return &Client{ID: *d.ClientID, CompanyName: d.ClientCompanyName}
}

// afterItemsChanged settles lifecycle state and totals after the selection
// itself changed shape
func (d *Draft) afterItemsChanged() {
	if len(d.Items) > 0 {
		d.Status = DraftStatusItemsPopulated
	} else if d.ClientID != nil {
		d.Status = DraftStatusClientAttached
	}
	d.recalculateTotals()
	d.UpdatedAt = time.Now()
}

// recalculateTotals recomputes the full triple from scratch; totals are
// never patched incrementally
func (d *Draft) recalculateTotals() {
	totals := ComputeTotals(d.Items, d.DefaultTaxRate)
	d.Subtotal = totals.Subtotal
	d.Tax = totals.Tax
	d.Total = totals.Total
}
