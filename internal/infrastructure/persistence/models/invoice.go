package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// InvoiceModel is the persistence model for the invoice Draft aggregate.
// Money and tax rate columns rely on the value objects' Valuer/Scanner
// implementations and store bare numerics.
type InvoiceModel struct {
	AggregateModel
	Number            string                `gorm:"type:varchar(50);not null;index:idx_invoices_number"`
	NumberOverridden  bool                  `gorm:"not null;default:false"`
	ClientID          *uuid.UUID            `gorm:"type:uuid;index"`
	ClientCompanyName string                `gorm:"type:varchar(200)"`
	InvoiceDate       time.Time             `gorm:"not null"`
	DueDate           time.Time             `gorm:"not null"`
	InvoiceStatus     string                `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	DefaultTaxRate    valueobject.TaxRate   `gorm:"type:decimal(9,4);not null;default:0"`
	Notes             string                `gorm:"type:text"`
	Terms             string                `gorm:"type:text"`
	Subtotal          valueobject.Money     `gorm:"type:decimal(18,4);not null;default:0"`
	Tax               valueobject.Money     `gorm:"type:decimal(18,4);not null;default:0"`
	Total             valueobject.Money     `gorm:"type:decimal(18,4);not null;default:0"`
	Status            string                `gorm:"type:varchar(20);not null"`
	SubmittedAt       *time.Time            `gorm:"index"`
	Items             []InvoiceLineItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Draft aggregate.
func (m *InvoiceModel) ToDomain() *invoicing.Draft {
	draft := &invoicing.Draft{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		ClientID:          m.ClientID,
		ClientCompanyName: m.ClientCompanyName,
		Number:            m.Number,
		NumberOverridden:  m.NumberOverridden,
		InvoiceDate:       m.InvoiceDate,
		DueDate:           m.DueDate,
		InvoiceStatus:     invoicing.InvoiceStatus(m.InvoiceStatus),
		DefaultTaxRate:    m.DefaultTaxRate,
		Notes:             m.Notes,
		Terms:             m.Terms,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		Total:             m.Total,
		Status:            invoicing.DraftStatus(m.Status),
		SubmittedAt:       m.SubmittedAt,
		Items:             make([]invoicing.LineItem, len(m.Items)),
	}
	for i, item := range m.Items {
		draft.Items[i] = *item.ToDomain()
	}
	return draft
}

// FromDomain populates the persistence model from a domain Draft aggregate.
func (m *InvoiceModel) FromDomain(d *invoicing.Draft) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Number = d.Number
	m.NumberOverridden = d.NumberOverridden
	m.ClientID = d.ClientID
	m.ClientCompanyName = d.ClientCompanyName
	m.InvoiceDate = d.InvoiceDate
	m.DueDate = d.DueDate
	m.InvoiceStatus = string(d.InvoiceStatus)
	m.DefaultTaxRate = d.DefaultTaxRate
	m.Notes = d.Notes
	m.Terms = d.Terms
	m.Subtotal = d.Subtotal
	m.Tax = d.Tax
	m.Total = d.Total
	m.Status = string(d.Status)
	m.SubmittedAt = d.SubmittedAt
	m.Items = make([]InvoiceLineItemModel, len(d.Items))
	for i, item := range d.Items {
		m.Items[i] = *InvoiceLineItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Draft.
func InvoiceModelFromDomain(d *invoicing.Draft) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(d)
	return m
}

// InvoiceLineItemModel is the persistence model for invoice line items.
type InvoiceLineItemModel struct {
	BaseModel
	InvoiceID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	CatalogItemID uuid.UUID           `gorm:"type:uuid;not null"`
	Description   string              `gorm:"type:varchar(200);not null"`
	Quantity      int64               `gorm:"not null;default:1"`
	UnitPrice     valueobject.Money   `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate       valueobject.TaxRate `gorm:"type:decimal(9,4);not null;default:0"`
	Amount        valueobject.Money   `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceLineItemModel) TableName() string {
	return "invoice_line_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *InvoiceLineItemModel) ToDomain() *invoicing.LineItem {
	return &invoicing.LineItem{
		ID:            m.ID,
		DraftID:       m.InvoiceID,
		CatalogItemID: m.CatalogItemID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TaxRate:       m.TaxRate,
		Amount:        m.Amount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// InvoiceLineItemModelFromDomain creates a persistence model from a domain LineItem.
func InvoiceLineItemModelFromDomain(i *invoicing.LineItem) *InvoiceLineItemModel {
	return &InvoiceLineItemModel{
		BaseModel: BaseModel{
			ID:        i.ID,
			CreatedAt: i.CreatedAt,
			UpdatedAt: i.UpdatedAt,
		},
		InvoiceID:     i.DraftID,
		CatalogItemID: i.CatalogItemID,
		Description:   i.Description,
		Quantity:      i.Quantity,
		UnitPrice:     i.UnitPrice,
		TaxRate:       i.TaxRate,
		Amount:        i.Amount,
	}
}
