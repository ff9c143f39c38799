package models

import (
	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CatalogItemModel is the persistence model for a client's purchasable items.
// Position fixes the presentation order of the snapshot.
type CatalogItemModel struct {
	BaseModel
	ClientID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	Name      string            `gorm:"type:varchar(200);not null"`
	UnitPrice valueobject.Money `gorm:"type:decimal(18,4);not null;default:0"`
	Position  int               `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// ToDomain converts the persistence model to a domain CatalogItem.
func (m *CatalogItemModel) ToDomain() invoicing.CatalogItem {
	return invoicing.CatalogItem{
		ID:        m.ID,
		Name:      m.Name,
		UnitPrice: m.UnitPrice,
	}
}

// ClientModel is the persistence model for client reference data.
type ClientModel struct {
	BaseModel
	CompanyName string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *invoicing.Client {
	return &invoicing.Client{
		ID:          m.ID,
		CompanyName: m.CompanyName,
	}
}
