package persistence

import (
	"fmt"

	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persistence models.
// Intended for development and tests; production schemas are managed out
// of band.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ClientModel{},
		&models.CatalogItemModel{},
		&models.InvoiceModel{},
		&models.InvoiceLineItemModel{},
	); err != nil {
		return fmt.Errorf("running auto-migration: %w", err)
	}
	return nil
}
