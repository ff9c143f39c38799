package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements invoicing.DraftRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save creates or updates an invoice together with its line items. Line
// items removed from the draft since the last save are deleted.
func (r *GormInvoiceRepository) Save(ctx context.Context, draft *invoicing.Draft) error {
	model := models.InvoiceModelFromDomain(draft)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		currentIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			currentIDs[i] = item.ID
		}

		stale := tx.Where("invoice_id = ?", model.ID)
		if len(currentIDs) > 0 {
			stale = stale.Where("id NOT IN ?", currentIDs)
		}
		if err := stale.Delete(&models.InvoiceLineItemModel{}).Error; err != nil {
			return err
		}

		for i := range model.Items {
			model.Items[i].InvoiceID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Draft, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its document number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*invoicing.Draft, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
