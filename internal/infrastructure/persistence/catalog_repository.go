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

// GormCatalogRepository implements invoicing.CatalogProvider using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// Snapshot returns the client's catalog in presentation order.
func (r *GormCatalogRepository) Snapshot(ctx context.Context, clientID uuid.UUID) ([]invoicing.CatalogItem, error) {
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("position ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]invoicing.CatalogItem, len(rows))
	for i, row := range rows {
		items[i] = row.ToDomain()
	}
	return items, nil
}

// GormClientRepository implements invoicing.ClientProvider using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindClient finds a client by its ID
func (r *GormClientRepository) FindClient(ctx context.Context, clientID uuid.UUID) (*invoicing.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
