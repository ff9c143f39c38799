package invoicing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/backoffice/backend/internal/domain/invoicing"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftService drives the invoice composition lifecycle. Drafts under
// composition live in an in-process session store; each draft is owned by
// the session that created it (single writer), so the mutex only guards
// the map itself. Persistence is reached once, on submit.
type DraftService struct {
	mu      sync.RWMutex
	drafts  map[uuid.UUID]*invoicing.Draft
	clients invoicing.ClientProvider
	catalog invoicing.CatalogProvider
	repo    invoicing.DraftRepository
	logger  *zap.Logger
	now     func() time.Time
}

// NewDraftService creates a new DraftService
func NewDraftService(clients invoicing.ClientProvider, catalog invoicing.CatalogProvider, repo invoicing.DraftRepository, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		drafts:  make(map[uuid.UUID]*invoicing.Draft),
		clients: clients,
		catalog: catalog,
		repo:    repo,
		logger:  logger,
		now:     time.Now,
	}
}

// Create starts a new empty draft
func (s *DraftService) Create(ctx context.Context) (*DraftResponse, error) {
	draft := invoicing.NewDraft()

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	s.logger.Debug("draft created", zap.String("draft_id", draft.ID.String()))

	response := ToDraftResponse(draft)
	return &response, nil
}

// Get returns the current state of a draft
func (s *DraftService) Get(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	response := ToDraftResponse(draft)
	return &response, nil
}

// AttachClient resolves the client and attaches it to the draft, clearing
// any selection left over from a previous client
func (s *DraftService) AttachClient(ctx context.Context, draftID, clientID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if err := draft.AttachClient(*client); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// Catalog returns the client's catalog snapshot with selection flags
func (s *DraftService) Catalog(ctx context.Context, draftID uuid.UUID) ([]CatalogItemResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	if !draft.HasClient() {
		return nil, shared.NewDomainError("MISSING_CLIENT", "Attach a client before browsing the catalog")
	}

	items, err := s.catalog.Snapshot(ctx, *draft.ClientID)
	if err != nil {
		return nil, err
	}

	return ToCatalogResponse(items, draft), nil
}

// ToggleItem adds or removes a catalog item on the draft. The item is
// resolved against the client's current catalog snapshot so a fresh price
// is captured at selection time.
func (s *DraftService) ToggleItem(ctx context.Context, draftID, catalogItemID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}
	if !draft.HasClient() {
		return nil, shared.NewDomainError("MISSING_CLIENT", "Attach a client before selecting items")
	}

	item, err := s.resolveCatalogItem(ctx, *draft.ClientID, catalogItemID)
	if err != nil {
		return nil, err
	}

	if err := draft.ToggleItem(*item); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// SetItemQuantity updates one line's quantity; non-positive input
// collapses to 1
func (s *DraftService) SetItemQuantity(ctx context.Context, draftID, catalogItemID uuid.UUID, quantity int64) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.SetItemQuantity(catalogItemID, quantity); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// SetItemTaxRate updates one line's tax rate; invalid percentages collapse
// to 0 at this boundary
func (s *DraftService) SetItemTaxRate(ctx context.Context, draftID, catalogItemID uuid.UUID, percent float64) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.SetItemTaxRate(catalogItemID, valueobject.NormalizeTaxRate(percent)); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// SetDefaultTaxRate updates the invoice-level default and cascades it over
// every existing line
// ClearItems removes every selected line item from the draft.
func (s *DraftService) ClearItems(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.ClearItems(); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

func (s *DraftService) SetDefaultTaxRate(ctx context.Context, draftID uuid.UUID, percent float64) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.SetDefaultTaxRate(valueobject.NormalizeTaxRate(percent)); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// SetDates stores the invoice and due dates as supplied
func (s *DraftService) SetDates(ctx context.Context, draftID uuid.UUID, req SetDatesRequest) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.SetDates(req.InvoiceDate, req.DueDate); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// SetNotes updates the draft notes
func (s *DraftService) SetNotes(ctx context.Context, draftID uuid.UUID, notes string) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.SetNotes(notes); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// SetTerms updates the draft payment terms
func (s *DraftService) SetTerms(ctx context.Context, draftID uuid.UUID, terms string) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.SetTerms(terms); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// OverrideNumber stores an operator-supplied invoice number; it is
// immutable once set
func (s *DraftService) OverrideNumber(ctx context.Context, draftID uuid.UUID, number string) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.OverrideNumber(number); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// Submit finalizes the draft and hands it to the persistence sink. A save
// failure rolls the submission back so it can be retried; the error is
// passed through unchanged.
func (s *DraftService) Submit(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.find(draftID)
	if err != nil {
		return nil, err
	}

	if err := draft.Submit(s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, draft); err != nil {
		draft.RevertSubmit()
		s.logger.Warn("draft submission failed, left retryable",
			zap.String("draft_id", draft.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("persisting invoice: %w", err)
	}

	s.logger.Info("invoice submitted",
		zap.String("draft_id", draft.ID.String()),
		zap.String("number", draft.Number),
	)

	response := ToDraftResponse(draft)
	return &response, nil
}

// Discard removes an unsubmitted draft from the session store
func (s *DraftService) Discard(ctx context.Context, draftID uuid.UUID) error {
	draft, err := s.find(draftID)
	if err != nil {
		return err
	}
	if draft.IsSubmitted() {
		return shared.NewDomainError("DRAFT_SUBMITTED", "Cannot discard a submitted draft")
	}

	s.mu.Lock()
	delete(s.drafts, draftID)
	s.mu.Unlock()

	return nil
}

func (s *DraftService) find(draftID uuid.UUID) (*invoicing.Draft, error) {
	s.mu.RLock()
	draft, ok := s.drafts[draftID]
	s.mu.RUnlock()
	if !ok {
		return nil, shared.ErrNotFound
	}
	return draft, nil
}

func (s *DraftService) resolveCatalogItem(ctx context.Context, clientID, catalogItemID uuid.UUID) (*invoicing.CatalogItem, error) {
	items, err := s.catalog.Snapshot(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == catalogItemID {
			return &items[i], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Catalog item not found for this client")
}
