package invoicing

import (
	"context"

	"github.com/google/uuid"
)

// DraftRepository is the persistence sink for submitted invoice drafts.
// Save failures are surfaced to the caller unchanged; the engine does not
// retry on its own.
type DraftRepository interface {
	Save(ctx context.Context, draft *Draft) error
	FindByID(ctx context.Context, id uuid.UUID) (*Draft, error)
	// FindByNumber lets callers detect collisions of generated numbers
	FindByNumber(ctx context.Context, number string) (*Draft, error)
}

// CatalogProvider supplies the ordered snapshot of a client's purchasable
// items. The engine treats the snapshot as immutable.
type CatalogProvider interface {
	Snapshot(ctx context.Context, clientID uuid.UUID) ([]CatalogItem, error)
}

// ClientProvider resolves client reference data owned by the client records
// screens of the surrounding dashboard
type ClientProvider interface {
	FindClient(ctx context.Context, clientID uuid.UUID) (*Client, error)
}
