package port

import (
	"context"

	"github.com/google/uuid"

	"billbook/internal/domain"
)

// ChangeFeed streams full-collection snapshots. Every mutation to a watched
// collection produces a fresh snapshot of the whole collection on the
// channel, never an incremental diff. The channel closes when ctx is done.
//
// Consumers must treat each delivery as a replacement for all prior state.
type ChangeFeed interface {
	WatchContacts(ctx context.Context, businessID uuid.UUID) (<-chan []domain.Contact, error)
	WatchProducts(ctx context.Context, businessID uuid.UUID) (<-chan []domain.Product, error)
	WatchInvoices(ctx context.Context, businessID uuid.UUID) (<-chan []domain.Invoice, error)
}
