package localstore

import (
	"context"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/port"
)

var _ port.ChangeFeed = (*Store)(nil)

// subscriber is one change feed listener. Snapshots are delivered as
// opaque values; the typed Watch* methods do the filtering and casting.
type subscriber struct {
	businessID uuid.UUID
	ch         chan any
	done       <-chan struct{}
}

// publish pushes a fresh snapshot of the collection at key to every live
// subscriber and prunes the ones whose context has ended. Callers hold s.mu.
func (s *Store) publish(key string, snapshot any) {
	live := s.subs[key][:0]
	for _, sub := range s.subs[key] {
		select {
		case <-sub.done:
			close(sub.ch)
			continue
		default:
		}
		// A stalled consumer loses intermediate snapshots, never the
		// latest: evict the queued one and replace it.
		select {
		case sub.ch <- snapshot:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snapshot:
			default:
			}
		}
		live = append(live, sub)
	}
	s.subs[key] = live
}

// subscribe registers a listener for key and returns its raw channel. The
// current snapshot is delivered immediately so consumers start from a
// complete view rather than waiting for the first mutation.
func (s *Store) subscribe(ctx context.Context, key string, businessID uuid.UUID, current any) chan any {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subscriber{
		businessID: businessID,
		ch:         make(chan any, 1),
		done:       ctx.Done(),
	}
	sub.ch <- current
	s.subs[key] = append(s.subs[key], sub)

	context.AfterFunc(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		live := s.subs[key][:0]
		for _, candidate := range s.subs[key] {
			if candidate == sub {
				close(candidate.ch)
				continue
			}
			live = append(live, candidate)
		}
		s.subs[key] = live
	})

	return sub.ch
}

// WatchContacts streams full snapshots of the contact collection. Each
// delivery replaces all prior state.
func (s *Store) WatchContacts(ctx context.Context, businessID uuid.UUID) (<-chan []domain.Contact, error) {
	var contacts []domain.Contact
	s.mu.Lock()
	err := s.read(keyCustomers, &contacts)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	raw := s.subscribe(ctx, keyCustomers, businessID, contacts)
	out := make(chan []domain.Contact, 1)
	go func() {
		defer close(out)
		for snapshot := range raw {
			all, ok := snapshot.([]domain.Contact)
			if !ok {
				continue
			}
			out <- filterByBusiness(all, businessID, func(c domain.Contact) uuid.UUID { return c.BusinessID })
		}
	}()
	return out, nil
}

// WatchProducts streams full snapshots of the product collection.
func (s *Store) WatchProducts(ctx context.Context, businessID uuid.UUID) (<-chan []domain.Product, error) {
	var products []domain.Product
	s.mu.Lock()
	err := s.read(keyProducts, &products)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	raw := s.subscribe(ctx, keyProducts, businessID, products)
	out := make(chan []domain.Product, 1)
	go func() {
		defer close(out)
		for snapshot := range raw {
			all, ok := snapshot.([]domain.Product)
			if !ok {
				continue
			}
			out <- filterByBusiness(all, businessID, func(p domain.Product) uuid.UUID { return p.BusinessID })
		}
	}()
	return out, nil
}

// WatchInvoices streams full snapshots of the invoice collection.
func (s *Store) WatchInvoices(ctx context.Context, businessID uuid.UUID) (<-chan []domain.Invoice, error) {
	var invoices []domain.Invoice
	s.mu.Lock()
	err := s.read(keyInvoices, &invoices)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	raw := s.subscribe(ctx, keyInvoices, businessID, invoices)
	out := make(chan []domain.Invoice, 1)
	go func() {
		defer close(out)
		for snapshot := range raw {
			all, ok := snapshot.([]domain.Invoice)
			if !ok {
				continue
			}
			out <- filterByBusiness(all, businessID, func(i domain.Invoice) uuid.UUID { return i.BusinessID })
		}
	}()
	return out, nil
}

func filterByBusiness[T any](all []T, businessID uuid.UUID, owner func(T) uuid.UUID) []T {
	out := make([]T, 0, len(all))
	for _, item := range all {
		if owner(item) == businessID {
			out = append(out, item)
		}
	}
	return out
}
