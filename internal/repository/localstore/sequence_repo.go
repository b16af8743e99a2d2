package localstore

import (
	"context"

	"github.com/google/uuid"

	"billbook/internal/port"
)

type sequenceRepo struct {
	store *Store
}

// NewSequenceRepo creates a file-backed SequenceRepository.
func NewSequenceRepo(store *Store) port.SequenceRepository {
	return &sequenceRepo{store: store}
}

// Next returns the current counter value and persists the increment before
// returning. The counter never rewinds, so deleted invoices leave gaps in
// the numbering rather than recycled numbers.
func (r *sequenceRepo) Next(_ context.Context, businessID uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	counters := map[uuid.UUID]int{}
	if err := r.store.read(keyNextInv, &counters); err != nil {
		return 0, err
	}

	seq, ok := counters[businessID]
	if !ok {
		seq = 1
	}
	counters[businessID] = seq + 1

	if err := r.store.write(keyNextInv, counters); err != nil {
		return 0, err
	}
	return seq, nil
}
