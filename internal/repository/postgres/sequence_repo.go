package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a new PostgreSQL-backed SequenceRepository.
func NewSequenceRepo(db *sqlx.DB) port.SequenceRepository {
	return &sequenceRepo{db: db}
}

// Next increments and returns the per-business invoice counter in a single
// statement. The counter only moves forward, so a number handed out once is
// never handed out again even if its invoice is later deleted.
func (r *sequenceRepo) Next(ctx context.Context, businessID uuid.UUID) (int, error) {
	query := `INSERT INTO invoice_sequences (business_id, next_seq)
		VALUES ($1, 2)
		ON CONFLICT (business_id)
		DO UPDATE SET next_seq = invoice_sequences.next_seq + 1
		RETURNING next_seq - 1`

	var seq int
	if err := r.db.GetContext(ctx, &seq, query, businessID); err != nil {
		return 0, fmt.Errorf("sequenceRepo.Next: %w", err)
	}
	return seq, nil
}
