// Package deliver advances a batch's cursor and keeps the delivered flags in
// the dedup store in step with what actually went out.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/rank"
	"jobscout-engine/internal/store"
)

// ErrInvalidRequest rejects a non-positive count before any state changes.
var ErrInvalidRequest = errors.New("invalid request")

type Cursor struct {
	db *store.DB
}

func New(db *store.DB) *Cursor {
	return &Cursor{db: db}
}

// Take returns up to n postings starting at the batch cursor, marks each one
// delivered, and advances the cursor by the count actually returned. An
// exhausted batch yields an empty slice, which is not an error: the caller
// reports "no more jobs". The delivered marks are committed before the cursor
// moves, so a storage failure re-delivers rather than skips.
func (c *Cursor) Take(ctx context.Context, batch *rank.Batch, n int) ([]domain.Posting, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", ErrInvalidRequest, n)
	}
	if batch == nil || batch.Remaining() == 0 {
		return nil, nil
	}

	end := batch.Cursor + n
	if end > batch.Len() {
		end = batch.Len()
	}
	out := batch.Postings[batch.Cursor:end]

	fps := make([]string, len(out))
	for i, p := range out {
		fps[i] = p.Fingerprint
	}
	if err := c.db.MarkDeliveredBatch(ctx, fps, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("deliver: %w", err)
	}

	batch.Cursor = end
	return out, nil
}

// Rebuild reconstructs a delivery batch from the store's seen-but-undelivered
// records, re-sorted with the ranking order. Used after a restart, where the
// in-memory cursor is gone but the delivered flags survive.
func Rebuild(ctx context.Context, db *store.DB, cutoff time.Time) (*rank.Batch, error) {
	postings, err := db.UndeliveredPostings(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("rebuild batch: %w", err)
	}
	rank.SortPostings(postings)
	return rank.NewBatch(postings, time.Now().UTC()), nil
}
