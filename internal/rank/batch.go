package rank

import (
	"time"

	"jobscout-engine/internal/domain"
)

// BatchState describes how far through delivery a batch is.
type BatchState string

const (
	BatchPending            BatchState = "pending"
	BatchPartiallyDelivered BatchState = "partially_delivered"
	BatchExhausted          BatchState = "exhausted"
)

// Batch is the ordered result of one ranking cycle plus the delivery cursor.
// A new cycle always supersedes the previous batch; batches never merge.
type Batch struct {
	Postings  []domain.Posting
	Cursor    int
	CreatedAt time.Time
}

func NewBatch(postings []domain.Posting, at time.Time) *Batch {
	return &Batch{Postings: postings, CreatedAt: at}
}

func (b *Batch) Len() int       { return len(b.Postings) }
func (b *Batch) Remaining() int { return len(b.Postings) - b.Cursor }

func (b *Batch) State() BatchState {
	switch {
	case b.Cursor >= len(b.Postings):
		return BatchExhausted
	case b.Cursor == 0:
		return BatchPending
	default:
		return BatchPartiallyDelivered
	}
}
