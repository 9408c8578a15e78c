package deliver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/rank"
	"jobscout-engine/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seededBatch(t *testing.T, db *store.DB, n int) *rank.Batch {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	ps := make([]domain.Posting, n)
	for i := range ps {
		ps[i] = domain.Posting{
			Fingerprint:   fmt.Sprintf("fp-%03d", i),
			Title:         fmt.Sprintf("IT Support %d", i),
			Company:       "Acme",
			LocationRaw:   "Jersey City, NJ",
			Source:        domain.SourceLinkedIn,
			LocationClass: domain.LocationClose,
			FitScore:      100 - i,
		}
	}
	if err := db.MarkSeenBatch(ctx, ps, now); err != nil {
		t.Fatal(err)
	}
	return rank.NewBatch(ps, now)
}

func TestTakePagesThroughBatch(t *testing.T) {
	db := openTestDB(t)
	batch := seededBatch(t, db, 15)
	cursor := New(db)
	ctx := context.Background()

	first, err := cursor.Take(ctx, batch, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 10 {
		t.Fatalf("first page len = %d, want 10", len(first))
	}
	if batch.Remaining() != 5 {
		t.Errorf("remaining = %d, want 5", batch.Remaining())
	}

	second, err := cursor.Take(ctx, batch, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 5 {
		t.Fatalf("second page len = %d, want 5", len(second))
	}

	// no overlap between pages
	if first[len(first)-1].Fingerprint == second[0].Fingerprint {
		t.Error("pages overlap; a posting was delivered twice")
	}

	third, err := cursor.Take(ctx, batch, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 0 {
		t.Errorf("exhausted batch returned %d postings, want 0", len(third))
	}
	if batch.State() != rank.BatchExhausted {
		t.Errorf("batch state = %s, want exhausted", batch.State())
	}
}

func TestTakeRejectsNonPositiveCount(t *testing.T) {
	db := openTestDB(t)
	batch := seededBatch(t, db, 3)
	cursor := New(db)

	for _, n := range []int{0, -1} {
		_, err := cursor.Take(context.Background(), batch, n)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Take(n=%d) err = %v, want ErrInvalidRequest", n, err)
		}
	}
	if batch.Cursor != 0 {
		t.Errorf("cursor moved to %d on rejected request, want 0", batch.Cursor)
	}
}

func TestTakeNilBatch(t *testing.T) {
	db := openTestDB(t)
	cursor := New(db)

	got, err := cursor.Take(context.Background(), nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Take on nil batch = %v, want nil", got)
	}
}

func TestTakeMarksDelivered(t *testing.T) {
	db := openTestDB(t)
	batch := seededBatch(t, db, 4)
	cursor := New(db)
	ctx := context.Background()

	if _, err := cursor.Take(ctx, batch, 2); err != nil {
		t.Fatal(err)
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDelivered != 2 {
		t.Errorf("TotalDelivered = %d, want 2", stats.TotalDelivered)
	}
}

func TestRebuildResumesUndelivered(t *testing.T) {
	db := openTestDB(t)
	batch := seededBatch(t, db, 6)
	cursor := New(db)
	ctx := context.Background()

	if _, err := cursor.Take(ctx, batch, 4); err != nil {
		t.Fatal(err)
	}

	// simulate a restart: rebuild from the store alone
	rebuilt, err := Rebuild(ctx, db, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if rebuilt.Len() != 2 {
		t.Fatalf("rebuilt len = %d, want the 2 undelivered postings", rebuilt.Len())
	}

	got, err := cursor.Take(ctx, rebuilt, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("rebuilt delivery len = %d, want 2", len(got))
	}
	// highest remaining fit score first
	if got[0].FitScore < got[1].FitScore {
		t.Error("rebuilt batch not in ranking order")
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDelivered != 6 {
		t.Errorf("TotalDelivered = %d after full drain, want 6", stats.TotalDelivered)
	}
}
