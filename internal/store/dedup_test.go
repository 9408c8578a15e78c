package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"jobscout-engine/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPosting(fp string) domain.Posting {
	return domain.Posting{
		Fingerprint:   fp,
		Title:         "IT Support Specialist",
		Company:       "Acme",
		LocationRaw:   "Jersey City, NJ",
		URL:           "https://example.com/job/" + fp,
		Source:        domain.SourceLinkedIn,
		LocationClass: domain.LocationClose,
		FitScore:      80,
	}
}

func TestMarkSeenIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	p := testPosting("fp-one")
	if err := db.MarkSeen(ctx, p, now); err != nil {
		t.Fatalf("first MarkSeen: %v", err)
	}
	if err := db.MarkSeen(ctx, p, now.Add(time.Hour)); err != nil {
		t.Fatalf("second MarkSeen: %v", err)
	}

	seen, err := db.HasSeen(ctx, "fp-one")
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("HasSeen = false after MarkSeen")
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSeen != 1 {
		t.Errorf("TotalSeen = %d after duplicate MarkSeen, want 1", stats.TotalSeen)
	}
}

func TestHasSeenUnknown(t *testing.T) {
	db := openTestDB(t)

	seen, err := db.HasSeen(context.Background(), "never-inserted")
	if err != nil {
		t.Fatal(err)
	}
	if seen {
		t.Error("HasSeen = true for a fingerprint that was never marked")
	}
}

func TestMarkDeliveredUnknownFingerprint(t *testing.T) {
	db := openTestDB(t)

	err := db.MarkDelivered(context.Background(), "never-inserted", time.Now())
	if !errors.Is(err, ErrUnknownFingerprint) {
		t.Errorf("got err %v, want ErrUnknownFingerprint", err)
	}
}

func TestMarkDeliveredMonotonic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := db.MarkSeen(ctx, testPosting("fp-mono"), now); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkDelivered(ctx, "fp-mono", now); err != nil {
		t.Fatal(err)
	}
	// second delivery must keep the original delivered_at
	if err := db.MarkDelivered(ctx, "fp-mono", now.Add(2*time.Hour)); err != nil {
		t.Fatal(err)
	}

	var deliveredAt string
	err := db.Pool.QueryRowContext(ctx,
		`SELECT delivered_at FROM seen_jobs WHERE fingerprint = ?;`, "fp-mono").Scan(&deliveredAt)
	if err != nil {
		t.Fatal(err)
	}
	if deliveredAt != now.Format(time.RFC3339) {
		t.Errorf("delivered_at = %s, want original %s", deliveredAt, now.Format(time.RFC3339))
	}
}

func TestMarkSeenBatchAtomic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	batch := []domain.Posting{testPosting("fp-a"), testPosting("fp-b"), testPosting("fp-c")}
	if err := db.MarkSeenBatch(ctx, batch, now); err != nil {
		t.Fatal(err)
	}

	for _, p := range batch {
		seen, err := db.HasSeen(ctx, p.Fingerprint)
		if err != nil {
			t.Fatal(err)
		}
		if !seen {
			t.Errorf("fingerprint %s missing after batch mark", p.Fingerprint)
		}
	}
}

func TestUndeliveredSinceOrderAndCutoff(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	if err := db.MarkSeen(ctx, testPosting("fp-old"), base.Add(-48*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkSeen(ctx, testPosting("fp-mid"), base.Add(-2*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkSeen(ctx, testPosting("fp-new"), base.Add(-1*time.Hour)); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkDelivered(ctx, "fp-mid", base); err != nil {
		t.Fatal(err)
	}

	recs, err := db.UndeliveredSince(ctx, base.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d undelivered records, want 1", len(recs))
	}
	if recs[0].Fingerprint != "fp-new" {
		t.Errorf("undelivered fingerprint = %s, want fp-new", recs[0].Fingerprint)
	}
}

func TestUndeliveredPostingsSkipsExcluded(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	ok := testPosting("fp-keep")
	excl := testPosting("fp-drop")
	excl.LocationClass = domain.LocationExcluded
	if err := db.MarkSeenBatch(ctx, []domain.Posting{ok, excl}, now); err != nil {
		t.Fatal(err)
	}

	got, err := db.UndeliveredPostings(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Fingerprint != "fp-keep" {
		t.Errorf("UndeliveredPostings = %+v, want only fp-keep", got)
	}
}

func TestCleanupKeepsUndelivered(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	old := time.Now().UTC().Add(-40 * 24 * time.Hour)

	if err := db.MarkSeen(ctx, testPosting("fp-del"), old); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkSeen(ctx, testPosting("fp-undel"), old); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkDelivered(ctx, "fp-del", old); err != nil {
		t.Fatal(err)
	}

	n, err := db.CleanupOlderThan(ctx, 30*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}

	seen, err := db.HasSeen(ctx, "fp-undel")
	if err != nil {
		t.Fatal(err)
	}
	if !seen {
		t.Error("undelivered record was pruned; retention must only drop delivered rows")
	}
}
