package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobscout-engine/internal/domain"
)

// ErrUnknownFingerprint means MarkDelivered was called for a fingerprint that
// was never marked seen. That is a call-ordering bug, not an input problem.
var ErrUnknownFingerprint = errors.New("unknown fingerprint")

// HasSeen reports whether the fingerprint has a dedup record.
func (d *DB) HasSeen(ctx context.Context, fingerprint string) (bool, error) {
	var one int
	err := d.Pool.QueryRowContext(ctx,
		`SELECT 1 FROM seen_jobs WHERE fingerprint = ? LIMIT 1;`, fingerprint).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has_seen: %w", err)
	}
	return true, nil
}

// MarkSeen inserts a dedup record if absent. Calling it twice for the same
// fingerprint is a no-op, not an error.
func (d *DB) MarkSeen(ctx context.Context, p domain.Posting, at time.Time) error {
	_, err := d.Pool.ExecContext(ctx, insertSeenSQL, seenArgs(p, at)...)
	if err != nil {
		return fmt.Errorf("mark_seen: %w", err)
	}
	return nil
}

// MarkSeenBatch records every posting in a single transaction, so a storage
// failure leaves nothing marked seen. The ranking pipeline relies on this for
// its no-partial-mutation guarantee.
func (d *DB) MarkSeenBatch(ctx context.Context, postings []domain.Posting, at time.Time) error {
	if len(postings) == 0 {
		return nil
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark_seen batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertSeenSQL)
	if err != nil {
		return fmt.Errorf("mark_seen batch: %w", err)
	}
	defer stmt.Close()

	for _, p := range postings {
		if _, err := stmt.ExecContext(ctx, seenArgs(p, at)...); err != nil {
			return fmt.Errorf("mark_seen batch fingerprint=%s: %w", p.Fingerprint, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark_seen batch commit: %w", err)
	}
	return nil
}

const insertSeenSQL = `
INSERT OR IGNORE INTO seen_jobs
  (fingerprint, title, company, location, url, source, location_class, fit_score, posted_at, first_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

func seenArgs(p domain.Posting, at time.Time) []any {
	var postedAt any
	if p.PostedAt != nil {
		postedAt = p.PostedAt.UTC().Format(time.RFC3339)
	}
	return []any{
		p.Fingerprint, p.Title, p.Company, p.LocationRaw, p.URL,
		string(p.Source), string(p.LocationClass), p.FitScore,
		postedAt, at.UTC().Format(time.RFC3339),
	}
}

// MarkDelivered flips the delivered flag. The flag is monotonic: a record
// already delivered keeps its original delivered_at.
func (d *DB) MarkDelivered(ctx context.Context, fingerprint string, at time.Time) error {
	res, err := d.Pool.ExecContext(ctx, `
UPDATE seen_jobs
SET delivered = 1,
    delivered_at = COALESCE(delivered_at, ?)
WHERE fingerprint = ?;`,
		at.UTC().Format(time.RFC3339), fingerprint)
	if err != nil {
		return fmt.Errorf("mark_delivered fingerprint=%s: %w", fingerprint, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark_delivered fingerprint=%s: %w", fingerprint, err)
	}
	if n == 0 {
		return fmt.Errorf("mark_delivered fingerprint=%s: %w", fingerprint, ErrUnknownFingerprint)
	}
	return nil
}

// MarkDeliveredBatch marks all fingerprints in one transaction. Used by the
// delivery cursor so a mid-batch storage failure delivers nothing.
func (d *DB) MarkDeliveredBatch(ctx context.Context, fingerprints []string, at time.Time) error {
	if len(fingerprints) == 0 {
		return nil
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("mark_delivered batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
UPDATE seen_jobs
SET delivered = 1,
    delivered_at = COALESCE(delivered_at, ?)
WHERE fingerprint = ?;`)
	if err != nil {
		return fmt.Errorf("mark_delivered batch: %w", err)
	}
	defer stmt.Close()

	ts := at.UTC().Format(time.RFC3339)
	for _, fp := range fingerprints {
		res, err := stmt.ExecContext(ctx, ts, fp)
		if err != nil {
			return fmt.Errorf("mark_delivered fingerprint=%s: %w", fp, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("mark_delivered fingerprint=%s: %w", fp, ErrUnknownFingerprint)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("mark_delivered batch commit: %w", err)
	}
	return nil
}

// UndeliveredSince returns records seen at or after cutoff that were never
// delivered, oldest first. It exists so a delivery batch can be rebuilt after
// a crash mid-delivery.
func (d *DB) UndeliveredSince(ctx context.Context, cutoff time.Time) ([]domain.DedupRecord, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT fingerprint, title, company, url, source, first_seen, delivered, delivered_at
FROM seen_jobs
WHERE delivered = 0 AND first_seen >= ?
ORDER BY first_seen ASC;`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("undelivered_since: %w", err)
	}
	defer rows.Close()

	var out []domain.DedupRecord
	for rows.Next() {
		var r domain.DedupRecord
		var source, firstSeen string
		var delivered int
		var deliveredAt sql.NullString
		if err := rows.Scan(&r.Fingerprint, &r.Title, &r.Company, &r.URL,
			&source, &firstSeen, &delivered, &deliveredAt); err != nil {
			return nil, fmt.Errorf("undelivered_since scan: %w", err)
		}
		r.Source = domain.Source(source)
		r.FirstSeenAt, _ = time.Parse(time.RFC3339, firstSeen)
		r.Delivered = delivered != 0
		if deliveredAt.Valid {
			t, _ := time.Parse(time.RFC3339, deliveredAt.String)
			r.DeliveredAt = &t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UndeliveredPostings returns the stored posting data for undelivered records,
// oldest first. The delivery cursor re-sorts them with the ranking comparator.
func (d *DB) UndeliveredPostings(ctx context.Context, cutoff time.Time) ([]domain.Posting, error) {
	rows, err := d.Pool.QueryContext(ctx, `
SELECT fingerprint, title, company, location, url, source, location_class, fit_score, posted_at
FROM seen_jobs
WHERE delivered = 0 AND first_seen >= ? AND location_class != 'excluded'
ORDER BY first_seen ASC;`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("undelivered postings: %w", err)
	}
	defer rows.Close()

	var out []domain.Posting
	for rows.Next() {
		var p domain.Posting
		var source, class string
		var postedAt sql.NullString
		if err := rows.Scan(&p.Fingerprint, &p.Title, &p.Company, &p.LocationRaw,
			&p.URL, &source, &class, &p.FitScore, &postedAt); err != nil {
			return nil, fmt.Errorf("undelivered postings scan: %w", err)
		}
		p.Source = domain.Source(source)
		p.LocationClass = domain.LocationClass(class)
		if postedAt.Valid {
			t, _ := time.Parse(time.RFC3339, postedAt.String)
			p.PostedAt = &t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
