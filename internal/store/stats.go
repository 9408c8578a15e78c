package store

import (
	"context"
	"fmt"
	"time"
)

type Stats struct {
	TotalSeen      int
	TotalDelivered int
	FoundToday     int
	BySource       map[string]int
}

func (d *DB) Stats(ctx context.Context) (Stats, error) {
	s := Stats{BySource: map[string]int{}}

	if err := d.Pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seen_jobs;`).Scan(&s.TotalSeen); err != nil {
		return s, fmt.Errorf("stats: %w", err)
	}
	if err := d.Pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seen_jobs WHERE delivered = 1;`).Scan(&s.TotalDelivered); err != nil {
		return s, fmt.Errorf("stats: %w", err)
	}
	if err := d.Pool.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seen_jobs WHERE date(first_seen) = date('now');`).Scan(&s.FoundToday); err != nil {
		return s, fmt.Errorf("stats: %w", err)
	}

	rows, err := d.Pool.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM seen_jobs GROUP BY source;`)
	if err != nil {
		return s, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		var n int
		if err := rows.Scan(&source, &n); err != nil {
			return s, fmt.Errorf("stats scan: %w", err)
		}
		s.BySource[source] = n
	}
	return s, rows.Err()
}

// CleanupOlderThan removes delivered records first seen before the retention
// cutoff. Undelivered rows are kept regardless of age so a stalled batch can
// still be rebuilt.
func (d *DB) CleanupOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UTC().Format(time.RFC3339)
	res, err := d.Pool.ExecContext(ctx, `
DELETE FROM seen_jobs
WHERE delivered = 1 AND first_seen < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
