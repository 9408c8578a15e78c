// Package rank turns raw scraped records into an ordered delivery batch:
// normalize, dedup against the persistent store, filter by location, score,
// sort.
package rank

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/fit"
	"jobscout-engine/internal/location"
	"jobscout-engine/internal/normalize"
	"jobscout-engine/internal/store"
)

// Input is one source's worth of raw records, merged with the others before
// the pipeline runs.
type Input struct {
	Source  domain.Source
	Records []domain.RawRecord
}

// CycleStats counts what happened to the raw records during one cycle.
type CycleStats struct {
	Raw        int
	Malformed  int
	Duplicates int
	Excluded   int
	Ranked     int
}

// RunCycle executes one full ranking pass and returns a fresh batch with its
// cursor at zero. Malformed records are skipped and counted; a storage
// failure aborts the cycle with nothing marked seen.
func RunCycle(ctx context.Context, db *store.DB, inputs []Input,
	profile *domain.ResumeProfile, crit config.Criteria) (*Batch, CycleStats, error) {

	var stats CycleStats
	now := time.Now().UTC()

	// Normalize and collapse duplicates within the run. First occurrence
	// wins, so the same job on two sites keeps its first source.
	inRun := map[string]bool{}
	var candidates []domain.Posting
	for _, in := range inputs {
		for _, raw := range in.Records {
			stats.Raw++
			p, err := normalize.Normalize(raw, in.Source)
			if err != nil {
				if errors.Is(err, normalize.ErrMalformedRecord) {
					stats.Malformed++
					continue
				}
				return nil, stats, fmt.Errorf("normalize: %w", err)
			}
			if inRun[p.Fingerprint] {
				stats.Duplicates++
				continue
			}
			inRun[p.Fingerprint] = true
			candidates = append(candidates, p)
		}
	}

	// Dedup gate against the persistent history.
	var fresh []domain.Posting
	for _, p := range candidates {
		seen, err := db.HasSeen(ctx, p.Fingerprint)
		if err != nil {
			return nil, stats, fmt.Errorf("dedup stage fingerprint=%s: %w", p.Fingerprint, err)
		}
		if seen {
			stats.Duplicates++
			continue
		}
		fresh = append(fresh, p)
	}

	// Classify and score. Excluded postings are still recorded as seen below
	// so they never resurface, but they do not enter the batch.
	var ranked []domain.Posting
	for i := range fresh {
		fresh[i].LocationClass = location.Classify(fresh[i].LocationRaw, crit)
		if fresh[i].LocationClass == domain.LocationExcluded {
			stats.Excluded++
			continue
		}
		fresh[i].FitScore = fit.Score(fresh[i], profile, crit)
		ranked = append(ranked, fresh[i])
	}

	SortPostings(ranked)
	stats.Ranked = len(ranked)

	// All dedup writes land in one transaction: if the store cannot confirm
	// them, nothing is marked seen and the whole cycle can be retried.
	if err := db.MarkSeenBatch(ctx, fresh, now); err != nil {
		return nil, stats, fmt.Errorf("mark seen stage: %w", err)
	}

	return NewBatch(ranked, now), stats, nil
}

// SortPostings orders postings for delivery: fit score descending, then
// location-class priority, then most recent posting date, then fingerprint
// as the stable final tie-break.
func SortPostings(ps []domain.Posting) {
	sort.SliceStable(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a.FitScore != b.FitScore {
			return a.FitScore > b.FitScore
		}
		if ap, bp := a.LocationClass.Priority(), b.LocationClass.Priority(); ap != bp {
			return ap < bp
		}
		switch {
		case a.PostedAt != nil && b.PostedAt != nil && !a.PostedAt.Equal(*b.PostedAt):
			return a.PostedAt.After(*b.PostedAt)
		case a.PostedAt != nil && b.PostedAt == nil:
			return true
		case a.PostedAt == nil && b.PostedAt != nil:
			return false
		}
		return a.Fingerprint < b.Fingerprint
	})
}
