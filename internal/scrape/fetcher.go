// Package scrape fetches raw postings from the public listing sites. It is a
// thin producer: records go to the ranking pipeline unvalidated, and a source
// that fails only costs its own results.
package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/rank"
)

// Fetcher is one listing site. Fetch runs every configured role query and
// returns whatever parsed.
type Fetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context, roles []string, origin string) ([]domain.RawRecord, error)
}

const fetchTimeout = 2 * time.Minute

// FetchAll runs the fetchers in parallel and merges their results into one
// sequence for the pipeline. Best-effort: a failing source logs and
// contributes nothing, it never cancels its siblings.
func FetchAll(ctx context.Context, fetchers []Fetcher, roles []string, origin string, log *zap.Logger) []rank.Input {
	var g errgroup.Group
	results := make(chan rank.Input, len(fetchers))

	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, fetchTimeout)
			defer cancel()

			records, err := f.Fetch(fctx, roles, origin)
			if err != nil {
				log.Warn("source fetch failed",
					zap.String("source", string(f.Source())),
					zap.Error(err))
				return nil
			}
			log.Info("source fetched",
				zap.String("source", string(f.Source())),
				zap.Int("records", len(records)))
			results <- rank.Input{Source: f.Source(), Records: records}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	var inputs []rank.Input
	for res := range results {
		inputs = append(inputs, res)
	}
	return inputs
}
