// Package agent owns one user's search session: the dedup store handle, the
// current delivery batch and cursor, and the resume snapshot. One mutex
// serializes every operation; two overlapping requests must never both
// advance past the same posting.
package agent

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/deliver"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/rank"
	"jobscout-engine/internal/resume"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/store"
)

type Session struct {
	mu sync.Mutex

	db       *store.DB
	cfg      config.Config
	fetchers []scrape.Fetcher
	cursor   *deliver.Cursor
	log      *zap.Logger

	profile *domain.ResumeProfile
	batch   *rank.Batch
	paused  bool
}

// SearchResult is what one alert cycle hands to the notification sink.
type SearchResult struct {
	Stats      rank.CycleStats
	Delivered  []domain.Posting
	MoreRemain bool
}

type Status struct {
	Paused         bool
	ResumeLoaded   bool
	Profile        *domain.ResumeProfile
	BatchRemaining int
	Store          store.Stats
}

// New builds the session, loading any persisted resume snapshot and
// rebuilding the delivery batch from undelivered history so a restart
// mid-delivery picks up where it left off.
func New(ctx context.Context, db *store.DB, cfg config.Config, fetchers []scrape.Fetcher, log *zap.Logger) (*Session, error) {
	s := &Session{
		db:       db,
		cfg:      cfg,
		fetchers: fetchers,
		cursor:   deliver.New(db),
		log:      log,
	}

	profile, err := resume.LoadSnapshot(cfg.App.DataDir)
	if err != nil {
		log.Warn("resume snapshot unreadable, starting without one", zap.Error(err))
	} else {
		s.profile = profile
	}

	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	batch, err := deliver.Rebuild(ctx, db, cutoff)
	if err != nil {
		return nil, err
	}
	if batch.Len() > 0 {
		log.Info("recovered undelivered batch", zap.Int("postings", batch.Len()))
		s.batch = batch
	}

	return s, nil
}

// RunSearch executes one full alert cycle: fetch every source, rank, and
// deliver the first scheduled batch. The new batch supersedes any previous
// one.
func (s *Session) RunSearch(ctx context.Context) (SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inputs := scrape.FetchAll(ctx, s.fetchers, s.cfg.Criteria.Roles, s.cfg.Criteria.Origin, s.log)

	batch, stats, err := rank.RunCycle(ctx, s.db, inputs, s.profile, s.cfg.Criteria)
	if err != nil {
		return SearchResult{Stats: stats}, err
	}
	s.batch = batch

	s.log.Info("cycle ranked",
		zap.Int("raw", stats.Raw),
		zap.Int("malformed", stats.Malformed),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("excluded", stats.Excluded),
		zap.Int("ranked", stats.Ranked))

	delivered, err := s.cursor.Take(ctx, s.batch, s.cfg.Schedule.BatchSize)
	if err != nil {
		return SearchResult{Stats: stats}, err
	}

	return SearchResult{
		Stats:      stats,
		Delivered:  delivered,
		MoreRemain: s.batch.Remaining() > 0,
	}, nil
}

// RequestMore pages through the current batch without re-fetching or
// re-ranking. An exhausted or absent batch returns an empty slice.
func (s *Session) RequestMore(ctx context.Context, n int) ([]domain.Posting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	postings, err := s.cursor.Take(ctx, s.batch, n)
	if err != nil {
		return nil, false, err
	}
	more := s.batch != nil && s.batch.Remaining() > 0
	return postings, more, nil
}

// SetResume parses resume text into a fresh profile snapshot and persists it.
// Scoring from the next cycle onward uses the new profile.
func (s *Session) SetResume(text string) (*domain.ResumeProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := resume.Parse(text)
	if err := resume.SaveSnapshot(s.cfg.App.DataDir, profile); err != nil {
		return nil, err
	}
	s.profile = profile
	return profile, nil
}

// ClearResume drops the profile; scoring falls back to the neutral baseline.
func (s *Session) ClearResume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := resume.SaveSnapshot(s.cfg.App.DataDir, nil); err != nil {
		return err
	}
	s.profile = nil
	return nil
}

func (s *Session) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *Session) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Session) Status(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.db.Stats(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{
		Paused:       s.paused,
		ResumeLoaded: s.profile != nil,
		Profile:      s.profile,
		Store:        stats,
	}
	if s.batch != nil {
		st.BatchRemaining = s.batch.Remaining()
	}
	return st, nil
}

// Cleanup prunes delivered history past the retention window.
func (s *Session) Cleanup(ctx context.Context) {
	retention := time.Duration(s.cfg.RetentionDays) * 24 * time.Hour
	n, err := s.db.CleanupOlderThan(ctx, retention)
	if err != nil {
		s.log.Warn("cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("pruned delivered history", zap.Int64("rows", n))
	}
}
