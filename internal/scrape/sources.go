package scrape

import "jobscout-engine/internal/config"

// FromConfig builds the enabled fetchers sharing one host limiter.
func FromConfig(cfg config.Config) []Fetcher {
	limiter := NewHostLimiter(cfg.Scraper.RequestsPerSec, cfg.Scraper.Burst)

	var fetchers []Fetcher
	for _, s := range cfg.Scraper.Sources {
		switch s {
		case "linkedin":
			fetchers = append(fetchers, NewLinkedIn(limiter, cfg.Scraper.MaxPerSource))
		case "indeed":
			fetchers = append(fetchers, NewIndeed(limiter, cfg.Scraper.MaxPerSource))
		case "glassdoor":
			fetchers = append(fetchers, NewGlassdoor(limiter, cfg.Scraper.MaxPerSource))
		}
	}
	return fetchers
}
