package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/domain"
)

const linkedinBase = "https://www.linkedin.com/jobs/search"

type LinkedIn struct {
	hc      *http.Client
	limiter *HostLimiter
	baseURL string
	maxPer  int
}

func NewLinkedIn(limiter *HostLimiter, maxPerSource int) *LinkedIn {
	return &LinkedIn{
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
		baseURL: linkedinBase,
		maxPer:  maxPerSource,
	}
}

func (s *LinkedIn) Source() domain.Source { return domain.SourceLinkedIn }

func (s *LinkedIn) Fetch(ctx context.Context, roles []string, origin string) ([]domain.RawRecord, error) {
	var out []domain.RawRecord
	for _, role := range roles {
		records, err := s.search(ctx, role, origin)
		if err != nil {
			// one failed query should not sink the rest
			continue
		}
		out = append(out, records...)
	}
	return out, nil
}

func (s *LinkedIn) search(ctx context.Context, role, origin string) ([]domain.RawRecord, error) {
	// f_TPR=r604800 limits to the past week, sortBy=DD newest first
	u := fmt.Sprintf("%s?keywords=%s&location=%s&f_TPR=r604800&sortBy=DD",
		s.baseURL, url.QueryEscape(role), url.QueryEscape(origin))

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	setBrowserHeaders(req)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("linkedin status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("linkedin parse: %w", err)
	}

	var records []domain.RawRecord
	doc.Find("div.base-card").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := cleanText(card.Find("h3.base-search-card__title").First().Text())
		company := cleanText(card.Find("h4.base-search-card__subtitle").First().Text())
		loc := cleanText(card.Find("span.job-search-card__location").First().Text())

		link, _ := card.Find("a.base-card__full-link").First().Attr("href")
		if i := strings.IndexByte(link, '?'); i >= 0 {
			link = link[:i]
		}

		r := domain.RawRecord{
			Title:    title,
			Company:  company,
			Location: loc,
			URL:      link,
		}
		if dt, ok := card.Find("time").First().Attr("datetime"); ok {
			if t, err := time.Parse("2006-01-02", dt); err == nil {
				r.PostedAt = &t
			}
		}

		records = append(records, r)
		return len(records) < s.maxPer
	})

	return records, nil
}

func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
