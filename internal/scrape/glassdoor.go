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

const glassdoorBase = "https://www.glassdoor.com/Job/jobs.htm"

type Glassdoor struct {
	hc      *http.Client
	limiter *HostLimiter
	baseURL string
	maxPer  int
}

func NewGlassdoor(limiter *HostLimiter, maxPerSource int) *Glassdoor {
	return &Glassdoor{
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
		baseURL: glassdoorBase,
		maxPer:  maxPerSource,
	}
}

func (s *Glassdoor) Source() domain.Source { return domain.SourceGlassdoor }

func (s *Glassdoor) Fetch(ctx context.Context, roles []string, origin string) ([]domain.RawRecord, error) {
	var out []domain.RawRecord
	for _, role := range roles {
		records, err := s.search(ctx, role, origin)
		if err != nil {
			continue
		}
		out = append(out, records...)
	}
	return out, nil
}

func (s *Glassdoor) search(ctx context.Context, role, origin string) ([]domain.RawRecord, error) {
	u := fmt.Sprintf("%s?sc.keyword=%s&locT=C&locKeyword=%s&fromAge=7",
		s.baseURL, url.QueryEscape(role), url.QueryEscape(origin))

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	setBrowserHeaders(req)

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("glassdoor get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("glassdoor status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("glassdoor parse: %w", err)
	}

	var records []domain.RawRecord
	doc.Find(`li[class*="JobsList_jobListItem"]`).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		titleSel := card.Find(`a[class*="JobCard_jobTitle"]`).First()
		title := cleanText(titleSel.Text())
		company := cleanText(card.Find(`span[class*="EmployerProfile_companyName"]`).First().Text())
		loc := cleanText(card.Find(`div[class*="JobCard_location"]`).First().Text())

		link, _ := titleSel.Attr("href")
		if link != "" && !strings.HasPrefix(link, "http") {
			link = "https://www.glassdoor.com" + link
		}

		records = append(records, domain.RawRecord{
			Title:    title,
			Company:  company,
			Location: loc,
			URL:      link,
		})
		return len(records) < s.maxPer
	})

	return records, nil
}
