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

const indeedBase = "https://www.indeed.com/jobs"

type Indeed struct {
	hc      *http.Client
	limiter *HostLimiter
	baseURL string
	maxPer  int
}

func NewIndeed(limiter *HostLimiter, maxPerSource int) *Indeed {
	return &Indeed{
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
		baseURL: indeedBase,
		maxPer:  maxPerSource,
	}
}

func (s *Indeed) Source() domain.Source { return domain.SourceIndeed }

func (s *Indeed) Fetch(ctx context.Context, roles []string, origin string) ([]domain.RawRecord, error) {
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

func (s *Indeed) search(ctx context.Context, role, origin string) ([]domain.RawRecord, error) {
	u := fmt.Sprintf("%s?q=%s&l=%s&fromage=7&sort=date",
		s.baseURL, url.QueryEscape(role), url.QueryEscape(origin))

	if err := s.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	setBrowserHeaders(req)
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("indeed get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("indeed status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("indeed parse: %w", err)
	}

	cards := doc.Find("div.job_seen_beacon")
	if cards.Length() == 0 {
		cards = doc.Find("td.resultContent")
	}
	if cards.Length() == 0 {
		cards = doc.Find("[data-jk]")
	}

	var records []domain.RawRecord
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title := cleanText(card.Find("h2.jobTitle").First().Text())
		if title == "" {
			title = cleanText(card.Find("a.jcs-JobTitle").First().Text())
		}
		company := cleanText(card.Find(`[data-testid="company-name"]`).First().Text())
		if company == "" {
			company = cleanText(card.Find("span.companyName").First().Text())
		}
		loc := cleanText(card.Find("div.companyLocation").First().Text())
		salary := cleanText(card.Find("div.salary-snippet-container").First().Text())
		if salary == "" {
			salary = cleanText(card.Find(`[data-testid="attribute_snippet_testid"]`).First().Text())
		}

		jobKey, _ := card.Attr("data-jk")
		link := ""
		if jobKey != "" {
			link = "https://www.indeed.com/viewjob?jk=" + jobKey
		} else if href, ok := card.Find("a[href]").First().Attr("href"); ok {
			if strings.HasPrefix(href, "/") {
				href = "https://www.indeed.com" + href
			}
			link = href
		}

		records = append(records, domain.RawRecord{
			Title:      title,
			Company:    company,
			Location:   loc,
			URL:        link,
			SalaryText: salary,
		})
		return len(records) < s.maxPer
	})

	return records, nil
}
