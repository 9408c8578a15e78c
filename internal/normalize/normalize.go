package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"jobscout-engine/internal/domain"
)

// ErrMalformedRecord marks a raw record missing its required fields.
// Callers skip and count these; they never abort a cycle.
var ErrMalformedRecord = errors.New("malformed record")

// Normalize converts a raw scraped record into a canonical Posting.
// Display fields keep their original casing; only the fingerprint is
// computed from lowercased, whitespace-collapsed text.
func Normalize(raw domain.RawRecord, source domain.Source) (domain.Posting, error) {
	title := CleanText(raw.Title)
	company := CleanText(raw.Company)

	if title == "" {
		return domain.Posting{}, fmt.Errorf("%w: empty title", ErrMalformedRecord)
	}
	if company == "" {
		return domain.Posting{}, fmt.Errorf("%w: empty company", ErrMalformedRecord)
	}

	location := CleanText(raw.Location)

	p := domain.Posting{
		Fingerprint: Fingerprint(title, company, location),
		Title:       title,
		Company:     company,
		LocationRaw: location,
		URL:         strings.TrimSpace(raw.URL),
		Source:      source,
		PostedAt:    raw.PostedAt,
		Description: CleanText(raw.Description),
	}

	if lo, hi, ok := ParseSalary(raw.SalaryText); ok {
		p.SalaryMin = lo
		p.SalaryMax = hi
	}

	return p, nil
}

// Fingerprint derives the stable identity key for a posting. The source is
// deliberately left out so the same job listed on two sites collapses to one
// fingerprint.
func Fingerprint(title, company, location string) string {
	key := fold(title) + "\x00" + fold(company) + "\x00" + fold(location)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

func fold(s string) string {
	return strings.ToLower(CleanText(s))
}

// CleanText collapses runs of whitespace (including NBSP) into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
