package domain

import "time"

// Source identifies which listing site a posting came from.
type Source string

const (
	SourceLinkedIn  Source = "linkedin"
	SourceIndeed    Source = "indeed"
	SourceGlassdoor Source = "glassdoor"
)

// LocationClass is the bucket the location filter assigns to a posting.
type LocationClass string

const (
	LocationClose       LocationClass = "close"        // within the close radius of the origin
	LocationMedium      LocationClass = "medium"       // within the medium radius
	LocationNYCEligible LocationClass = "nyc_eligible" // Manhattan/Brooklyn or remote
	LocationExcluded    LocationClass = "excluded"
)

// Priority orders location classes for ranking tie-breaks. Lower is better.
func (c LocationClass) Priority() int {
	switch c {
	case LocationClose:
		return 0
	case LocationMedium:
		return 1
	case LocationNYCEligible:
		return 2
	default:
		return 3
	}
}

// RawRecord is what a scraper hands over: loosely structured, unvalidated.
type RawRecord struct {
	Title       string
	Company     string
	Location    string
	URL         string
	SalaryText  string
	Description string
	PostedAt    *time.Time
}

// Posting is the canonical, validated form of a scraped job.
// Fingerprint is computed once at normalization and never recomputed; two
// postings with equal fingerprints are the same logical job regardless of
// which site they came from.
type Posting struct {
	Fingerprint string
	Title       string
	Company     string
	LocationRaw string
	URL         string
	SalaryMin   int // 0 = unknown
	SalaryMax   int // 0 = unknown
	Source      Source
	PostedAt    *time.Time
	Description string

	LocationClass LocationClass
	FitScore      int
}

// DedupRecord is one row of the persistent seen-jobs history.
// Once Delivered is true it is never reset.
type DedupRecord struct {
	Fingerprint string
	Title       string
	Company     string
	URL         string
	Source      Source
	FirstSeenAt time.Time
	Delivered   bool
	DeliveredAt *time.Time
}
