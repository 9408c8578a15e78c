// Package location buckets a posting's raw location string against the
// user's preferred area. The ruleset is a static municipality lookup, not
// geocoding; the radius buckets come from the configured city lists.
package location

import (
	"strings"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

// Classify maps a raw location string to a location class.
//
// Order matters: the excluded boroughs win over everything, then the close
// and medium buckets, then Manhattan/Brooklyn accessibility. Remote and
// unspecified locations are never excluded. Anything left unresolved is
// excluded; dropping ambiguous noise beats a false positive downstream.
func Classify(locationRaw string, c config.Criteria) domain.LocationClass {
	text := strings.ToLower(strings.TrimSpace(locationRaw))

	if text == "" || strings.Contains(text, "remote") || strings.Contains(text, "work from home") {
		return domain.LocationNYCEligible
	}

	for _, b := range c.ExcludedBoroughs {
		if containsPlace(text, b) {
			return domain.LocationExcluded
		}
	}

	for _, city := range c.CloseCities {
		if containsPlace(text, city) {
			return domain.LocationClose
		}
	}
	for _, city := range c.MediumCities {
		if containsPlace(text, city) {
			return domain.LocationMedium
		}
	}

	for _, b := range c.EligibleBoroughs {
		if containsPlace(text, b) {
			return domain.LocationNYCEligible
		}
	}

	// Origin state but no recognized municipality means beyond the medium
	// radius; anything else is unresolvable. Both drop out here.
	return domain.LocationExcluded
}

// containsPlace matches a place name on word boundaries, so "newark" does not
// match "newarkansas llc".
func containsPlace(text, place string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], place)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(place)
		if boundary(text, start-1) && boundary(text, end) {
			return true
		}
		idx = start + 1
	}
}

func boundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	ch := text[i]
	return !(ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9')
}
