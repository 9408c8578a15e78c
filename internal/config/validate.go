package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and dedupes the list fields and checks the
// config for values that would break a run.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	lowerList := func(xs []string) []string {
		ys := trimList(xs)
		for i := range ys {
			ys[i] = strings.ToLower(ys[i])
		}
		return ys
	}

	out.Criteria.Roles = trimList(out.Criteria.Roles)
	out.Criteria.CloseCities = lowerList(out.Criteria.CloseCities)
	out.Criteria.MediumCities = lowerList(out.Criteria.MediumCities)
	out.Criteria.EligibleBoroughs = lowerList(out.Criteria.EligibleBoroughs)
	out.Criteria.ExcludedBoroughs = lowerList(out.Criteria.ExcludedBoroughs)
	out.Criteria.OriginState = strings.ToLower(strings.TrimSpace(out.Criteria.OriginState))
	out.Scraper.Sources = lowerList(out.Scraper.Sources)

	if len(out.Criteria.Roles) == 0 {
		res.addErr("criteria.roles must have at least one role")
	}
	if out.Criteria.MinSalary < 0 {
		res.addErr("criteria.min_salary must be >= 0")
	}
	if strings.TrimSpace(out.Criteria.Origin) == "" {
		res.addErr("criteria.origin is required")
	}
	if out.Criteria.CloseRadiusMi <= 0 || out.Criteria.MediumRadiusMi <= out.Criteria.CloseRadiusMi {
		res.addErr("criteria radii must satisfy 0 < close_radius_mi < medium_radius_mi")
	}
	if len(out.Criteria.CloseCities) == 0 && len(out.Criteria.MediumCities) == 0 {
		res.addWarn("no close/medium cities configured; only NYC-eligible and remote postings will pass the filter")
	}

	for _, s := range out.Scraper.Sources {
		switch s {
		case "linkedin", "indeed", "glassdoor":
		default:
			res.addErr("scraper.sources contains unknown source %q", s)
		}
	}
	if len(out.Scraper.Sources) == 0 {
		res.addErr("scraper.sources must name at least one source")
	}
	if out.Scraper.MaxPerSource <= 0 {
		out.Scraper.MaxPerSource = 25
	}
	if out.Scraper.RequestsPerSec <= 0 {
		out.Scraper.RequestsPerSec = 0.5
	}
	if out.Scraper.Burst <= 0 {
		out.Scraper.Burst = 1
	}

	if out.Schedule.BatchSize <= 0 {
		out.Schedule.BatchSize = 12
	}
	if out.RetentionDays <= 0 {
		out.RetentionDays = 30
	}

	// conflict check: a city in both buckets classifies as close
	closeSet := map[string]bool{}
	for _, c := range out.Criteria.CloseCities {
		closeSet[c] = true
	}
	for _, c := range out.Criteria.MediumCities {
		if closeSet[c] {
			res.addWarn("city appears in both close and medium lists: %q", c)
		}
	}

	return out, res
}
