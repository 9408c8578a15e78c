// Package fit computes the 0-100 resume-to-posting fit score.
package fit

import (
	"regexp"
	"strconv"
	"strings"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
)

// Weights of the three component scores. Title relevance dominates, skills
// close behind, experience last.
const (
	weightSkills     = 0.35
	weightTitle      = 0.40
	weightExperience = 0.25

	neutralBaseline = 50
)

var requiredYearsRe = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`minimum\s+(\d+)\s+years?`),
	regexp.MustCompile(`at\s+least\s+(\d+)\s+years?`),
}

var seniorityMarkers = []string{"lead", "senior", "manager", "principal", " ii", " iii"}

// Score computes the fit score for a posting. With no resume loaded it
// returns a baseline reflecting only role, salary and location match. The
// same inputs always produce the same score.
func Score(p domain.Posting, profile *domain.ResumeProfile, c config.Criteria) int {
	if profile == nil {
		return clamp(baselineScore(p, c))
	}

	title := strings.ToLower(p.Title)
	text := title + " " + strings.ToLower(p.Description)

	skillScore, rawMatches := skillMatch(text, profile.Skills)
	titleScore := titleMatch(title, c.Roles)
	expScore := experienceMatch(text, profile)

	score := int(float64(skillScore)*weightSkills +
		float64(titleScore)*weightTitle +
		float64(expScore)*weightExperience)

	// strong-fit bonus when both leading components line up
	if skillScore >= 80 && titleScore >= 80 {
		score += 10
	}

	if certMatch(text, profile.Certifications) {
		score += 5
	}
	if hasSeniorityMarker(title) && len(profile.SenioritySignals) > 0 {
		score += 10
	}
	if p.SalaryMax > 0 && p.SalaryMax < c.MinSalary {
		score -= 15
	}

	// equal overlap ratios break toward the posting matching more raw skills
	score += min(rawMatches, 5)

	return clamp(score)
}

// baselineScore is the no-resume path: role keyword, salary and location
// signals around a neutral midpoint.
func baselineScore(p domain.Posting, c config.Criteria) int {
	score := neutralBaseline
	title := strings.ToLower(p.Title)

	for _, role := range c.Roles {
		if strings.Contains(title, strings.ToLower(role)) {
			score += 20
			break
		}
	}

	if p.SalaryMin >= c.MinSalary && c.MinSalary > 0 {
		score += 10
	}
	if p.SalaryMax > 0 && p.SalaryMax < c.MinSalary {
		score -= 15
	}

	switch p.LocationClass {
	case domain.LocationClose:
		score += 10
	case domain.LocationMedium:
		score += 5
	}

	return score
}

// skillMatch returns a 0-100 overlap score plus the raw number of resume
// skills found in the posting text.
func skillMatch(text string, skills []string) (score, raw int) {
	if len(skills) == 0 {
		return neutralBaseline, 0
	}
	for _, skill := range skills {
		if skill != "" && strings.Contains(text, skill) {
			raw++
		}
	}
	score = min(100, raw*100/len(skills)+20)
	return score, raw
}

func titleMatch(title string, roles []string) int {
	for _, role := range roles {
		if strings.Contains(title, strings.ToLower(role)) {
			return 90
		}
	}
	// generic support/helpdesk vocabulary still counts as the same field
	for _, term := range []string{"support", "help desk", "service desk", "technician"} {
		if strings.Contains(title, term) {
			return 70
		}
	}
	return 40
}

// experienceMatch compares the posting's stated requirement against the
// profile. Postings without an explicit requirement are assumed entry-to-mid.
func experienceMatch(text string, profile *domain.ResumeProfile) int {
	required := 0
	for _, re := range requiredYearsRe {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > required {
				required = n
			}
		}
	}

	if required == 0 {
		if profile.ExperienceYears >= 2 {
			return 85
		}
		return 60
	}

	switch {
	case profile.ExperienceYears >= required:
		return 100
	case profile.ExperienceYears >= required-1:
		return 75
	default:
		return max(30, 60-(required-profile.ExperienceYears)*10)
	}
}

func certMatch(text string, certs []string) bool {
	for _, cert := range certs {
		if cert != "" && strings.Contains(text, strings.ToLower(cert)) {
			return true
		}
	}
	return false
}

func hasSeniorityMarker(title string) bool {
	for _, m := range seniorityMarkers {
		if strings.Contains(title, m) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
