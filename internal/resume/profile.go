// Package resume turns already-extracted resume text into the structured
// profile the fit scorer consumes, and persists it as a JSON snapshot that is
// replaced wholesale on re-upload.
package resume

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
)

// knownSkills is the vocabulary scanned for in resume text. Tokens are stored
// lowercase; matching is substring-based against the lowered text.
var knownSkills = []string{
	// technical
	"active directory", "windows", "macos", "linux", "office 365", "microsoft 365",
	"azure", "aws", "gcp", "servicenow", "jira", "zendesk", "freshdesk",
	"salesforce", "ticketing", "helpdesk", "desktop support",
	"network troubleshooting", "tcp/ip", "dns", "dhcp", "vpn", "wifi",
	"hardware troubleshooting", "remote support",
	"powershell", "bash", "python", "sql", "scripting",
	"vmware", "citrix", "virtualization", "imaging", "deployment",
	"antivirus", "endpoint security", "mfa",
	"okta", "sso", "identity management", "intune", "jamf", "mdm",
	"itil", "itsm", "incident management", "change management",

	// soft
	"customer service", "communication", "problem solving", "troubleshooting",
	"technical support", "documentation", "training",

	// ai / modern
	"automation", "chatbot", "copilot", "generative ai",
}

var certTokens = []string{
	"comptia a+", "comptia network+", "comptia security+",
	"mcsa", "mcse", "azure administrator", "aws certified",
	"google it support", "itil", "ccna", "ccnp", "cissp",
}

var senioritySignalRe = regexp.MustCompile(
	`(?:lead|senior|manager|supervisor)\s+[a-z]+|` +
		`(?:support|service desk|help desk)\s+(?:lead|manager|supervisor)|` +
		`team lead`)

var experienceYearsRe = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`experience[:\s]+(\d+)\+?\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s+in\s+(?:it|tech|support)`),
}

// Parse extracts a profile from plain resume text. PDF extraction happens
// upstream; this only sees text.
func Parse(text string) *domain.ResumeProfile {
	lower := strings.ToLower(text)

	var skills []string
	for _, skill := range knownSkills {
		if strings.Contains(lower, skill) {
			skills = append(skills, skill)
		}
	}
	sort.Strings(skills)

	var certs []string
	for _, cert := range certTokens {
		if strings.Contains(lower, cert) {
			certs = append(certs, cert)
		}
	}
	sort.Strings(certs)

	years := 0
	for _, re := range experienceYearsRe {
		if m := re.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > years {
				years = n
			}
		}
	}

	signals := senioritySignalRe.FindAllString(lower, -1)
	signals = uniq(signals)

	return &domain.ResumeProfile{
		Skills:           skills,
		ExperienceYears:  years,
		Certifications:   certs,
		SenioritySignals: signals,
		UpdatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
