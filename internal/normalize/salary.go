package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Hourly figures are annualized at 40 h/week * 52 weeks.
const hoursPerYear = 2080

var (
	moneyRe  = regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*([kK])?`)
	hourlyRe = regexp.MustCompile(`(?i)(?:/\s*hr|/\s*hour|per\s+hour|hourly|an\s+hour)`)
)

// ParseSalary extracts a numeric min/max from free-form salary text.
// Recognizes single figures ("$85,000", "$70k"), ranges ("$70k - $90k",
// "$70,000-$90,000") and hourly rates ("$25/hr"), which are annualized.
// Unrecognizable text reports ok=false rather than guessing.
func ParseSalary(text string) (lo, hi int, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, 0, false
	}

	matches := moneyRe.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}

	hourly := hourlyRe.MatchString(text)

	vals := make([]int, 0, 2)
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "")
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			f *= 1000
		}
		n := int(f)
		if hourly {
			n = int(f * hoursPerYear)
		} else if n < 1000 && m[2] == "" {
			// bare small number without k or hourly marker; too ambiguous
			continue
		}
		vals = append(vals, n)
	}

	switch len(vals) {
	case 0:
		return 0, 0, false
	case 1:
		return vals[0], vals[0], true
	default:
		lo, hi = vals[0], vals[1]
		if hi < lo {
			lo, hi = hi, lo
		}
		return lo, hi, true
	}
}
