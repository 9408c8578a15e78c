package normalize

import "testing"

func TestParseSalary(t *testing.T) {
	cases := []struct {
		in     string
		lo, hi int
		ok     bool
	}{
		{"$85,000", 85000, 85000, true},
		{"$70k", 70000, 70000, true},
		{"$70k - $90k", 70000, 90000, true},
		{"$70,000-$90,000 a year", 70000, 90000, true},
		{"$90k - $70k", 70000, 90000, true}, // inverted range is swapped
		{"$25/hr", 52000, 52000, true},
		{"$30 - $35 per hour", 62400, 72800, true},
		{"Competitive salary", 0, 0, false},
		{"", 0, 0, false},
		{"Up to 65 a day", 0, 0, false}, // bare small number, no salary signal
	}
	for _, tc := range cases {
		lo, hi, ok := ParseSalary(tc.in)
		if ok != tc.ok || lo != tc.lo || hi != tc.hi {
			t.Errorf("ParseSalary(%q) = (%d, %d, %v), want (%d, %d, %v)",
				tc.in, lo, hi, ok, tc.lo, tc.hi, tc.ok)
		}
	}
}
