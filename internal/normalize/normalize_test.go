package normalize

import (
	"errors"
	"testing"

	"jobscout-engine/internal/domain"
)

func TestFingerprintIgnoresCaseAndWhitespace(t *testing.T) {
	a := Fingerprint("IT Support Specialist", "Acme Corp", "Jersey City, NJ")
	b := Fingerprint("it support  specialist", "ACME CORP", " jersey city,  nj ")
	if a != b {
		t.Errorf("fingerprints differ for equivalent inputs: %s vs %s", a, b)
	}
}

func TestFingerprintLength(t *testing.T) {
	fp := Fingerprint("Help Desk Technician", "Globex", "Newark, NJ")
	if len(fp) != 16 {
		t.Errorf("fingerprint length = %d, want 16", len(fp))
	}
}

func TestFingerprintDistinguishesFields(t *testing.T) {
	a := Fingerprint("IT Support", "Acme", "Bayonne, NJ")
	b := Fingerprint("IT Support", "Acme", "Hoboken, NJ")
	if a == b {
		t.Error("different locations produced the same fingerprint")
	}
	c := Fingerprint("IT Support", "Initech", "Bayonne, NJ")
	if a == c {
		t.Error("different companies produced the same fingerprint")
	}
}

func TestNormalizeSourceNotInFingerprint(t *testing.T) {
	raw := domain.RawRecord{Title: "IT Support Specialist", Company: "Acme", Location: "Jersey City, NJ"}

	p1, err := Normalize(raw, domain.SourceLinkedIn)
	if err != nil {
		t.Fatalf("Normalize linkedin: %v", err)
	}
	p2, err := Normalize(raw, domain.SourceIndeed)
	if err != nil {
		t.Fatalf("Normalize indeed: %v", err)
	}
	if p1.Fingerprint != p2.Fingerprint {
		t.Errorf("same job on two sources got different fingerprints: %s vs %s",
			p1.Fingerprint, p2.Fingerprint)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  domain.RawRecord
	}{
		{"empty title", domain.RawRecord{Company: "Acme"}},
		{"empty company", domain.RawRecord{Title: "IT Support"}},
		{"whitespace only title", domain.RawRecord{Title: "     ", Company: "Acme"}},
	}
	for _, tc := range cases {
		_, err := Normalize(tc.raw, domain.SourceLinkedIn)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("%s: got err %v, want ErrMalformedRecord", tc.name, err)
		}
	}
}

func TestNormalizeKeepsDisplayCasing(t *testing.T) {
	raw := domain.RawRecord{Title: "IT Support Specialist", Company: "Acme Corp", Location: "Jersey City, NJ"}
	p, err := Normalize(raw, domain.SourceLinkedIn)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "IT Support Specialist" || p.Company != "Acme Corp" {
		t.Errorf("display fields were mangled: %q / %q", p.Title, p.Company)
	}
}

func TestNormalizeParsesSalary(t *testing.T) {
	raw := domain.RawRecord{
		Title: "Help Desk", Company: "Acme", SalaryText: "$70,000 - $90,000 a year",
	}
	p, err := Normalize(raw, domain.SourceIndeed)
	if err != nil {
		t.Fatal(err)
	}
	if p.SalaryMin != 70000 || p.SalaryMax != 90000 {
		t.Errorf("salary = %d..%d, want 70000..90000", p.SalaryMin, p.SalaryMax)
	}
}

func TestCleanText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  IT   Support ", "IT Support"},
		{"Help Desk", "Help Desk"},
		{"one\ttwo\nthree", "one two three"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
