package resume

import (
	"testing"
)

const sampleResume = `
Jane Doe
IT Support Specialist

5 years of experience supporting Windows and macOS fleets.
Administered Active Directory, Office 365 and Intune.
Resolved tickets in ServiceNow and Jira; wrote PowerShell scripts.
CompTIA A+ certified. Served as help desk lead for a team of four.
`

func TestParseExtractsSkills(t *testing.T) {
	p := Parse(sampleResume)

	for _, want := range []string{"active directory", "windows", "macos", "office 365", "servicenow", "jira", "powershell", "intune"} {
		if !p.HasSkill(want) {
			t.Errorf("profile missing skill %q; got %v", want, p.Skills)
		}
	}
	if p.HasSkill("salesforce") {
		t.Error("profile contains a skill absent from the text")
	}
}

func TestParseExperienceYears(t *testing.T) {
	p := Parse(sampleResume)
	if p.ExperienceYears != 5 {
		t.Errorf("ExperienceYears = %d, want 5", p.ExperienceYears)
	}
}

func TestParseCertifications(t *testing.T) {
	p := Parse(sampleResume)
	if len(p.Certifications) != 1 || p.Certifications[0] != "comptia a+" {
		t.Errorf("Certifications = %v, want [comptia a+]", p.Certifications)
	}
}

func TestParseSenioritySignals(t *testing.T) {
	p := Parse(sampleResume)
	if len(p.SenioritySignals) == 0 {
		t.Errorf("no seniority signals found in text with a lead role")
	}
}

func TestParseEmptyText(t *testing.T) {
	p := Parse("")
	if len(p.Skills) != 0 || p.ExperienceYears != 0 || len(p.Certifications) != 0 {
		t.Errorf("empty text produced a non-empty profile: %+v", p)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	p := Parse(sampleResume)
	if err := SaveSnapshot(dir, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("loaded nil profile after save")
	}
	if got.ExperienceYears != p.ExperienceYears || len(got.Skills) != len(p.Skills) {
		t.Errorf("round trip mismatch: saved %+v, loaded %+v", p, got)
	}
}

func TestSnapshotMissingFile(t *testing.T) {
	got, err := LoadSnapshot(t.TempDir())
	if err != nil {
		t.Fatalf("missing snapshot should not error: %v", err)
	}
	if got != nil {
		t.Errorf("missing snapshot = %+v, want nil", got)
	}
}

func TestSnapshotClear(t *testing.T) {
	dir := t.TempDir()

	if err := SaveSnapshot(dir, Parse(sampleResume)); err != nil {
		t.Fatal(err)
	}
	if err := SaveSnapshot(dir, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	// clearing twice is fine
	if err := SaveSnapshot(dir, nil); err != nil {
		t.Fatalf("second clear: %v", err)
	}

	got, err := LoadSnapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("profile survived clear: %+v", got)
	}
}
