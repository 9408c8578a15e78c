package domain

// ResumeProfile is an immutable snapshot of an already-parsed resume.
// The engine never mutates it; a re-upload replaces it wholesale.
type ResumeProfile struct {
	Skills           []string `json:"skills"`
	ExperienceYears  int      `json:"experience_years"`
	Certifications   []string `json:"certifications"`
	SenioritySignals []string `json:"seniority_signals"`
	UpdatedAt        string   `json:"updated_at"`
}

// HasSkill reports whether the profile lists the given normalized skill token.
func (p *ResumeProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}
