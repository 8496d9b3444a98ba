package engine

// Analysis is the structured evaluation of a single resume. It is produced
// exactly once per upload, either by the AI backend or by the deterministic
// fallback generator, and is immutable afterwards.
type Analysis struct {
	OverallScore    int         `json:"overall_score"`
	Category        string      `json:"category"`
	Summary         string      `json:"summary"`
	Strengths       []string    `json:"strengths"`
	Weaknesses      []string    `json:"weaknesses"`
	SkillsMatch     int         `json:"skills_match"`
	ExperienceLevel string      `json:"experience_level"`
	ExperienceYears int         `json:"experience_years"`
	KeySkills       []string    `json:"key_skills"`
	Education       string      `json:"education"`
	Recommendations []string    `json:"recommendations"`
	RedFlags        []string    `json:"red_flags"`
	ContactInfo     ContactInfo `json:"contact_info"`
}

// ContactInfo carries contact details extracted from the resume. Fields fall
// back to the placeholder defaults below when nothing could be extracted.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

const (
	CategoryHighlyQualified = "Highly Qualified"
	CategoryQualified       = "Qualified"
	CategoryNotAFit         = "Not a Fit"

	LevelEntry  = "Entry-level"
	LevelJunior = "Junior"
	LevelMid    = "Mid-level"
	LevelSenior = "Senior"
)

// Placeholder contact values used when extraction finds nothing.
const (
	PlaceholderName  = "Candidate Name"
	PlaceholderEmail = "candidate@email.com"
	PlaceholderPhone = "+1-234-567-8900"
)

// CategoryFor derives the qualification category from an overall score.
func CategoryFor(score int) string {
	switch {
	case score >= 85:
		return CategoryHighlyQualified
	case score >= 70:
		return CategoryQualified
	default:
		return CategoryNotAFit
	}
}

// LevelFor derives the experience level from years of experience.
func LevelFor(years int) string {
	switch {
	case years >= 7:
		return LevelSenior
	case years >= 4:
		return LevelMid
	case years >= 1:
		return LevelJunior
	default:
		return LevelEntry
	}
}

// Normalize enforces the Analysis invariants: category and experience level
// are always derived from their numeric sources, key_skills is capped at 10,
// list fields are never nil, and contact fields get placeholder defaults.
func (a *Analysis) Normalize() {
	a.Category = CategoryFor(a.OverallScore)
	if a.ExperienceYears < 0 {
		a.ExperienceYears = 0
	}
	a.ExperienceLevel = LevelFor(a.ExperienceYears)

	if len(a.KeySkills) > 10 {
		a.KeySkills = a.KeySkills[:10]
	}
	if a.Strengths == nil {
		a.Strengths = []string{}
	}
	if a.Weaknesses == nil {
		a.Weaknesses = []string{}
	}
	if a.KeySkills == nil {
		a.KeySkills = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	if a.RedFlags == nil {
		a.RedFlags = []string{}
	}

	if a.ContactInfo.Name == "" {
		a.ContactInfo.Name = PlaceholderName
	}
	if a.ContactInfo.Email == "" {
		a.ContactInfo.Email = PlaceholderEmail
	}
	if a.ContactInfo.Phone == "" {
		a.ContactInfo.Phone = PlaceholderPhone
	}
}

// CandidateProfile is the slice of a stored candidate the chat responders
// need. The owning record lives in the candidates package; the engine only
// ever reads the analysis.
type CandidateProfile struct {
	ID       string
	Analysis Analysis
}
