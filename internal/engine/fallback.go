package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
)

// FieldExtractor derives structured fields from raw resume text. All methods
// are pure functions of the text; absence is signaled by zero values (or the
// fixed not-specified education sentinel), never by an error.
type FieldExtractor interface {
	ExtractContactInfo(text string) (name, email, phone string)
	ExtractSkills(text string) []string
	ExtractExperienceYears(text string) int
	ExtractEducation(text string) []string
}

// Vocabularies the fallback generator samples from. Order matters: sampling
// is positional over these slices, so reordering changes generated output.
var (
	fallbackStrengths = []string{
		"Strong technical skills", "Excellent communication", "Leadership potential",
		"Problem-solving abilities", "Team collaboration", "Project management",
		"Analytical thinking", "Attention to detail", "Adaptability",
		"Innovation mindset", "Client-facing experience", "Mentoring skills",
	}
	fallbackWeaknesses = []string{
		"Limited leadership experience", "Could improve project management",
		"Needs more industry-specific knowledge", "Limited cross-functional experience",
		"Could benefit from additional certifications", "Needs more client-facing experience",
		"Could improve presentation skills", "Limited international experience",
	}
	fallbackRecommendations = []string{
		"Consider for technical interview",
		"Assess problem-solving skills in coding challenge",
		"Evaluate cultural fit",
		"Check references from previous employers",
		"Discuss career goals and growth plans",
	}
	fallbackSkills = []string{"Python", "JavaScript", "SQL", "Git", "Communication"}
)

const educationNotSpecified = "Education information not clearly specified"

// Fallback produces a complete, schema-valid Analysis from resume text alone,
// without any network call. It is deterministic: the generator is seeded from
// the sha256 digest of the text and every random draw happens in a fixed
// order (skills, experience years, overall score, skills match, strengths,
// weaknesses, recommendations), so identical text always yields an identical
// Analysis.
func (e *Engine) Fallback(resumeText string) Analysis {
	rng := rand.New(rand.NewSource(seedFor(resumeText)))

	name, email, phone := e.Extractor.ExtractContactInfo(resumeText)

	skills := e.Extractor.ExtractSkills(resumeText)
	if len(skills) == 0 {
		skills = sampleStrings(rng, fallbackSkills, 3+rng.Intn(3))
	}
	if len(skills) > 10 {
		skills = skills[:10]
	}

	years := e.Extractor.ExtractExperienceYears(resumeText)
	if years <= 0 {
		years = 1 + rng.Intn(5)
	}

	score := 60 + rng.Intn(36)       // [60, 95]
	skillsMatch := 65 + rng.Intn(26) // [65, 90]

	strengths := sampleStrings(rng, fallbackStrengths, 3+rng.Intn(3))
	weaknesses := sampleStrings(rng, fallbackWeaknesses, 2+rng.Intn(2))
	recommendations := sampleStrings(rng, fallbackRecommendations, 2+rng.Intn(3))

	level := LevelFor(years)

	analysis := Analysis{
		OverallScore:    score,
		Category:        CategoryFor(score),
		Summary:         buildFallbackSummary(level, years, skills),
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		SkillsMatch:     skillsMatch,
		ExperienceLevel: level,
		ExperienceYears: years,
		KeySkills:       skills,
		Education:       fallbackEducation(e.Extractor.ExtractEducation(resumeText), resumeText),
		Recommendations: recommendations,
		RedFlags:        []string{},
		ContactInfo:     ContactInfo{Name: name, Email: email, Phone: phone},
	}
	analysis.Normalize()
	return analysis
}

// seedFor derives a stable seed from the sha256 digest of the text. The first
// eight digest bytes, big-endian, become the generator seed.
func seedFor(text string) int64 {
	sum := sha256.Sum256([]byte(text))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// sampleStrings picks n distinct items from vocab without replacement,
// consuming exactly one permutation draw from rng.
func sampleStrings(rng *rand.Rand, vocab []string, n int) []string {
	if n > len(vocab) {
		n = len(vocab)
	}
	perm := rng.Perm(len(vocab))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, vocab[idx])
	}
	return out
}

func buildFallbackSummary(level string, years int, skills []string) string {
	top := skills
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf("%s candidate with %d years of experience. Shows strong potential in %s.",
		level, years, strings.Join(top, ", "))
}

// fallbackEducation joins the first two extracted entries, or falls back to a
// rule-based default keyed on domain keywords in the resume text.
func fallbackEducation(entries []string, resumeText string) string {
	if len(entries) > 0 && entries[0] != educationNotSpecified {
		if len(entries) > 2 {
			entries = entries[:2]
		}
		return strings.Join(entries, "; ")
	}

	lower := strings.ToLower(resumeText)
	switch {
	case strings.Contains(lower, "computer") || strings.Contains(lower, "software") || strings.Contains(lower, "programming"):
		return "Bachelor's degree in Computer Science"
	case strings.Contains(lower, "business") || strings.Contains(lower, "management"):
		return "Bachelor's degree in Business Administration"
	case strings.Contains(lower, "engineering"):
		return "Bachelor's degree in Engineering"
	default:
		return "Bachelor's degree"
	}
}
