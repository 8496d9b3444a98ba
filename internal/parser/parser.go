// Package parser derives structured fields from plain resume text. Every
// function is a pure function of its input; absence of a field is reported
// with a zero value or a fixed sentinel, never an error.
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// EducationNotSpecified is returned as the sole education entry when no
// education section could be located.
const EducationNotSpecified = "Education information not clearly specified"

// skillVocabulary lists the skills the extractor scans for. Matches are
// reported in vocabulary order.
var skillVocabulary = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Golang", "C++", "C#", "Ruby", "PHP",
	"SQL", "HTML", "CSS", "React", "Angular", "Vue", "Node.js", "Django", "Flask",
	"Spring", "AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "Git",
	"Linux", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Kafka",
	"Machine Learning", "Deep Learning", "Data Analysis", "Data Science",
	"Project Management", "Agile", "Scrum", "Communication", "Leadership",
	"Problem Solving", "Teamwork", "Excel",
}

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`\+?\d[\d\-\s().]{7,}\d`)

	yearsExpRe  = regexp.MustCompile(`(?i)(\d{1,2})\s*\+?\s*(?:years?|yrs?)(?:\s+of)?\s+(?:\w+\s+)?experience`)
	expYearsRe  = regexp.MustCompile(`(?i)experience\s*[:\-]?\s*(\d{1,2})\s*\+?\s*(?:years?|yrs?)`)
	calendarRe  = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	degreeWords = []string{
		"bachelor", "master", "phd", "ph.d", "doctorate", "mba",
		"b.s", "m.s", "b.sc", "m.sc", "b.tech", "m.tech", "b.a", "m.a",
		"university", "college", "institute", "diploma", "degree",
	}
)

var skillPatterns = buildSkillPatterns()

func buildSkillPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skillVocabulary))
	for i, skill := range skillVocabulary {
		// Word boundaries via explicit separators so terms like "C++" and
		// "Node.js" match without partial-word hits.
		pattern := `(?i)(^|[\s,;:()/|])` + regexp.QuoteMeta(skill) + `($|[\s,;:()/|.])`
		patterns[i] = regexp.MustCompile(pattern)
	}
	return patterns
}

// Parser implements deterministic field extraction from resume text.
type Parser struct{}

// New constructs a Parser.
func New() *Parser {
	return &Parser{}
}

// ExtractContactInfo returns name, email, and phone. Each is empty when it
// could not be located.
func (p *Parser) ExtractContactInfo(text string) (name, email, phone string) {
	email = emailRe.FindString(text)
	phone = strings.TrimSpace(phoneRe.FindString(text))
	name = extractName(text)
	return name, email, phone
}

// ExtractSkills scans the text against the skill vocabulary and returns the
// matches in vocabulary order, deduplicated.
func (p *Parser) ExtractSkills(text string) []string {
	var skills []string
	for i, pattern := range skillPatterns {
		if pattern.MatchString(text) {
			skills = append(skills, skillVocabulary[i])
		}
	}
	return skills
}

// ExtractExperienceYears estimates total years of experience. Explicit
// "N years of experience" statements win; otherwise the span of calendar
// years mentioned in the text is used. Returns 0 when nothing matches.
func (p *Parser) ExtractExperienceYears(text string) int {
	best := 0
	for _, re := range []*regexp.Regexp{yearsExpRe, expYearsRe} {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if years, err := strconv.Atoi(match[1]); err == nil && years > best {
				best = years
			}
		}
	}
	if best > 0 {
		return best
	}

	years := calendarRe.FindAllString(text, -1)
	if len(years) < 2 {
		return 0
	}
	minYear, maxYear := 0, 0
	for _, raw := range years {
		y, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if minYear == 0 || y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	span := maxYear - minYear
	if span > 40 {
		span = 40
	}
	return span
}

// ExtractEducation returns lines that look like education entries, or the
// EducationNotSpecified sentinel as the only element.
func (p *Parser) ExtractEducation(text string) []string {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(trimmed) > 120 {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, word := range degreeWords {
			if strings.Contains(lower, word) {
				entries = append(entries, trimmed)
				break
			}
		}
		if len(entries) == 5 {
			break
		}
	}
	if len(entries) == 0 {
		return []string{EducationNotSpecified}
	}
	return entries
}

func extractName(text string) string {
	lines := strings.Split(text, "\n")
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.ContainsAny(trimmed, "@0123456789") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") {
			continue
		}
		words := strings.Fields(trimmed)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		plausible := true
		for _, w := range words {
			r := []rune(w)
			if r[0] < 'A' || r[0] > 'Z' {
				plausible = false
				break
			}
		}
		if plausible {
			return trimmed
		}
	}
	return ""
}
