// Package bias performs deterministic keyword scans for potentially
// biased resume content and produces redacted blind resumes.
package bias

import (
	"fmt"
	"regexp"
	"strings"
)

// Report summarizes potentially biased content found in a resume.
type Report struct {
	BiasScore       int      `json:"bias_score"`
	Flags           []Flag   `json:"flags"`
	Recommendations []string `json:"recommendations"`
}

// Flag is a single category hit.
type Flag struct {
	Category string   `json:"category"`
	Terms    []string `json:"terms"`
}

const (
	categoryGendered = "gendered_language"
	categoryAge      = "age_markers"
	categoryPersonal = "personal_details"
)

var genderedTerms = []string{
	"he", "she", "his", "her", "him", "himself", "herself",
	"mr", "mrs", "ms", "miss",
	"male", "female", "man", "woman",
	"fraternity", "sorority",
	"waitress", "salesman", "chairman",
}

var ageTerms = []string{
	"young", "youthful", "energetic", "digital native",
	"senior citizen", "retired", "recent graduate",
	"years old", "date of birth", "dob",
}

var personalTerms = []string{
	"married", "single", "divorced", "children", "kids",
	"nationality", "religion", "church", "disability",
	"photo", "photograph",
}

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
var phoneRe = regexp.MustCompile(`(\+?\d{1,2}[\s.\-]?)?(\(?\d{3}\)?[\s.\-]?)\d{3}[\s.\-]?\d{4}`)

// Detector scans resume text for bias markers.
type Detector struct{}

// New constructs a Detector.
func New() *Detector {
	return &Detector{}
}

// Analyze scans text and returns a report. The score counts distinct
// flagged terms, capped at 100.
func (d *Detector) Analyze(text string) Report {
	report := Report{
		Flags:           []Flag{},
		Recommendations: []string{},
	}

	categories := []struct {
		name  string
		terms []string
	}{
		{categoryGendered, genderedTerms},
		{categoryAge, ageTerms},
		{categoryPersonal, personalTerms},
	}

	total := 0
	for _, cat := range categories {
		hits := matchTerms(text, cat.terms)
		if len(hits) == 0 {
			continue
		}
		total += len(hits)
		report.Flags = append(report.Flags, Flag{Category: cat.name, Terms: hits})
	}

	score := total * 10
	if score > 100 {
		score = 100
	}
	report.BiasScore = score
	report.Recommendations = Recommendations(report)
	return report
}

// Recommendations derives advice lines from a report's flagged categories.
func Recommendations(report Report) []string {
	recs := []string{}
	for _, flag := range report.Flags {
		switch flag.Category {
		case categoryGendered:
			recs = append(recs, "Consider removing gendered language to reduce unconscious bias.")
		case categoryAge:
			recs = append(recs, "Remove age-related markers so screening focuses on skills and experience.")
		case categoryPersonal:
			recs = append(recs, "Strip personal details that are not relevant to job performance.")
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "No bias markers detected. The resume is suitable for fair screening.")
	}
	return recs
}

// BlindResume redacts contact details and flagged terms from the resume.
// Name redaction uses the extracted candidate name when known.
func (d *Detector) BlindResume(text, candidateName string) string {
	blind := text
	if name := strings.TrimSpace(candidateName); name != "" {
		nameRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name))
		if err == nil {
			blind = nameRe.ReplaceAllString(blind, "[CANDIDATE]")
		}
	}
	blind = emailRe.ReplaceAllString(blind, "[EMAIL]")
	blind = phoneRe.ReplaceAllString(blind, "[PHONE]")

	for _, terms := range [][]string{genderedTerms, ageTerms, personalTerms} {
		for _, term := range terms {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
			if err != nil {
				continue
			}
			blind = re.ReplaceAllString(blind, "[REDACTED]")
		}
	}
	return blind
}

func matchTerms(text string, terms []string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, term := range terms {
		re, err := regexp.Compile(fmt.Sprintf(`\b%s\b`, regexp.QuoteMeta(term)))
		if err != nil {
			continue
		}
		if re.MatchString(lower) {
			hits = append(hits, term)
		}
	}
	return hits
}
