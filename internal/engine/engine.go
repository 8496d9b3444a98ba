// Package engine is the resume analysis core: it turns raw resume text into
// a structured Analysis and answers chat questions about candidates. Every
// public operation is total: when the AI backend is unconfigured,
// unreachable, or returns malformed output, the engine degrades to locally
// computed responses and never surfaces the failure to its caller.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/telemetry"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1500

	noCandidatesReply = "I don't have any candidate data to work with. Please upload some resumes first."
)

// Engine orchestrates the AI gateway and the deterministic fallback paths.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	Gateway   Gateway
	Extractor FieldExtractor
}

// New constructs an Engine.
func New(gateway Gateway, extractor FieldExtractor) *Engine {
	return &Engine{Gateway: gateway, Extractor: extractor}
}

// Analyze evaluates a resume against an optional job description. It tries
// the AI gateway once and validates its output against the Analysis schema;
// any failure along that path triggers the deterministic fallback, which
// ignores the job description.
func (e *Engine) Analyze(ctx context.Context, resumeText, jobDescription string) Analysis {
	if e.Gateway == nil || !e.Gateway.Configured() {
		telemetry.Info("analysis.fallback", map[string]any{"reason": "gateway_unconfigured"})
		metrics.IncAnalysisFallback()
		return e.Fallback(resumeText)
	}

	out, err := e.Gateway.Call(ctx, buildAnalyzeMessages(resumeText, jobDescription), defaultTemperature, defaultMaxTokens)
	if err != nil {
		telemetry.Info("analysis.fallback", map[string]any{"reason": "gateway_call_failed", "error": err.Error()})
		metrics.IncAnalysisFallback()
		return e.Fallback(resumeText)
	}

	analysis, err := parseAnalysis(out)
	if err != nil {
		telemetry.Info("analysis.fallback", map[string]any{"reason": "contract_violation", "error": err.Error()})
		metrics.IncAnalysisFallback()
		return e.Fallback(resumeText)
	}
	metrics.IncAnalysisAI()
	return analysis
}

// Chat answers a free-text question about one candidate. On gateway failure
// it falls back to keyword-routed templating over the stored analysis; it
// never re-derives the analysis.
func (e *Engine) Chat(ctx context.Context, profile CandidateProfile, message string) string {
	if e.Gateway != nil && e.Gateway.Configured() {
		messages := buildCandidateChatMessages(profileBlock(profile.Analysis), message)
		reply, err := e.Gateway.Call(ctx, messages, defaultTemperature, defaultMaxTokens)
		if err == nil {
			return reply
		}
		telemetry.Info("chat.fallback", map[string]any{"candidate_id": profile.ID, "error": err.Error()})
	}
	return candidateChatFallback(profile.Analysis, message)
}

// HRChat answers a free-text question about the whole candidate pool. The
// empty pool always gets the fixed no-data reply; on gateway failure the
// answer is computed locally from the stored analyses.
func (e *Engine) HRChat(ctx context.Context, profiles []CandidateProfile, message string) string {
	if len(profiles) == 0 {
		return noCandidatesReply
	}

	if e.Gateway != nil && e.Gateway.Configured() {
		messages := buildHRChatMessages(poolContext(profiles), message)
		reply, err := e.Gateway.Call(ctx, messages, defaultTemperature, defaultMaxTokens)
		if err == nil {
			return reply
		}
		telemetry.Info("hr_chat.fallback", map[string]any{"pool_size": len(profiles), "error": err.Error()})
	}
	return hrChatFallback(profiles, message)
}

// profileBlock renders the short candidate summary embedded in chat prompts.
func profileBlock(a Analysis) string {
	return fmt.Sprintf(`**Candidate Profile:**
- **Name:** %s
- **Overall Score:** %d%%
- **Category:** %s
- **Experience:** %d years
- **Key Skills:** %s
- **Top Strengths:** %s
- **Areas for Improvement:** %s`,
		a.ContactInfo.Name,
		a.OverallScore,
		a.Category,
		a.ExperienceYears,
		joinFirst(a.KeySkills, 5),
		joinFirst(a.Strengths, 3),
		joinFirst(a.Weaknesses, 2),
	)
}

type poolEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Score    int      `json:"score"`
	Skills   []string `json:"skills"`
}

// poolContext serializes at most the first 10 candidates, in input order.
func poolContext(profiles []CandidateProfile) string {
	if len(profiles) > 10 {
		profiles = profiles[:10]
	}
	entries := make([]poolEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, poolEntry{
			ID:       p.ID,
			Name:     p.Analysis.ContactInfo.Name,
			Category: p.Analysis.Category,
			Score:    p.Analysis.OverallScore,
			Skills:   p.Analysis.KeySkills,
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "No candidate data available"
	}
	return string(data)
}

// candidateChatFallback routes on the first matching keyword; the order of
// the chain (experience, skills, strengths, generic) is part of the contract.
func candidateChatFallback(a Analysis, message string) string {
	lower := strings.ToLower(message)
	name := a.ContactInfo.Name

	switch {
	case strings.Contains(lower, "experience"):
		return fmt.Sprintf("**%s** has %d years of experience and is categorized as **%s** with an overall score of %d%%.",
			name, a.ExperienceYears, a.Category, a.OverallScore)
	case strings.Contains(lower, "skills"):
		return fmt.Sprintf("**%s**'s key skills include: %s. They have a skills match score of %d%%.",
			name, joinFirst(a.KeySkills, 5), a.SkillsMatch)
	case strings.Contains(lower, "strengths"):
		return fmt.Sprintf("**%s**'s main strengths are: %s.", name, joinFirst(a.Strengths, 3))
	default:
		return fmt.Sprintf("**%s** is a **%s** candidate with an overall score of %d%%. They have %d years of experience and strong skills in %s.",
			name, a.Category, a.OverallScore, a.ExperienceYears, joinFirst(a.KeySkills, 3))
	}
}

func hrChatFallback(profiles []CandidateProfile, message string) string {
	// Stable sort: ties keep their original relative order.
	sorted := make([]CandidateProfile, len(profiles))
	copy(sorted, profiles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Analysis.OverallScore > sorted[j].Analysis.OverallScore
	})

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "top") || strings.Contains(lower, "best"):
		var b strings.Builder
		b.WriteString("**Top Candidates:**\n\n")
		for i, p := range sorted {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "%d. **%s** - %d%% (%s)\n", i+1,
				p.Analysis.ContactInfo.Name, p.Analysis.OverallScore, p.Analysis.Category)
			fmt.Fprintf(&b, "   Skills: %s\n\n", joinFirst(p.Analysis.KeySkills, 3))
		}
		return b.String()

	case strings.Contains(lower, "statistics") || strings.Contains(lower, "stats"):
		var highly, qualified, total int
		for _, p := range profiles {
			switch p.Analysis.Category {
			case CategoryHighlyQualified:
				highly++
			case CategoryQualified:
				qualified++
			}
			total += p.Analysis.OverallScore
		}
		average := float64(total) / float64(len(profiles))
		return fmt.Sprintf("**Candidate Statistics:**\n\n- Total Candidates: %d\n- Highly Qualified: %d\n- Qualified: %d\n- Average Score: %.1f%%",
			len(profiles), highly, qualified, average)

	default:
		top := sorted[0]
		return fmt.Sprintf("I have %d candidates in the system. The top performer is %s with a score of %d%%. Ask me about top candidates or statistics for more details.",
			len(profiles), top.Analysis.ContactInfo.Name, top.Analysis.OverallScore)
	}
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}
