package candidates

import (
	"time"

	"resume-screener/internal/bias"
	"resume-screener/internal/engine"
)

// Candidate represents an uploaded resume together with its analysis.
type Candidate struct {
	ID             string
	FileName       string
	StorageKey     string
	ResumeText     string
	JobDescription string
	Analysis       engine.Analysis
	BiasAnalysis   bias.Report
	BlindResume    string
	UploadDate     time.Time
}

// Profile converts the candidate to the engine's chat profile shape.
func (c Candidate) Profile() engine.CandidateProfile {
	return engine.CandidateProfile{
		ID:       c.ID,
		Analysis: c.Analysis,
	}
}
