package candidates

import (
	"time"

	"resume-screener/internal/bias"
	"resume-screener/internal/engine"
)

// CandidateResponse is the outward-facing representation of a candidate.
type CandidateResponse struct {
	ID             string          `json:"id"`
	FileName       string          `json:"filename"`
	JobDescription string          `json:"job_description,omitempty"`
	Analysis       engine.Analysis `json:"analysis"`
	BiasAnalysis   bias.Report     `json:"bias_analysis"`
	UploadDate     time.Time       `json:"upload_date"`
}

// UploadResponse is returned from a successful resume upload.
type UploadResponse struct {
	Success      bool            `json:"success"`
	CandidateID  string          `json:"candidate_id"`
	Analysis     engine.Analysis `json:"analysis"`
	BiasAnalysis bias.Report     `json:"bias_analysis"`
}

func toResponse(cand Candidate) CandidateResponse {
	return CandidateResponse{
		ID:             cand.ID,
		FileName:       cand.FileName,
		JobDescription: cand.JobDescription,
		Analysis:       cand.Analysis,
		BiasAnalysis:   cand.BiasAnalysis,
		UploadDate:     cand.UploadDate,
	}
}

func toResponses(cands []Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(cands))
	for _, cand := range cands {
		out = append(out, toResponse(cand))
	}
	return out
}
