package candidates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-screener/internal/bias"
	"resume-screener/internal/engine"
	"resume-screener/internal/extract"
	"resume-screener/internal/shared/metrics"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

// Service contains business logic for candidate uploads and lookups.
type Service struct {
	Store    object.ObjectStore
	Repo     CandidatesRepo
	Engine   *engine.Engine
	Detector *bias.Detector
}

// Statistics summarizes the candidate pool.
type Statistics struct {
	TotalCandidates int     `json:"total_candidates"`
	HighlyQualified int     `json:"highly_qualified"`
	Qualified       int     `json:"qualified"`
	AverageScore    float64 `json:"average_score"`
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// Upload stores the resume, extracts its text, runs analysis and bias
// detection, and persists the resulting candidate.
func (s *Service) Upload(ctx context.Context, fileName, jobDescription string, r io.Reader) (Candidate, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return Candidate{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return Candidate{}, fmt.Errorf("%w: invalid file type, only PDF and DOCX allowed", ErrInvalidInput)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Candidate{}, fmt.Errorf("read upload: %w", err)
	}

	storageKey, _, mimeType, err := s.Store.Save(ctx, fileName, bytes.NewReader(raw))
	if err != nil {
		return Candidate{}, fmt.Errorf("store upload: %w", err)
	}

	resumeText, err := extract.ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return Candidate{}, fmt.Errorf("%w: could not extract text: %v", ErrInvalidInput, err)
	}

	start := time.Now()
	analysis := s.Engine.Analyze(ctx, resumeText, jobDescription)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	biasReport := s.Detector.Analyze(resumeText)
	blind := s.Detector.BlindResume(resumeText, redactableName(analysis))

	cand := Candidate{
		ID:             uuid.NewString(),
		FileName:       fileName,
		StorageKey:     storageKey,
		ResumeText:     resumeText,
		JobDescription: strings.TrimSpace(jobDescription),
		Analysis:       analysis,
		BiasAnalysis:   biasReport,
		BlindResume:    blind,
		UploadDate:     time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, cand); err != nil {
		return Candidate{}, fmt.Errorf("persist candidate: %w", err)
	}

	metrics.IncUploads()
	telemetry.Info("candidate.uploaded", map[string]any{
		"candidate_id": cand.ID,
		"file_name":    cand.FileName,
		"score":        analysis.OverallScore,
		"category":     analysis.Category,
	})
	return cand, nil
}

// Get returns a candidate by ID.
func (s *Service) Get(ctx context.Context, id string) (Candidate, error) {
	if strings.TrimSpace(id) == "" {
		return Candidate{}, fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all candidates, newest first.
func (s *Service) List(ctx context.Context) ([]Candidate, error) {
	return s.Repo.List(ctx)
}

// Statistics computes pool-level screening statistics.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	cands, err := s.Repo.List(ctx)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{TotalCandidates: len(cands)}
	if len(cands) == 0 {
		return stats, nil
	}

	sum := 0
	for _, cand := range cands {
		sum += cand.Analysis.OverallScore
		switch cand.Analysis.Category {
		case engine.CategoryHighlyQualified:
			stats.HighlyQualified++
		case engine.CategoryQualified:
			stats.Qualified++
		}
	}
	stats.AverageScore = float64(sum) / float64(len(cands))
	return stats, nil
}

// redactableName returns the extracted candidate name when it is real,
// not the placeholder used for missing contact info.
func redactableName(a engine.Analysis) string {
	if a.ContactInfo.Name == engine.PlaceholderName {
		return ""
	}
	return a.ContactInfo.Name
}
