package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-screener/internal/bias"
)

// PGRepo implements CandidatesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new candidate. Analysis and bias report are stored as JSONB.
func (r *PGRepo) Create(ctx context.Context, cand Candidate) error {
	const query = `
INSERT INTO candidates (
    id,
    file_name,
    storage_key,
    resume_text,
    job_description,
    analysis,
    bias_analysis,
    blind_resume,
    upload_date
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	analysisJSON, err := json.Marshal(cand.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	biasJSON, err := json.Marshal(cand.BiasAnalysis)
	if err != nil {
		return fmt.Errorf("marshal bias analysis: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		cand.ID,
		cand.FileName,
		cand.StorageKey,
		cand.ResumeText,
		cand.JobDescription,
		analysisJSON,
		biasJSON,
		cand.BlindResume,
		cand.UploadDate,
	)
	return err
}

const selectColumns = `id, file_name, storage_key, resume_text, job_description, analysis, bias_analysis, blind_resume, upload_date`

// GetByID fetches a candidate by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	query := `
SELECT ` + selectColumns + `
FROM candidates
WHERE id = $1
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	cand, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return cand, nil
}

// List returns all candidates, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Candidate, error) {
	query := `
SELECT ` + selectColumns + `
FROM candidates
ORDER BY upload_date DESC, id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Candidate{}
	for rows.Next() {
		cand, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cand)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (Candidate, error) {
	var cand Candidate
	var analysisJSON []byte
	var biasJSON []byte
	err := row.Scan(
		&cand.ID,
		&cand.FileName,
		&cand.StorageKey,
		&cand.ResumeText,
		&cand.JobDescription,
		&analysisJSON,
		&biasJSON,
		&cand.BlindResume,
		&cand.UploadDate,
	)
	if err != nil {
		return Candidate{}, err
	}
	if len(analysisJSON) > 0 {
		if err := json.Unmarshal(analysisJSON, &cand.Analysis); err != nil {
			return Candidate{}, fmt.Errorf("unmarshal analysis: %w", err)
		}
	}
	cand.BiasAnalysis = bias.Report{Flags: []bias.Flag{}, Recommendations: []string{}}
	if len(biasJSON) > 0 {
		if err := json.Unmarshal(biasJSON, &cand.BiasAnalysis); err != nil {
			return Candidate{}, fmt.Errorf("unmarshal bias analysis: %w", err)
		}
	}
	return cand, nil
}

var _ CandidatesRepo = (*PGRepo)(nil)
