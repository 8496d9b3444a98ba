package candidates

import "context"

// CandidatesRepo defines persistence operations for candidates.
type CandidatesRepo interface {
	Create(ctx context.Context, cand Candidate) error
	GetByID(ctx context.Context, id string) (Candidate, error)
	List(ctx context.Context) ([]Candidate, error)
}
