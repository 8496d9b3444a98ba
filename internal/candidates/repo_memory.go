package candidates

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of CandidatesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Candidate
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Candidate),
	}
}

// Create stores a candidate.
func (r *MemoryRepo) Create(ctx context.Context, cand Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[cand.ID] = cand
	return nil
}

// GetByID returns a candidate by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cand, ok := r.data[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return cand, nil
}

// List returns all candidates, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Candidate, 0, len(r.data))
	for _, cand := range r.data {
		out = append(out, cand)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadDate.Equal(out[j].UploadDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out, nil
}
