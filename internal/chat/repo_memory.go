package chat

import (
	"context"
	"sync"
)

// MemoryHistoryRepo is an in-memory implementation of HistoryRepo.
type MemoryHistoryRepo struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewMemoryHistoryRepo constructs a MemoryHistoryRepo.
func NewMemoryHistoryRepo() *MemoryHistoryRepo {
	return &MemoryHistoryRepo{}
}

// Save appends a history entry.
func (r *MemoryHistoryRepo) Save(ctx context.Context, entry HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// List returns history entries, newest first, honoring limit.
func (r *MemoryHistoryRepo) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]HistoryEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, r.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
