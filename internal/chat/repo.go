package chat

import "context"

// HistoryRepo defines persistence for HR assistant chat history.
type HistoryRepo interface {
	Save(ctx context.Context, entry HistoryEntry) error
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
}
