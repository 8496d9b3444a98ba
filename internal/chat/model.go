package chat

import "time"

// HistoryEntry is one persisted HR assistant exchange.
type HistoryEntry struct {
	ID        string
	Message   string
	Reply     string
	CreatedAt time.Time
}
