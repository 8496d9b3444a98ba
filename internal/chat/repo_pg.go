package chat

import (
	"context"
	"database/sql"
)

// PGHistoryRepo implements HistoryRepo using Postgres.
type PGHistoryRepo struct {
	DB *sql.DB
}

// Save inserts a history entry.
func (r *PGHistoryRepo) Save(ctx context.Context, entry HistoryEntry) error {
	const query = `
INSERT INTO hr_chat_messages (id, message, reply, created_at)
VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query, entry.ID, entry.Message, entry.Reply, entry.CreatedAt)
	return err
}

// List returns history entries, newest first.
func (r *PGHistoryRepo) List(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT id, message, reply, created_at
FROM hr_chat_messages
ORDER BY created_at DESC
LIMIT $1`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []HistoryEntry{}
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.Message, &entry.Reply, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ HistoryRepo = (*PGHistoryRepo)(nil)
