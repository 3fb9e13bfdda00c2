package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"notes-backend/api/internal/util"
)

// PreviewLength caps the stored extracted text and summary, in runes.
const PreviewLength = 500

// Entry is one processed summary as shown in a user's history.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"userId"`
	Filename      string    `json:"filename,omitempty"`
	Language      string    `json:"language"`
	Subject       string    `json:"subject"`
	ExtractedText string    `json:"extractedText"`
	Summary       string    `json:"summary"`
	CreatedAt     time.Time `json:"timestamp"`
}

type HistoryRepo struct {
	DB    *sql.DB
	Limit int // entries kept per user
}

func NewHistoryRepo(db *sql.DB, limit int) *HistoryRepo {
	if limit <= 0 {
		limit = 10
	}
	return &HistoryRepo{DB: db, Limit: limit}
}

// Add stores e (texts truncated to PreviewLength) and drops the user's
// entries beyond Limit, newest kept. ID and CreatedAt are filled when zero.
func (r *HistoryRepo) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.ExtractedText = util.Truncate(e.ExtractedText, PreviewLength)
	e.Summary = util.Truncate(e.Summary, PreviewLength)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const ins = `
insert into summary_history(id, user_id, filename, language, subject, extracted_text, summary, created_at)
values ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := tx.ExecContext(ctx, ins, e.ID, e.UserID, e.Filename, e.Language, e.Subject,
		e.ExtractedText, e.Summary, e.CreatedAt); err != nil {
		return Entry{}, fmt.Errorf("insert history: %w", err)
	}

	const prune = `
delete from summary_history
where user_id = $1
  and id not in (
    select id from summary_history
    where user_id = $1
    order by created_at desc, id
    limit $2)`
	if _, err := tx.ExecContext(ctx, prune, e.UserID, r.Limit); err != nil {
		return Entry{}, fmt.Errorf("prune history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit: %w", err)
	}
	return e, nil
}

// List returns the user's entries, newest first.
func (r *HistoryRepo) List(ctx context.Context, userID string) ([]Entry, error) {
	const q = `
select id, user_id, filename, language, subject, extracted_text, summary, created_at
from summary_history
where user_id = $1
order by created_at desc, id
limit $2`
	rows, err := r.DB.QueryContext(ctx, q, userID, r.Limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, r.Limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Filename, &e.Language, &e.Subject,
			&e.ExtractedText, &e.Summary, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear removes every entry of the user and reports how many were deleted.
func (r *HistoryRepo) Clear(ctx context.Context, userID string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `delete from summary_history where user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return res.RowsAffected()
}
