// Package comment implements entry comments over the gateway database.
package comment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new comment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listByEntrySQL = `
SELECT id, entry_id, user_id, username, avatar_url, comment_text, created_at
FROM get_entry_comments($1)`

const listByEntryIDsSQL = `
SELECT c.id, c.entry_id, c.user_id, p.username, p.avatar_url, c.comment_text, c.created_at
FROM entry_comments c
LEFT JOIN profiles p ON p.id = c.user_id
WHERE c.entry_id = ANY($1::uuid[])
ORDER BY c.entry_id, c.created_at, c.id`

const addSQL = `SELECT add_comment($1, $2, $3)`

// ListByEntry returns an entry's comments in chronological order.
func (r *Repo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByEntrySQL, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "comments", entryID)
	}

	result, err := pgx.CollectRows(rows, scanComment)
	if err != nil {
		return nil, postgres.MapError(err, "comments", entryID)
	}
	return result, nil
}

// ListByEntryIDs returns comments for several entries (batch for DataLoader).
// Each Comment carries its EntryID for grouping by the caller.
func (r *Repo) ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]domain.Comment, error) {
	if len(entryIDs) == 0 {
		return []domain.Comment{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByEntryIDsSQL, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments by entry_ids: %w", err)
	}

	result, err := pgx.CollectRows(rows, scanComment)
	if err != nil {
		return nil, fmt.Errorf("list comments by entry_ids: %w", err)
	}
	return result, nil
}

// Add inserts a comment through the add_comment RPC and returns its ID.
func (r *Repo) Add(ctx context.Context, entryID, userID uuid.UUID, text string) (uuid.UUID, error) {
	var id uuid.UUID
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, addSQL, entryID, userID, text).Scan(&id)
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "comment", entryID)
	}
	return id, nil
}

func scanComment(row pgx.CollectableRow) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(&c.ID, &c.EntryID, &c.UserID, &c.Username, &c.AvatarURL, &c.Text, &c.CreatedAt)
	return c, err
}
