// Package reaction implements entry reactions over the gateway database.
// Per-entry reads go through the get_reaction_summary and
// get_reaction_users RPC functions; batch reads query the table directly.
package reaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/domain"
)

// CountWithEntryID is the batch result type for GetSummaryByEntryIDs.
type CountWithEntryID struct {
	EntryID uuid.UUID
	domain.ReactionCount
}

// UserWithEntryID is the batch result type for GetUsersByEntryIDs.
type UserWithEntryID struct {
	EntryID uuid.UUID
	domain.ReactionUser
}

// Repo provides reaction persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reaction repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Per-entry reads
// ---------------------------------------------------------------------------

const getSummarySQL = `SELECT kind, reaction_count FROM get_reaction_summary($1)`

const getUsersSQL = `SELECT kind, user_id, username, avatar_url FROM get_reaction_users($1)`

const getUserReactionSQL = `
SELECT entry_id, user_id, reaction
FROM entry_reactions
WHERE entry_id = $1 AND user_id = $2 AND reaction = $3`

// GetSummary returns per-kind counts for an entry.
func (r *Repo) GetSummary(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionCount, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getSummarySQL, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "reaction summary", entryID)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReactionCount, error) {
		var (
			kind  string
			count int64
		)
		if err := row.Scan(&kind, &count); err != nil {
			return domain.ReactionCount{}, err
		}
		return domain.ReactionCount{Kind: domain.ReactionKind(kind), Count: int(count)}, nil
	})
	if err != nil {
		return nil, postgres.MapError(err, "reaction summary", entryID)
	}
	return result, nil
}

// GetUsers returns attributed reactions for an entry in reaction order.
func (r *Repo) GetUsers(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionUser, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getUsersSQL, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "reaction users", entryID)
	}

	result, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, postgres.MapError(err, "reaction users", entryID)
	}
	return result, nil
}

// GetUserReaction returns the user's record for (entryID, kind): zero or
// one element.
func (r *Repo) GetUserReaction(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) ([]domain.ReactionRecord, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getUserReactionSQL, entryID, userID, string(kind))
	if err != nil {
		return nil, postgres.MapError(err, "reaction", entryID)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReactionRecord, error) {
		var (
			rec  domain.ReactionRecord
			kind string
		)
		if err := row.Scan(&rec.EntryID, &rec.UserID, &kind); err != nil {
			return domain.ReactionRecord{}, err
		}
		rec.Kind = domain.ReactionKind(kind)
		return rec, nil
	})
	if err != nil {
		return nil, postgres.MapError(err, "reaction", entryID)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Batch reads (DataLoader)
// ---------------------------------------------------------------------------

const getSummaryByEntryIDsSQL = `
SELECT entry_id, reaction, count(*)
FROM entry_reactions
WHERE entry_id = ANY($1::uuid[])
GROUP BY entry_id, reaction
ORDER BY entry_id, reaction`

const getUsersByEntryIDsSQL = `
SELECT r.entry_id, r.reaction, r.user_id, p.username, p.avatar_url
FROM entry_reactions r
JOIN profiles p ON p.id = r.user_id
WHERE r.entry_id = ANY($1::uuid[])
ORDER BY r.entry_id, r.created_at, r.user_id`

// GetSummaryByEntryIDs returns per-kind counts for several entries.
func (r *Repo) GetSummaryByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]CountWithEntryID, error) {
	if len(entryIDs) == 0 {
		return []CountWithEntryID{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getSummaryByEntryIDsSQL, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("get reaction summary by entry_ids: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (CountWithEntryID, error) {
		var (
			c     CountWithEntryID
			kind  string
			count int64
		)
		if err := row.Scan(&c.EntryID, &kind, &count); err != nil {
			return CountWithEntryID{}, err
		}
		c.Kind = domain.ReactionKind(kind)
		c.Count = int(count)
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get reaction summary by entry_ids: %w", err)
	}
	return result, nil
}

// GetUsersByEntryIDs returns attributed reactions for several entries.
func (r *Repo) GetUsersByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]UserWithEntryID, error) {
	if len(entryIDs) == 0 {
		return []UserWithEntryID{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getUsersByEntryIDsSQL, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("get reaction users by entry_ids: %w", err)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (UserWithEntryID, error) {
		var (
			u    UserWithEntryID
			kind string
		)
		if err := row.Scan(&u.EntryID, &kind, &u.UserID, &u.Username, &u.AvatarURL); err != nil {
			return UserWithEntryID{}, err
		}
		u.Kind = domain.ReactionKind(kind)
		return u, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get reaction users by entry_ids: %w", err)
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

const addSQL = `INSERT INTO entry_reactions (entry_id, user_id, reaction) VALUES ($1, $2, $3)`

const deleteSQL = `DELETE FROM entry_reactions WHERE entry_id = $1 AND user_id = $2 AND reaction = $3`

// Add records a reaction. Returns domain.ErrAlreadyExists for a duplicate
// and domain.ErrNotFound when the entry does not exist.
func (r *Repo) Add(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, addSQL, entryID, userID, string(kind)); err != nil {
		return postgres.MapError(err, "reaction", entryID)
	}
	return nil
}

// Delete removes a reaction. Returns domain.ErrNotFound if it was absent.
func (r *Repo) Delete(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, entryID, userID, string(kind))
	if err != nil {
		return postgres.MapError(err, "reaction", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("reaction %s: %w", entryID, domain.ErrNotFound)
	}
	return nil
}

func scanUser(row pgx.CollectableRow) (domain.ReactionUser, error) {
	var (
		u    domain.ReactionUser
		kind string
	)
	if err := row.Scan(&kind, &u.UserID, &u.Username, &u.AvatarURL); err != nil {
		return domain.ReactionUser{}, err
	}
	u.Kind = domain.ReactionKind(kind)
	return u, nil
}
