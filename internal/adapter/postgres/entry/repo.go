// Package entry implements calendar entry persistence over the gateway
// database. Dynamic queries (timeline window, partial update) are built
// with squirrel; fixed ones are raw SQL.
package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var entryColumns = []string{
	"e.id", "e.owner_id", "e.title", "e.content", "e.entry_type", "e.start_time",
	"e.end_time", "e.is_all_day", "e.location", "e.created_at", "e.updated_at",
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

const getDetailsSQL = `
SELECT
    e.id, e.owner_id, e.title, e.content, e.entry_type, e.start_time,
    e.end_time, e.is_all_day, e.location, e.created_at, e.updated_at,
    p.username, p.avatar_url
FROM entries e
LEFT JOIN profiles p ON p.id = e.owner_id
WHERE e.id = $1`

// GetByID returns an entry with its owner's profile denormalized.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		e        domain.Entry
		typ      string
		username *string
		avatar   *string
	)
	err := querier.QueryRow(ctx, getDetailsSQL, id).Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Content, &typ, &e.StartTime,
		&e.EndTime, &e.IsAllDay, &e.Location, &e.CreatedAt, &e.UpdatedAt,
		&username, &avatar,
	)
	if err != nil {
		return nil, postgres.MapError(err, "entry", id)
	}
	e.EntryType = domain.EntryType(typ)
	e.OwnerUsername = username
	e.OwnerAvatarURL = avatar

	return &e, nil
}

// ListInRange returns entries matching the filter ordered by start time.
func (r *Repo) ListInRange(ctx context.Context, f RangeFilter) ([]domain.Entry, error) {
	if len(f.OwnerIDs) == 0 {
		return []domain.Entry{}, nil
	}
	f.normalize()

	sql, args, err := postgres.Builder().
		Select(entryColumns...).
		From("entries e").
		Where(f.where()).
		OrderBy("e.start_time", "e.id").
		Limit(uint64(f.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO entries AS e (owner_id, title, content, entry_type, start_time, end_time, is_all_day, location)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING e.id, e.owner_id, e.title, e.content, e.entry_type, e.start_time,
          e.end_time, e.is_all_day, e.location, e.created_at, e.updated_at`

// Create inserts an entry. ID and timestamps are assigned by the database.
func (r *Repo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, createSQL,
		e.OwnerID, e.Title, e.Content, string(e.EntryType), e.StartTime, e.EndTime, e.IsAllDay, e.Location,
	)
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.OwnerID)
	}

	created, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.OwnerID)
	}
	return &created, nil
}

// Update overwrites the editable fields of an entry owned by e.OwnerID.
// Returns domain.ErrNotFound when no such entry exists for that owner.
func (r *Repo) Update(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	sql, args, err := postgres.Builder().
		Update("entries AS e").
		SetMap(map[string]any{
			"title":      e.Title,
			"content":    e.Content,
			"entry_type": string(e.EntryType),
			"start_time": e.StartTime,
			"end_time":   e.EndTime,
			"is_all_day": e.IsAllDay,
			"location":   e.Location,
			"updated_at": time.Now().UTC(),
		}).
		Where("e.id = ? AND e.owner_id = ?", e.ID, e.OwnerID).
		Suffix("RETURNING " + strings.Join(entryColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update entry query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}

	updated, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}
	return &updated, nil
}

const deleteSQL = `DELETE FROM entries WHERE id = $1 AND owner_id = $2`

// Delete removes an entry owned by ownerID. Reactions, comments and image
// rows cascade. Returns domain.ErrNotFound when nothing was deleted.
func (r *Repo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, id, ownerID)
	if err != nil {
		return postgres.MapError(err, "entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanEntry(row pgx.CollectableRow) (domain.Entry, error) {
	var (
		e   domain.Entry
		typ string
	)
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.Title, &e.Content, &typ, &e.StartTime,
		&e.EndTime, &e.IsAllDay, &e.Location, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	e.EntryType = domain.EntryType(typ)
	return e, nil
}
