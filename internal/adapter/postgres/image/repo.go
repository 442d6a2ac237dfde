// Package image implements entry image metadata over the gateway database.
// Blobs themselves live in object storage (see adapter/blob).
package image

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Repo provides image persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new image repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

const listByEntrySQL = `
SELECT id, entry_id, image_url, caption, created_at
FROM entry_images
WHERE entry_id = $1
ORDER BY created_at, id`

const listByEntryIDsSQL = `
SELECT id, entry_id, image_url, caption, created_at
FROM entry_images
WHERE entry_id = ANY($1::uuid[])
ORDER BY entry_id, created_at, id`

const getByIDSQL = `
SELECT id, entry_id, image_url, caption, created_at
FROM entry_images
WHERE id = $1`

// ListByEntry returns an entry's images in upload order.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByEntrySQL, entryID)
	if err != nil {
		return nil, postgres.MapError(err, "images", entryID)
	}

	result, err := pgx.CollectRows(rows, scanImage)
	if err != nil {
		return nil, postgres.MapError(err, "images", entryID)
	}
	return result, nil
}

// ListByEntryIDs returns images for several entries (batch for DataLoader).
func (r *Repo) ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]domain.EntryImage, error) {
	if len(entryIDs) == 0 {
		return []domain.EntryImage{}, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByEntryIDsSQL, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("list images by entry_ids: %w", err)
	}

	result, err := pgx.CollectRows(rows, scanImage)
	if err != nil {
		return nil, fmt.Errorf("list images by entry_ids: %w", err)
	}
	return result, nil
}

// GetByID returns a single image. Returns domain.ErrNotFound if absent.
func (r *Repo) GetByID(ctx context.Context, imageID uuid.UUID) (*domain.EntryImage, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, getByIDSQL, imageID)
	if err != nil {
		return nil, postgres.MapError(err, "image", imageID)
	}

	img, err := pgx.CollectExactlyOneRow(rows, scanImage)
	if err != nil {
		return nil, postgres.MapError(err, "image", imageID)
	}
	return &img, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

const addSQL = `
INSERT INTO entry_images (entry_id, image_url, caption)
VALUES ($1, $2, $3)
RETURNING id, entry_id, image_url, caption, created_at`

const deleteSQL = `DELETE FROM entry_images WHERE id = $1 AND entry_id = $2`

// Add registers an uploaded image's public URL for an entry.
func (r *Repo) Add(ctx context.Context, entryID uuid.UUID, url string, caption *string) (*domain.EntryImage, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, addSQL, entryID, url, caption)
	if err != nil {
		return nil, postgres.MapError(err, "image", entryID)
	}

	img, err := pgx.CollectExactlyOneRow(rows, scanImage)
	if err != nil {
		return nil, postgres.MapError(err, "image", entryID)
	}
	return &img, nil
}

// Delete removes an image row belonging to entryID.
// Returns domain.ErrNotFound if no such row exists.
func (r *Repo) Delete(ctx context.Context, entryID, imageID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteSQL, imageID, entryID)
	if err != nil {
		return postgres.MapError(err, "image", imageID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("image %s: %w", imageID, domain.ErrNotFound)
	}
	return nil
}

func scanImage(row pgx.CollectableRow) (domain.EntryImage, error) {
	var img domain.EntryImage
	err := row.Scan(&img.ID, &img.EntryID, &img.ImageURL, &img.Caption, &img.CreatedAt)
	return img, err
}
