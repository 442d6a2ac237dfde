// Package follow reads the follow graph. Follow edges are mutated by the
// BaaS client directly and are read-only here.
package follow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Repo provides follow-graph reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new follow repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listFollowingSQL = `
SELECT p.id, p.username, p.avatar_url
FROM follows f
JOIN profiles p ON p.id = f.following_id
WHERE f.follower_id = $1
ORDER BY p.username`

const isFollowingSQL = `
SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

// ListFollowing returns the users followerID follows, as chat peers.
func (r *Repo) ListFollowing(ctx context.Context, followerID uuid.UUID) ([]domain.Peer, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listFollowingSQL, followerID)
	if err != nil {
		return nil, postgres.MapError(err, "follows", followerID)
	}

	result, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Peer, error) {
		var p domain.Peer
		err := row.Scan(&p.UserID, &p.Username, &p.AvatarURL)
		return p, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "follows", followerID)
	}
	return result, nil
}

// ListFollowingIDs returns only the IDs of the users followerID follows.
func (r *Repo) ListFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	peers, err := r.ListFollowing(ctx, followerID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(peers))
	for i, p := range peers {
		ids[i] = p.UserID
	}
	return ids, nil
}

// IsFollowing reports whether followerID follows followingID.
func (r *Repo) IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var ok bool
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, isFollowingSQL, followerID, followingID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return ok, nil
}
