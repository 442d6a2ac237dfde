package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/himalink/internal/domain"
)

func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedProfile inserts a profile with a unique username.
func SeedProfile(t *testing.T, pool *pgxpool.Pool) domain.Profile {
	t.Helper()

	avatar := "https://cdn.example.com/avatars/" + uniqueSuffix() + ".png"
	p := domain.Profile{
		ID:        uuid.New(),
		Username:  "user-" + uniqueSuffix(),
		AvatarURL: &avatar,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO profiles (id, username, avatar_url, created_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Username, p.AvatarURL, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProfile: %v", err)
	}

	return p
}

// SeedFollow makes follower follow following.
func SeedFollow(t *testing.T, pool *pgxpool.Pool, followerID, followingID uuid.UUID) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`,
		followerID, followingID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFollow: %v", err)
	}
}

// SeedEntry inserts an event owned by ownerID starting at start.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, start time.Time) domain.Entry {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Entry{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     "entry-" + uniqueSuffix(),
		EntryType: domain.EntryTypeEvent,
		StartTime: start.UTC().Truncate(time.Microsecond),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO entries (id, owner_id, title, entry_type, start_time, is_all_day, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, false, $6, $7)`,
		e.ID, e.OwnerID, e.Title, string(e.EntryType), e.StartTime, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry: %v", err)
	}

	return e
}

// SeedReaction inserts a reaction row.
func SeedReaction(t *testing.T, pool *pgxpool.Pool, entryID, userID uuid.UUID, kind domain.ReactionKind) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO entry_reactions (entry_id, user_id, reaction) VALUES ($1, $2, $3)`,
		entryID, userID, string(kind),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReaction: %v", err)
	}
}
