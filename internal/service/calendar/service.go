// Package calendar implements entry CRUD, entry visibility and the
// timeline that drives the social snapshot.
package calendar

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/entry"
	"github.com/heartmarshall/himalink/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entryRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListInRange(ctx context.Context, f entry.RangeFilter) ([]domain.Entry, error)
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	Update(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type followRepo interface {
	ListFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	IsFollowing(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
}

type imageRepo interface {
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error)
}

type blobRemover interface {
	Remove(ctx context.Context, path string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SocialView is the per-session social projection fed by Timeline.
type SocialView interface {
	LoadSnapshot(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error
	Retain(keep []uuid.UUID) []uuid.UUID
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config bounds timeline queries.
type Config struct {
	MaxRange time.Duration
	Limit    int
}

// Service implements calendar entry use cases.
type Service struct {
	log     *slog.Logger
	entries entryRepo
	follows followRepo
	images  imageRepo
	blobs   blobRemover
	tx      txManager
	cfg     Config
}

// NewService creates a calendar service.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	follows followRepo,
	images imageRepo,
	blobs blobRemover,
	tx txManager,
	cfg Config,
) *Service {
	return &Service{
		log:     logger.With("service", "calendar"),
		entries: entries,
		follows: follows,
		images:  images,
		blobs:   blobs,
		tx:      tx,
		cfg:     cfg,
	}
}
