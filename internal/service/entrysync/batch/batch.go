// Package batch coalesces the per-entry social reads of a snapshot into one
// query per kind of read. Each wrapper keeps the per-entry method set of
// the repository it wraps, so it can be injected wherever the repository
// itself is expected. Writes pass straight through.
//
// Wrappers are built per session. A batch runs detached from the context
// of whichever caller opened it, bounded by its own timeout; each caller
// still gets its own context error back.
package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/reaction"
	"github.com/heartmarshall/himalink/internal/domain"
)

const (
	maxBatch       = 100
	defaultWait    = 2 * time.Millisecond
	defaultTimeout = 15 * time.Second
)

// Option tunes the loaders built by the constructors.
type Option func(*settings)

type settings struct {
	wait    time.Duration
	timeout time.Duration
}

// WithWait sets how long a loader collects keys before dispatching a batch.
func WithWait(d time.Duration) Option {
	return func(s *settings) { s.wait = d }
}

// WithTimeout bounds a single batch query. Non-positive values keep the
// default.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func buildSettings(opts []Option) settings {
	s := settings{wait: defaultWait, timeout: defaultTimeout}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// ReactionRepo is the reaction repository surface the wrapper needs.
type ReactionRepo interface {
	GetSummaryByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]reaction.CountWithEntryID, error)
	GetUsersByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]reaction.UserWithEntryID, error)
	GetUserReaction(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) ([]domain.ReactionRecord, error)
	Add(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) error
	Delete(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) error
}

// CommentRepo is the comment repository surface the wrapper needs.
type CommentRepo interface {
	ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]domain.Comment, error)
	Add(ctx context.Context, entryID, userID uuid.UUID, text string) (uuid.UUID, error)
}

// ImageRepo is the image repository surface the wrapper needs.
type ImageRepo interface {
	ListByEntryIDs(ctx context.Context, entryIDs []uuid.UUID) ([]domain.EntryImage, error)
	Add(ctx context.Context, entryID uuid.UUID, url string, caption *string) (*domain.EntryImage, error)
	Delete(ctx context.Context, entryID, imageID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Reactions
// ---------------------------------------------------------------------------

// Reactions batches GetSummary and GetUsers.
type Reactions struct {
	ReactionRepo
	summary *dataloader.Loader[uuid.UUID, []domain.ReactionCount]
	users   *dataloader.Loader[uuid.UUID, []domain.ReactionUser]
}

func NewReactions(repo ReactionRepo, opts ...Option) *Reactions {
	s := buildSettings(opts)
	return &Reactions{
		ReactionRepo: repo,
		summary:      newLoader(s, newSummaryBatchFn(repo, s.timeout)),
		users:        newLoader(s, newUsersBatchFn(repo, s.timeout)),
	}
}

func (r *Reactions) GetSummary(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionCount, error) {
	return load(ctx, r.summary, entryID)
}

func (r *Reactions) GetUsers(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionUser, error) {
	return load(ctx, r.users, entryID)
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

// Comments batches ListByEntry.
type Comments struct {
	CommentRepo
	list *dataloader.Loader[uuid.UUID, []domain.Comment]
}

func NewComments(repo CommentRepo, opts ...Option) *Comments {
	s := buildSettings(opts)
	return &Comments{CommentRepo: repo, list: newLoader(s, newCommentsBatchFn(repo, s.timeout))}
}

func (c *Comments) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error) {
	return load(ctx, c.list, entryID)
}

// ---------------------------------------------------------------------------
// Images
// ---------------------------------------------------------------------------

// Images batches ListByEntry.
type Images struct {
	ImageRepo
	list *dataloader.Loader[uuid.UUID, []domain.EntryImage]
}

func NewImages(repo ImageRepo, opts ...Option) *Images {
	s := buildSettings(opts)
	return &Images{ImageRepo: repo, list: newLoader(s, newImagesBatchFn(repo, s.timeout))}
}

func (i *Images) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error) {
	return load(ctx, i.list, entryID)
}

// load resolves one key. A caller whose own context ended gets that error,
// whatever the shared batch returned.
func load[V any](ctx context.Context, l *dataloader.Loader[uuid.UUID, V], key uuid.UUID) (V, error) {
	v, err := l.Load(ctx, key)()
	if ctxErr := ctx.Err(); ctxErr != nil {
		var zero V
		return zero, ctxErr
	}
	return v, err
}

// newLoader creates a loader with standard batch parameters. Loaders live
// as long as their session, so results are never cached: every Load goes
// to the database.
func newLoader[V any](s settings, batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](s.wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
		dataloader.WithCache[uuid.UUID, V](&dataloader.NoCache[uuid.UUID, V]{}),
	)
}
