// Package entrysync keeps the social projection (reactions, comments and
// images) of the entries a user currently sees in step with the gateway.
//
// The projection is never updated optimistically: every mutation is
// followed by a re-fetch of the affected slot. Each slot of each entry
// carries a request generation so a late response from an older sequence
// cannot overwrite a newer one.
package entrysync

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type reactionRepo interface {
	GetSummary(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionCount, error)
	GetUsers(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionUser, error)
	GetUserReaction(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) ([]domain.ReactionRecord, error)
	Add(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) error
	Delete(ctx context.Context, entryID, userID uuid.UUID, kind domain.ReactionKind) error
}

type commentRepo interface {
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.Comment, error)
	Add(ctx context.Context, entryID, userID uuid.UUID, text string) (uuid.UUID, error)
}

type imageRepo interface {
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error)
	Add(ctx context.Context, entryID uuid.UUID, url string, caption *string) (*domain.EntryImage, error)
	Delete(ctx context.Context, entryID, imageID uuid.UUID) error
}

type blobStore interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Options tunes a Service.
type Options struct {
	// SnapshotTimeout bounds a whole LoadSnapshot batch, image loads
	// included. Zero means no bound.
	SnapshotTimeout time.Duration
	// Concurrency caps the entries fetched at once by LoadSnapshot.
	// Zero or negative means unlimited.
	Concurrency int
}

// Service is the synchronizer for one user session.
type Service struct {
	log       *slog.Logger
	reactions reactionRepo
	comments  commentRepo
	images    imageRepo
	blobs     blobStore
	opts      Options
	now       func() time.Time

	mu      sync.RWMutex
	entries map[uuid.UUID]*entryState

	viewMu     sync.Mutex
	view       uint64
	cancelView context.CancelFunc
	closed     bool

	// bg.Add happens under viewMu and only while !closed.
	bg sync.WaitGroup
}

// NewService creates a synchronizer with an empty projection.
func NewService(
	logger *slog.Logger,
	reactions reactionRepo,
	comments commentRepo,
	images imageRepo,
	blobs blobStore,
	opts Options,
) *Service {
	return &Service{
		log:       logger.With("service", "entrysync"),
		reactions: reactions,
		comments:  comments,
		images:    images,
		blobs:     blobs,
		opts:      opts,
		now:       time.Now,
		entries:   make(map[uuid.UUID]*entryState),
	}
}

// Wait blocks until the background image loads started by LoadSnapshot
// have finished.
func (s *Service) Wait() {
	s.bg.Wait()
}

// Close cancels any in-flight snapshot and waits for background work.
// Snapshots finishing after Close start no background loads.
func (s *Service) Close() {
	s.viewMu.Lock()
	s.closed = true
	if s.cancelView != nil {
		s.cancelView()
		s.cancelView = nil
	}
	s.view++
	s.viewMu.Unlock()

	s.bg.Wait()
}

// ---------------------------------------------------------------------------
// Per-entry state and generations
// ---------------------------------------------------------------------------

type slot int

const (
	slotReactions slot = iota
	slotComments
	slotImages
	slotCount
)

func (sl slot) String() string {
	switch sl {
	case slotReactions:
		return "reactions"
	case slotComments:
		return "comments"
	case slotImages:
		return "images"
	default:
		return "unknown"
	}
}

type entryState struct {
	gens     [slotCount]uint64
	loaded   [slotCount]bool
	summary  domain.ReactionSummary
	detail   domain.ReactionDetail
	comments []domain.Comment
	images   []domain.EntryImage
}

// issue starts a new request sequence for the given slots of an entry and
// returns the generation assigned to each, in the same order.
func (s *Service) issue(entryID uuid.UUID, slots ...slot) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.entries[entryID]
	if !ok {
		st = &entryState{
			summary: domain.ReactionSummary{},
			detail:  domain.ReactionDetail{},
		}
		s.entries[entryID] = st
	}

	gens := make([]uint64, len(slots))
	for i, sl := range slots {
		st.gens[sl]++
		gens[i] = st.gens[sl]
	}
	return gens
}

// update replaces one slot if its generation is still the latest issued.
type update struct {
	slot slot
	gen  uint64
	set  func(st *entryState)
}

// commit applies all fresh updates for an entry under one lock, so readers
// observe either none or all of them. Stale updates are dropped. It reports
// whether every update was applied.
func (s *Service) commit(ctx context.Context, op string, entryID uuid.UUID, updates ...update) bool {
	s.mu.Lock()
	st, ok := s.entries[entryID]
	applied := 0
	if ok {
		for _, u := range updates {
			if st.gens[u.slot] != u.gen {
				continue
			}
			u.set(st)
			st.loaded[u.slot] = true
			applied++
		}
	}
	s.mu.Unlock()

	if applied == len(updates) {
		return true
	}

	for range len(updates) - applied {
		metrics.IncStale("entrysync")
	}
	s.log.DebugContext(ctx, "stale response discarded",
		slog.String("op", op),
		slog.String("entry_id", entryID.String()),
		slog.Int("applied", applied),
		slog.Int("updates", len(updates)),
	)
	return false
}

// ready reports whether reactions and comments have been fetched at least
// once. Images load in the background and are not required.
func (st *entryState) ready() bool {
	return st.loaded[slotReactions] && st.loaded[slotComments]
}

// Tracks reports whether entryID is part of the projection, loaded or not.
func (s *Service) Tracks(entryID uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[entryID]
	return ok
}

func setReactions(summary domain.ReactionSummary, detail domain.ReactionDetail) func(*entryState) {
	return func(st *entryState) {
		st.summary = summary
		st.detail = detail
	}
}

func setComments(comments []domain.Comment) func(*entryState) {
	return func(st *entryState) { st.comments = comments }
}

func setImages(images []domain.EntryImage) func(*entryState) {
	return func(st *entryState) { st.images = images }
}

// observe records a gateway sequence for the metrics endpoint.
func observe(op string, start time.Time, err *error) {
	metrics.ObserveGatewayCall(op, start, *err)
}
