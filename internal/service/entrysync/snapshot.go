package entrysync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/himalink/internal/domain"
)

// ---------------------------------------------------------------------------
// LoadSnapshot
// ---------------------------------------------------------------------------

// LoadSnapshot fetches reactions and comments for every entry in entryIDs
// and replaces each entry's projection as soon as its own fetches finish.
// Once every entry is done, images are loaded in the background (see Wait).
//
// A later call supersedes an earlier one: the earlier batch is cancelled and
// whatever it still returns is discarded. The caller passes the full set of
// visible entries; nothing else is discovered here.
func (s *Service) LoadSnapshot(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) (err error) {
	defer observe("load_snapshot", time.Now(), &err)

	ids := uniqueIDs(entryIDs)
	viewCtx, view := s.beginView(ctx)

	var g errgroup.Group
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}
	for _, id := range ids {
		gens := s.issue(id, slotReactions, slotComments)
		g.Go(func() error {
			return s.loadSocial(viewCtx, id, gens[0], gens[1])
		})
	}
	err = g.Wait()

	if !s.startBackground(view) {
		s.log.DebugContext(ctx, "snapshot superseded",
			slog.String("user_id", userID.String()),
			slog.Int("entries", len(ids)),
		)
		return nil
	}
	go func() {
		defer s.bg.Done()
		defer s.endView(view)
		s.loadImages(viewCtx, ids)
	}()

	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.log.DebugContext(ctx, "snapshot loaded",
		slog.String("user_id", userID.String()),
		slog.Int("entries", len(ids)),
	)
	return nil
}

// loadSocial fetches one entry's reactions and comments and commits them
// together.
func (s *Service) loadSocial(ctx context.Context, entryID uuid.UUID, reactionsGen, commentsGen uint64) error {
	var (
		summary  domain.ReactionSummary
		detail   domain.ReactionDetail
		comments []domain.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, detail, err = s.fetchReactions(gctx, entryID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.comments.ListByEntry(gctx, entryID)
		if err != nil {
			return fmt.Errorf("get comments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.ErrorContext(ctx, "load entry social state failed",
			slog.String("entry_id", entryID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("entry %s: %w", entryID, err)
	}

	s.commit(ctx, "load_snapshot", entryID,
		update{slot: slotReactions, gen: reactionsGen, set: setReactions(summary, detail)},
		update{slot: slotComments, gen: commentsGen, set: setComments(comments)},
	)
	return nil
}

// loadImages refreshes the image list of each still-tracked entry.
// Failures are logged only.
func (s *Service) loadImages(ctx context.Context, ids []uuid.UUID) {
	var g errgroup.Group
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}

	for _, id := range ids {
		gen, ok := s.issueTracked(id, slotImages)
		if !ok {
			continue
		}
		g.Go(func() error {
			images, err := s.images.ListByEntry(ctx, id)
			if err != nil {
				if ctx.Err() == nil {
					s.log.WarnContext(ctx, "load entry images failed",
						slog.String("entry_id", id.String()),
						slog.String("error", err.Error()),
					)
				}
				return nil
			}
			s.commit(ctx, "load_images", id, update{slot: slotImages, gen: gen, set: setImages(images)})
			return nil
		})
	}
	_ = g.Wait()
}

// fetchReactions reads summary and detail for one entry.
func (s *Service) fetchReactions(ctx context.Context, entryID uuid.UUID) (domain.ReactionSummary, domain.ReactionDetail, error) {
	counts, err := s.reactions.GetSummary(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("get reaction summary: %w", err)
	}
	users, err := s.reactions.GetUsers(ctx, entryID)
	if err != nil {
		return nil, nil, fmt.Errorf("get reaction users: %w", err)
	}
	return domain.NewReactionSummary(counts), domain.NewReactionDetail(users), nil
}

// ---------------------------------------------------------------------------
// View generations
// ---------------------------------------------------------------------------

// beginView supersedes the previous snapshot. The returned context outlives
// the caller's request so background image loads can finish; it is
// cancelled by the next snapshot, by Close, or by SnapshotTimeout.
func (s *Service) beginView(ctx context.Context) (context.Context, uint64) {
	base := context.WithoutCancel(ctx)

	var (
		viewCtx context.Context
		cancel  context.CancelFunc
	)
	if s.opts.SnapshotTimeout > 0 {
		viewCtx, cancel = context.WithTimeout(base, s.opts.SnapshotTimeout)
	} else {
		viewCtx, cancel = context.WithCancel(base)
	}

	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	if s.cancelView != nil {
		s.cancelView()
	}
	s.view++
	s.cancelView = cancel
	return viewCtx, s.view
}

// startBackground registers background work for view. It refuses when the
// view was superseded or the service is closed.
func (s *Service) startBackground(view uint64) bool {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	if s.closed || s.view != view {
		return false
	}
	s.bg.Add(1)
	return true
}

// endView releases the context of a finished view if nothing replaced it.
func (s *Service) endView(view uint64) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()

	if s.view == view && s.cancelView != nil {
		s.cancelView()
		s.cancelView = nil
	}
}

func (s *Service) issueTracked(entryID uuid.UUID, sl slot) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.entries[entryID]
	if !ok {
		return 0, false
	}
	st.gens[sl]++
	return st.gens[sl], true
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// isCanceled reports whether err comes from a cancelled or expired context.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
