package entrysync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
)

// ToggleReaction removes userID's kind reaction on entryID if it exists and
// adds it otherwise, then re-reads the entry's summary and detail. The
// projection changes only when the re-read succeeds.
func (s *Service) ToggleReaction(ctx context.Context, entryID uuid.UUID, kind domain.ReactionKind, userID uuid.UUID) (err error) {
	if !kind.IsValid() {
		return domain.NewValidationError("kind", "unknown reaction kind")
	}

	const op = "toggle_reaction"
	defer observe(op, time.Now(), &err)

	gen := s.issue(entryID, slotReactions)[0]

	existing, err := s.reactions.GetUserReaction(ctx, entryID, userID, kind)
	if err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("get user reaction: %w", err))
	}

	if len(existing) > 0 {
		err = s.reactions.Delete(ctx, entryID, userID, kind)
	} else {
		err = s.reactions.Add(ctx, entryID, userID, kind)
	}
	if err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("write reaction: %w", err))
	}

	summary, detail, err := s.fetchReactions(ctx, entryID)
	if err != nil {
		return s.fail(ctx, op, entryID, err)
	}

	s.commit(ctx, op, entryID, update{slot: slotReactions, gen: gen, set: setReactions(summary, detail)})
	return nil
}
