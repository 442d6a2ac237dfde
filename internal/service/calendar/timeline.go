package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/entry"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Timeline lists the entries of userID and of the users they follow that
// overlap the window, then points view at exactly those entries: it loads
// their social snapshot and forgets the rest.
func (s *Service) Timeline(ctx context.Context, userID uuid.UUID, in TimelineInput, view SocialView) ([]domain.Entry, error) {
	if err := in.Validate(s.cfg.MaxRange); err != nil {
		return nil, err
	}

	following, err := s.follows.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	entries, err := s.entries.ListInRange(ctx, entry.RangeFilter{
		OwnerIDs: append([]uuid.UUID{userID}, following...),
		From:     in.From,
		To:       in.To,
		Limit:    s.cfg.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	if view == nil {
		return entries, nil
	}

	ids := make([]uuid.UUID, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}

	dropped := view.Retain(ids)
	if err := view.LoadSnapshot(ctx, userID, ids); err != nil {
		// Entries are still useful without their social state.
		s.log.WarnContext(ctx, "timeline snapshot incomplete", slog.String("error", err.Error()))
	}

	s.log.DebugContext(ctx, "timeline loaded",
		slog.String("user_id", userID.String()),
		slog.Int("entries", len(entries)),
		slog.Int("dropped", len(dropped)),
	)
	return entries, nil
}
