package entrysync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
)

// SubmitComment adds a comment and re-reads the entry's comment list.
// Blank text is rejected without touching the gateway.
func (s *Service) SubmitComment(ctx context.Context, entryID uuid.UUID, text string, userID uuid.UUID) (err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NewValidationError("text", "required")
	}

	const op = "submit_comment"
	defer observe(op, time.Now(), &err)

	gen := s.issue(entryID, slotComments)[0]

	if _, err = s.comments.Add(ctx, entryID, userID, text); err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("add comment: %w", err))
	}

	comments, err := s.comments.ListByEntry(ctx, entryID)
	if err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("get comments: %w", err))
	}

	s.commit(ctx, op, entryID, update{slot: slotComments, gen: gen, set: setComments(comments)})
	return nil
}

// RefreshComments re-reads the comment list of a tracked entry. Untracked
// entries are ignored.
func (s *Service) RefreshComments(ctx context.Context, entryID uuid.UUID) (err error) {
	gen, ok := s.issueTracked(entryID, slotComments)
	if !ok {
		return nil
	}

	const op = "refresh_comments"
	defer observe(op, time.Now(), &err)

	comments, err := s.comments.ListByEntry(ctx, entryID)
	if err != nil {
		return s.fail(ctx, op, entryID, fmt.Errorf("get comments: %w", err))
	}

	s.commit(ctx, op, entryID, update{slot: slotComments, gen: gen, set: setComments(comments)})
	return nil
}

// fail logs a failed sequence and hands the error back to the caller.
func (s *Service) fail(ctx context.Context, op string, entryID uuid.UUID, err error) error {
	level := slog.LevelError
	if isCanceled(err) {
		level = slog.LevelDebug
	}
	s.log.Log(ctx, level, op+" failed",
		slog.String("entry_id", entryID.String()),
		slog.String("error", err.Error()),
	)
	return err
}
