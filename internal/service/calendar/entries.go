package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/adapter/blob"
	"github.com/heartmarshall/himalink/internal/domain"
)

// CreateEntry validates and stores a new entry owned by userID.
func (s *Service) CreateEntry(ctx context.Context, userID uuid.UUID, in CreateEntryInput) (*domain.Entry, error) {
	e := in.toEntry()
	e.OwnerID = userID
	e.Title = strings.TrimSpace(e.Title)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	created, err := s.entries.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("entry_id", created.ID.String()),
		slog.String("user_id", userID.String()),
	)
	return created, nil
}

// UpdateEntry applies a partial update. Only the owner may edit.
func (s *Service) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, in UpdateEntryInput) (*domain.Entry, error) {
	e, err := s.owned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	in.apply(e)
	e.Title = strings.TrimSpace(e.Title)
	if err := e.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.entries.Update(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return updated, nil
}

// DeleteEntry removes an entry and, after the rows are gone, its image
// objects. Object removal is best effort.
func (s *Service) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, entryID); err != nil {
		return err
	}

	var images []domain.EntryImage
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		images, err = s.images.ListByEntry(txCtx, entryID)
		if err != nil {
			return fmt.Errorf("list images: %w", err)
		}
		if err := s.entries.Delete(txCtx, userID, entryID); err != nil {
			return fmt.Errorf("delete entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, img := range images {
		path, err := blob.StoragePathFromURL(img.ImageURL)
		if err != nil {
			s.log.WarnContext(ctx, "image url has no storage path",
				slog.String("entry_id", entryID.String()),
				slog.String("url", img.ImageURL),
			)
			continue
		}
		if err := s.blobs.Remove(ctx, path); err != nil {
			s.log.WarnContext(ctx, "image object not removed",
				slog.String("entry_id", entryID.String()),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	s.log.InfoContext(ctx, "entry deleted",
		slog.String("entry_id", entryID.String()),
		slog.Int("images", len(images)),
	)
	return nil
}

// Entry returns an entry's details if viewerID may see it.
func (s *Service) Entry(ctx context.Context, viewerID, entryID uuid.UUID) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	ok, err := s.Visible(ctx, viewerID, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrForbidden)
	}
	return e, nil
}

// CanSee loads an entry and reports whether viewerID may see it.
func (s *Service) CanSee(ctx context.Context, viewerID, entryID uuid.UUID) error {
	_, err := s.Entry(ctx, viewerID, entryID)
	return err
}

// Visible reports whether viewerID owns e or follows its owner.
func (s *Service) Visible(ctx context.Context, viewerID uuid.UUID, e *domain.Entry) (bool, error) {
	if e.IsOwnedBy(viewerID) {
		return true, nil
	}
	ok, err := s.follows.IsFollowing(ctx, viewerID, e.OwnerID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return ok, nil
}

func (s *Service) owned(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !e.IsOwnedBy(userID) {
		return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrForbidden)
	}
	return e, nil
}
