// Package visited keeps the list of profiles a user opened most recently.
package visited

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
)

// DefaultLimit caps the list when New is given a non-positive limit.
const DefaultLimit = 20

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store holds one user's visited list in memory and writes every change
// through to the key-value backend.
type Store struct {
	log    *slog.Logger
	kv     kvStore
	key    string
	limit  int
	mu     sync.RWMutex
	ids    []uuid.UUID
}

// New creates a store for userID. Call Init before Get.
func New(logger *slog.Logger, kv kvStore, userID uuid.UUID, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		log:   logger.With("service", "visited", "user_id", userID.String()),
		kv:    kv,
		key:   "visited:" + userID.String(),
		limit: limit,
	}
}

// Init loads the persisted list. A missing key yields an empty list.
func (s *Store) Init(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, domain.ErrNotFound) {
		s.replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("visited: load: %w", err)
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		// Corrupt values reset the list.
		s.log.WarnContext(ctx, "visited list unreadable", slog.String("error", err.Error()))
		ids = nil
	}
	s.replace(ids)
	return nil
}

// Get returns a copy of the list, most recent first.
func (s *Store) Get() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uuid.UUID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Set replaces the list. Duplicates keep their first position.
func (s *Store) Set(ctx context.Context, ids []uuid.UUID) error {
	s.replace(ids)
	return s.persist(ctx)
}

// Add moves id to the front of the list.
func (s *Store) Add(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	next := make([]uuid.UUID, 0, len(s.ids)+1)
	next = append(next, id)
	for _, v := range s.ids {
		if v != id {
			next = append(next, v)
		}
	}
	s.ids = s.capped(next)
	s.mu.Unlock()

	return s.persist(ctx)
}

func (s *Store) replace(ids []uuid.UUID) {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	next := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}

	s.mu.Lock()
	s.ids = s.capped(next)
	s.mu.Unlock()
}

func (s *Store) capped(ids []uuid.UUID) []uuid.UUID {
	if len(ids) > s.limit {
		return slices.Clip(ids[:s.limit])
	}
	return ids
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.Get())
	if err != nil {
		return fmt.Errorf("visited: encode: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("visited: save: %w", err)
	}
	return nil
}
