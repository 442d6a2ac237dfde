package entrysync

import (
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
)

// Projection is a render-ready copy of one entry's social state.
type Projection struct {
	EntryID     uuid.UUID
	Summary     domain.ReactionSummary
	Detail      domain.ReactionDetail
	MyReactions []domain.ReactionKind
	Comments    []domain.Comment
	Images      []domain.EntryImage
}

// Projection returns a copy of the entry's state as seen by viewerID. It
// reports false until the entry's reactions and comments have been fetched.
// MyReactions is derived from the detail, never stored separately.
func (s *Service) Projection(entryID, viewerID uuid.UUID) (Projection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.entries[entryID]
	if !ok || !st.ready() {
		return Projection{}, false
	}
	return st.project(entryID, viewerID), true
}

// Projections returns copies for the loaded entries among entryIDs, in
// the given order.
func (s *Service) Projections(entryIDs []uuid.UUID, viewerID uuid.UUID) []Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Projection, 0, len(entryIDs))
	for _, id := range entryIDs {
		if st, ok := s.entries[id]; ok && st.ready() {
			out = append(out, st.project(id, viewerID))
		}
	}
	return out
}

// Forget drops entries that are no longer visible. Responses still in
// flight for them are discarded on arrival.
func (s *Service) Forget(entryIDs []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range entryIDs {
		delete(s.entries, id)
	}
}

// Retain forgets every tracked entry not in keep and returns the ids it
// dropped.
func (s *Service) Retain(keep []uuid.UUID) []uuid.UUID {
	set := make(map[uuid.UUID]struct{}, len(keep))
	for _, id := range keep {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var dropped []uuid.UUID
	for id := range s.entries {
		if _, ok := set[id]; !ok {
			delete(s.entries, id)
			dropped = append(dropped, id)
		}
	}
	return dropped
}

func (st *entryState) project(entryID, viewerID uuid.UUID) Projection {
	return Projection{
		EntryID:     entryID,
		Summary:     st.summary.Clone(),
		Detail:      st.detail.Clone(),
		MyReactions: nonNil(st.detail.KindsBy(viewerID)),
		Comments:    nonNil(slices.Clone(st.comments)),
		Images:      nonNil(slices.Clone(st.images)),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
