package entry

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// RangeFilter selects entries for a timeline window.
type RangeFilter struct {
	// OwnerIDs restricts entries to these owners. Empty means no entries.
	OwnerIDs []uuid.UUID

	// From and To bound the window. An entry matches when it overlaps
	// [From, To): it starts before To and ends (or starts, if open-ended)
	// at or after From. Zero values leave that side unbounded.
	From time.Time
	To   time.Time

	// Limit caps the result. Default: 500, max: 2000.
	Limit int
}

const (
	defaultLimit = 500
	maxLimit     = 2000
)

func (f *RangeFilter) normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
}

func (f *RangeFilter) where() squirrel.Sqlizer {
	conds := squirrel.And{squirrel.Eq{"e.owner_id": f.OwnerIDs}}
	if !f.To.IsZero() {
		conds = append(conds, squirrel.Lt{"e.start_time": f.To})
	}
	if !f.From.IsZero() {
		conds = append(conds, squirrel.Expr("COALESCE(e.end_time, e.start_time) >= ?", f.From))
	}
	return conds
}
