package domain

import (
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/google/uuid"
)

// ReactionKind is one of the supported emoji reactions.
type ReactionKind string

// ReactionKindsVersion is bumped whenever the supported list changes.
// Stored rows with kinds outside the current list are ignored on read.
const ReactionKindsVersion = 1

const (
	ReactionThumbsUp ReactionKind = "👍"
	ReactionHeart    ReactionKind = "❤\ufe0f"
	ReactionLaugh    ReactionKind = "😂"
	ReactionWow      ReactionKind = "😮"
	ReactionSad      ReactionKind = "😢"
	ReactionParty    ReactionKind = "🎉"
)

// ReactionKinds returns the supported kinds in display order.
func ReactionKinds() []ReactionKind {
	return []ReactionKind{
		ReactionThumbsUp, ReactionHeart, ReactionLaugh,
		ReactionWow, ReactionSad, ReactionParty,
	}
}

func (k ReactionKind) String() string { return string(k) }

func (k ReactionKind) IsValid() bool {
	switch k {
	case ReactionThumbsUp, ReactionHeart, ReactionLaugh, ReactionWow, ReactionSad, ReactionParty:
		return true
	}
	return false
}

const (
	msgNotSingleEmoji   = "must be a single emoji"
	msgUnsupportedEmoji = "unsupported reaction"
)

// ParseReactionKind converts raw user input into a ReactionKind. The input
// must be exactly one emoji; skin-tone modifiers and the variation selector
// (U+FE0F) are dropped before it is matched against the supported list.
func ParseReactionKind(raw string) (ReactionKind, error) {
	s := strings.TrimSpace(raw)
	if k, ok := matchReactionKind(s); ok {
		return k, nil
	}

	found := gomoji.CollectAll(s)
	if len(found) != 1 || found[0].Character != s {
		return "", NewValidationError("kind", msgNotSingleEmoji)
	}
	if k, ok := matchReactionKind(baseEmoji(found[0].Character)); ok {
		return k, nil
	}
	return "", NewValidationError("kind", msgUnsupportedEmoji+" "+s)
}

func matchReactionKind(s string) (ReactionKind, bool) {
	if k := ReactionKind(s); k.IsValid() {
		return k, true
	}
	if k := ReactionKind(s + "\ufe0f"); k.IsValid() {
		return k, true
	}
	return "", false
}

// baseEmoji strips skin-tone modifiers and variation selectors.
func baseEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\ufe0f' || (r >= 0x1F3FB && r <= 0x1F3FF) {
			return -1
		}
		return r
	}, s)
}

// ReactionRecord is a single user's reaction to an entry. At most one
// record exists per (entry, user, kind).
type ReactionRecord struct {
	EntryID uuid.UUID
	UserID  uuid.UUID
	Kind    ReactionKind
}

// ReactionCount is one row of an entry's aggregated reactions.
type ReactionCount struct {
	Kind  ReactionKind
	Count int
}

// ReactionUser attributes a reaction to a user.
type ReactionUser struct {
	Kind      ReactionKind
	UserID    uuid.UUID
	Username  string
	AvatarURL *string
}

// ReactionSummary maps a kind to the number of users who reacted with it.
type ReactionSummary map[ReactionKind]int

// ReactionDetail lists, per kind, the users who reacted in gateway order.
type ReactionDetail map[ReactionKind][]ReactionUser

// NewReactionSummary builds a summary from aggregated rows. Unknown kinds
// and non-positive counts are dropped.
func NewReactionSummary(rows []ReactionCount) ReactionSummary {
	s := make(ReactionSummary, len(rows))
	for _, r := range rows {
		if !r.Kind.IsValid() || r.Count <= 0 {
			continue
		}
		s[r.Kind] += r.Count
	}
	return s
}

// NewReactionDetail groups attributed reactions by kind, keeping order.
func NewReactionDetail(users []ReactionUser) ReactionDetail {
	d := make(ReactionDetail)
	for _, u := range users {
		if !u.Kind.IsValid() {
			continue
		}
		d[u.Kind] = append(d[u.Kind], u)
	}
	return d
}

// Clone returns an independent copy of the summary.
func (s ReactionSummary) Clone() ReactionSummary {
	out := make(ReactionSummary, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the detail.
func (d ReactionDetail) Clone() ReactionDetail {
	out := make(ReactionDetail, len(d))
	for k, users := range d {
		out[k] = append([]ReactionUser(nil), users...)
	}
	return out
}

// KindsBy returns the kinds the given user reacted with, in display order.
func (d ReactionDetail) KindsBy(userID uuid.UUID) []ReactionKind {
	var kinds []ReactionKind
	for _, k := range ReactionKinds() {
		for _, u := range d[k] {
			if u.UserID == userID {
				kinds = append(kinds, k)
				break
			}
		}
	}
	return kinds
}

// Consistent reports whether every kind has as many attributed users as
// its summary count.
func (d ReactionDetail) Consistent(s ReactionSummary) bool {
	for _, k := range ReactionKinds() {
		if s[k] != len(d[k]) {
			return false
		}
	}
	return true
}
