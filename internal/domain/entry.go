package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is a time-bound calendar item owned by a single user.
type Entry struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Content   *string
	EntryType EntryType
	StartTime time.Time
	EndTime   *time.Time
	IsAllDay  bool
	Location  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized owner profile, filled by detail reads only.
	OwnerUsername  *string
	OwnerAvatarURL *string
}

// MaxEntryTitleLength bounds Entry.Title in runes.
const MaxEntryTitleLength = 200

// Validate checks the entry fields a client can set.
func (e *Entry) Validate() error {
	var errs []FieldError

	title := strings.TrimSpace(e.Title)
	switch {
	case title == "":
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	case len([]rune(title)) > MaxEntryTitleLength:
		errs = append(errs, FieldError{Field: "title", Message: "too long"})
	}
	if !e.EntryType.IsValid() {
		errs = append(errs, FieldError{Field: "entry_type", Message: "invalid value"})
	}
	if e.StartTime.IsZero() {
		errs = append(errs, FieldError{Field: "start_time", Message: "required"})
	}
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		errs = append(errs, FieldError{Field: "end_time", Message: "must not be before start_time"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// IsOwnedBy reports whether userID owns the entry.
func (e *Entry) IsOwnedBy(userID uuid.UUID) bool {
	return e.OwnerID == userID
}

// Comment is a text comment on an entry.
type Comment struct {
	ID        uuid.UUID
	EntryID   uuid.UUID
	UserID    uuid.UUID
	Username  *string
	AvatarURL *string
	Text      string
	CreatedAt time.Time
}

// EntryImage is an image attached to an entry. ImageURL is the public URL
// of the blob in storage.
type EntryImage struct {
	ID        uuid.UUID
	EntryID   uuid.UUID
	ImageURL  string
	Caption   *string
	CreatedAt time.Time
}
