package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public part of a user account.
type Profile struct {
	ID        uuid.UUID
	Username  string
	AvatarURL *string
	CreatedAt time.Time
}

// Peer is a followed user seen as a chat partner.
type Peer struct {
	UserID    uuid.UUID
	Username  string
	AvatarURL *string
}
