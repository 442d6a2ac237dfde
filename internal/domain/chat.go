package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a direct message between two users.
type ChatMessage struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Text        string
	CreatedAt   time.Time
}

// Involves reports whether userID is the sender or the recipient.
func (m *ChatMessage) Involves(userID uuid.UUID) bool {
	return m.SenderID == userID || m.RecipientID == userID
}

// PeerOf returns the other participant relative to userID.
func (m *ChatMessage) PeerOf(userID uuid.UUID) uuid.UUID {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}

// LatestMessage returns the message with the greatest CreatedAt.
// The first maximum wins. Returns nil for an empty slice.
func LatestMessage(msgs []ChatMessage) *ChatMessage {
	var latest *ChatMessage
	for i := range msgs {
		if latest == nil || msgs[i].CreatedAt.After(latest.CreatedAt) {
			latest = &msgs[i]
		}
	}
	return latest
}
