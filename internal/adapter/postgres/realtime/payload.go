package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
)

// chatMessageRow mirrors row_to_json(chat_messages).
type chatMessageRow struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	MessageText string    `json:"message_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// commentRow mirrors row_to_json(entry_comments).
type commentRow struct {
	ID          uuid.UUID `json:"id"`
	EntryID     uuid.UUID `json:"entry_id"`
	UserID      uuid.UUID `json:"user_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// DecodeChatMessage parses a chat_messages insert payload.
func DecodeChatMessage(payload []byte) (domain.ChatMessage, error) {
	var row chatMessageRow
	if err := json.Unmarshal(payload, &row); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("decode chat message: %w", err)
	}
	if row.ID == uuid.Nil || row.SenderID == uuid.Nil || row.RecipientID == uuid.Nil {
		return domain.ChatMessage{}, fmt.Errorf("decode chat message: %w", domain.NewValidationError("payload", "missing ids"))
	}
	return domain.ChatMessage{
		ID:          row.ID,
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Text:        row.MessageText,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// DecodeComment parses an entry_comments insert payload. Profile fields
// are not part of the row and stay nil.
func DecodeComment(payload []byte) (domain.Comment, error) {
	var row commentRow
	if err := json.Unmarshal(payload, &row); err != nil {
		return domain.Comment{}, fmt.Errorf("decode comment: %w", err)
	}
	if row.ID == uuid.Nil || row.EntryID == uuid.Nil {
		return domain.Comment{}, fmt.Errorf("decode comment: %w", domain.NewValidationError("payload", "missing ids"))
	}
	return domain.Comment{
		ID:        row.ID,
		EntryID:   row.EntryID,
		UserID:    row.UserID,
		Text:      row.CommentText,
		CreatedAt: row.CreatedAt,
	}, nil
}
