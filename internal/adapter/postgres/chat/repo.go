// Package chat implements direct messages over the gateway database.
package chat

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/himalink/internal/adapter/postgres"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Repo provides chat message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new chat repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const listConversationSQL = `
SELECT id, sender_id, recipient_id, message_text, created_at
FROM get_chat_messages($1, $2)`

const addSQL = `
SELECT id, sender_id, recipient_id, message_text, created_at
FROM add_chat_message($1, $2, $3)`

// ListConversation returns every message exchanged between userID and
// peerID, oldest first.
func (r *Repo) ListConversation(ctx context.Context, userID, peerID uuid.UUID) ([]domain.ChatMessage, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listConversationSQL, userID, peerID)
	if err != nil {
		return nil, postgres.MapError(err, "conversation", peerID)
	}

	result, err := pgx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, postgres.MapError(err, "conversation", peerID)
	}
	return result, nil
}

// Add sends a message from senderID to recipientID and returns the stored
// row.
func (r *Repo) Add(ctx context.Context, senderID, recipientID uuid.UUID, text string) (*domain.ChatMessage, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, addSQL, senderID, recipientID, text)
	if err != nil {
		return nil, postgres.MapError(err, "chat message", recipientID)
	}

	msg, err := pgx.CollectExactlyOneRow(rows, scanMessage)
	if err != nil {
		return nil, postgres.MapError(err, "chat message", recipientID)
	}
	return &msg, nil
}

func scanMessage(row pgx.CollectableRow) (domain.ChatMessage, error) {
	var m domain.ChatMessage
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Text, &m.CreatedAt)
	return m, err
}
