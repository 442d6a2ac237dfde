package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/service/calendar"
	"github.com/heartmarshall/himalink/internal/service/chatsync"
	"github.com/heartmarshall/himalink/internal/service/entrysync"
	"github.com/heartmarshall/himalink/internal/session"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type entrySync interface {
	calendar.SocialView
	Projection(entryID, viewerID uuid.UUID) (entrysync.Projection, bool)
	Projections(entryIDs []uuid.UUID, viewerID uuid.UUID) []entrysync.Projection
	ToggleReaction(ctx context.Context, entryID uuid.UUID, kind domain.ReactionKind, userID uuid.UUID) error
	SubmitComment(ctx context.Context, entryID uuid.UUID, text string, userID uuid.UUID) error
	UploadImage(ctx context.Context, entryID uuid.UUID, file entrysync.ImageUpload) error
	DeleteImage(ctx context.Context, entryID, imageID uuid.UUID, imageURL string) error
}

type chatSync interface {
	LoadPeers(ctx context.Context) ([]domain.Peer, error)
	Conversations() []chatsync.Conversation
	Conversation(peerID uuid.UUID) (chatsync.Conversation, bool)
	OpenConversation(ctx context.Context, peerID uuid.UUID) error
	CloseConversation()
	SendMessage(ctx context.Context, peerID uuid.UUID, text string) error
}

type visitedStore interface {
	Get() []uuid.UUID
	Add(ctx context.Context, id uuid.UUID) error
}

// sessionProvider resolves the per-user synchronizers of a caller.
type sessionProvider interface {
	Entries(ctx context.Context, userID uuid.UUID) (entrySync, error)
	Chat(ctx context.Context, userID uuid.UUID) (chatSync, error)
	Visited(ctx context.Context, userID uuid.UUID) (visitedStore, error)
}

type sessionGetter interface {
	Get(ctx context.Context, userID uuid.UUID) (*session.Session, error)
}

// Sessions adapts a session registry to the handlers.
func Sessions(reg sessionGetter) sessionProvider {
	return registrySessions{reg: reg}
}

type registrySessions struct {
	reg sessionGetter
}

func (s registrySessions) Entries(ctx context.Context, userID uuid.UUID) (entrySync, error) {
	sess, err := s.reg.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sess.Entries, nil
}

func (s registrySessions) Chat(ctx context.Context, userID uuid.UUID) (chatSync, error) {
	sess, err := s.reg.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sess.Chat, nil
}

func (s registrySessions) Visited(ctx context.Context, userID uuid.UUID) (visitedStore, error) {
	sess, err := s.reg.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sess.Visited, nil
}
