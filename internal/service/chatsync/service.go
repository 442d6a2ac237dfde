// Package chatsync keeps one user's direct-message conversations in step
// with the gateway. Messages are never appended locally on send; they
// arrive through the chat_messages insert stream or a reload.
package chatsync

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/realtime"
	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type chatRepo interface {
	ListConversation(ctx context.Context, userID, peerID uuid.UUID) ([]domain.ChatMessage, error)
	Add(ctx context.Context, senderID, recipientID uuid.UUID, text string) (*domain.ChatMessage, error)
}

type followRepo interface {
	ListFollowing(ctx context.Context, followerID uuid.UUID) ([]domain.Peer, error)
}

type subscriber interface {
	Subscribe(rel domain.Relation, h realtime.Handler) (*realtime.Subscription, error)
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Conversation is a copy of the state held for one peer.
type Conversation struct {
	Peer     domain.Peer
	Messages []domain.ChatMessage
	Preview  string
	Loaded   bool
}

type conversation struct {
	peer     domain.Peer
	messages []domain.ChatMessage
	preview  string
	loaded   bool

	gen uint64
	// pushed holds messages appended by the insert stream together with
	// the generation current at the time, until a reload covers them.
	pushed []pushedMessage
}

type pushedMessage struct {
	msg domain.ChatMessage
	gen uint64
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the chat synchronizer for one user.
type Service struct {
	log     *slog.Logger
	userID  uuid.UUID
	chats   chatRepo
	follows followRepo
	sub     subscriber

	mu    sync.RWMutex
	peers []uuid.UUID
	convs map[uuid.UUID]*conversation
	open  uuid.UUID

	subMu        sync.Mutex
	subscription *realtime.Subscription
}

// NewService creates a chat synchronizer for userID.
func NewService(logger *slog.Logger, userID uuid.UUID, chats chatRepo, follows followRepo, sub subscriber) *Service {
	return &Service{
		log:     logger.With("service", "chatsync", "user_id", userID.String()),
		userID:  userID,
		chats:   chats,
		follows: follows,
		sub:     sub,
		convs:   make(map[uuid.UUID]*conversation),
	}
}

// UserID returns the user this synchronizer serves.
func (s *Service) UserID() uuid.UUID { return s.userID }

// Start subscribes to chat message inserts. Calling Start twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.subscription != nil {
		return nil
	}
	sub, err := s.sub.Subscribe(domain.RelationChatMessages, s.onInsert)
	if err != nil {
		return err
	}
	s.subscription = sub
	s.log.DebugContext(ctx, "chat subscription started")
	return nil
}

// Close ends the subscription.
func (s *Service) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.subscription != nil {
		s.subscription.Unsubscribe()
		s.subscription = nil
	}
}

func (s *Service) onInsert(ctx context.Context, payload []byte) {
	msg, err := realtime.DecodeChatMessage(payload)
	if err != nil {
		s.log.WarnContext(ctx, "bad chat insert payload", slog.String("error", err.Error()))
		return
	}
	s.HandleInsert(ctx, msg)
}

// ---------------------------------------------------------------------------
// Read side
// ---------------------------------------------------------------------------

// Peers returns the followed users in gateway order.
func (s *Service) Peers() []domain.Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Peer, 0, len(s.peers))
	for _, id := range s.peers {
		out = append(out, s.convs[id].peer)
	}
	return out
}

// Conversation returns a copy of one peer's state.
func (s *Service) Conversation(peerID uuid.UUID) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[peerID]
	if !ok {
		return Conversation{}, false
	}
	return c.snapshot(), true
}

// Conversations returns copies for every followed peer, in Peers order.
func (s *Service) Conversations() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Conversation, 0, len(s.peers))
	for _, id := range s.peers {
		out = append(out, s.convs[id].snapshot())
	}
	return out
}

// OpenPeer returns the peer of the open conversation, if any.
func (s *Service) OpenPeer() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open, s.open != uuid.Nil
}

func (c *conversation) snapshot() Conversation {
	msgs := slices.Clone(c.messages)
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return Conversation{
		Peer:     c.peer,
		Messages: msgs,
		Preview:  c.preview,
		Loaded:   c.loaded,
	}
}

// ensureLocked returns the conversation for peerID, creating it.
func (s *Service) ensureLocked(peerID uuid.UUID) *conversation {
	c, ok := s.convs[peerID]
	if !ok {
		c = &conversation{peer: domain.Peer{UserID: peerID}}
		s.convs[peerID] = c
	}
	return c
}

func incStale() {
	metrics.IncStale("chatsync")
}
