package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/service/chatsync"
)

var _ chatSync = &chatSyncMock{}

type chatSyncMock struct {
	CloseConversationFunc func()
	ConversationFunc      func(peerID uuid.UUID) (chatsync.Conversation, bool)
	ConversationsFunc     func() []chatsync.Conversation
	LoadPeersFunc         func(ctx context.Context) ([]domain.Peer, error)
	OpenConversationFunc  func(ctx context.Context, peerID uuid.UUID) error
	SendMessageFunc       func(ctx context.Context, peerID uuid.UUID, text string) error

	calls struct {
		CloseConversation []struct{}
		Conversation []struct {
			PeerID uuid.UUID
		}
		Conversations []struct{}
		LoadPeers []struct {
			Ctx context.Context
		}
		OpenConversation []struct {
			Ctx    context.Context
			PeerID uuid.UUID
		}
		SendMessage []struct {
			Ctx    context.Context
			PeerID uuid.UUID
			Text   string
		}
	}
	lockCloseConversation sync.RWMutex
	lockConversation      sync.RWMutex
	lockConversations     sync.RWMutex
	lockLoadPeers         sync.RWMutex
	lockOpenConversation  sync.RWMutex
	lockSendMessage       sync.RWMutex
}

func (mock *chatSyncMock) CloseConversation() {
	if mock.CloseConversationFunc == nil {
		panic("chatSyncMock.CloseConversationFunc: method is nil but chatSync.CloseConversation was just called")
	}
	mock.lockCloseConversation.Lock()
	mock.calls.CloseConversation = append(mock.calls.CloseConversation, struct{}{})
	mock.lockCloseConversation.Unlock()
	mock.CloseConversationFunc()
}

func (mock *chatSyncMock) CloseConversationCalls() []struct{} {
	mock.lockCloseConversation.RLock()
	calls := mock.calls.CloseConversation
	mock.lockCloseConversation.RUnlock()
	return calls
}

func (mock *chatSyncMock) Conversation(peerID uuid.UUID) (chatsync.Conversation, bool) {
	if mock.ConversationFunc == nil {
		panic("chatSyncMock.ConversationFunc: method is nil but chatSync.Conversation was just called")
	}
	callInfo := struct {
		PeerID uuid.UUID
	}{
		PeerID: peerID,
	}
	mock.lockConversation.Lock()
	mock.calls.Conversation = append(mock.calls.Conversation, callInfo)
	mock.lockConversation.Unlock()
	return mock.ConversationFunc(peerID)
}

func (mock *chatSyncMock) ConversationCalls() []struct {
	PeerID uuid.UUID
} {
	mock.lockConversation.RLock()
	calls := mock.calls.Conversation
	mock.lockConversation.RUnlock()
	return calls
}

func (mock *chatSyncMock) Conversations() []chatsync.Conversation {
	if mock.ConversationsFunc == nil {
		panic("chatSyncMock.ConversationsFunc: method is nil but chatSync.Conversations was just called")
	}
	mock.lockConversations.Lock()
	mock.calls.Conversations = append(mock.calls.Conversations, struct{}{})
	mock.lockConversations.Unlock()
	return mock.ConversationsFunc()
}

func (mock *chatSyncMock) ConversationsCalls() []struct{} {
	mock.lockConversations.RLock()
	calls := mock.calls.Conversations
	mock.lockConversations.RUnlock()
	return calls
}

func (mock *chatSyncMock) LoadPeers(ctx context.Context) ([]domain.Peer, error) {
	if mock.LoadPeersFunc == nil {
		panic("chatSyncMock.LoadPeersFunc: method is nil but chatSync.LoadPeers was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockLoadPeers.Lock()
	mock.calls.LoadPeers = append(mock.calls.LoadPeers, callInfo)
	mock.lockLoadPeers.Unlock()
	return mock.LoadPeersFunc(ctx)
}

func (mock *chatSyncMock) LoadPeersCalls() []struct {
	Ctx context.Context
} {
	mock.lockLoadPeers.RLock()
	calls := mock.calls.LoadPeers
	mock.lockLoadPeers.RUnlock()
	return calls
}

func (mock *chatSyncMock) OpenConversation(ctx context.Context, peerID uuid.UUID) error {
	if mock.OpenConversationFunc == nil {
		panic("chatSyncMock.OpenConversationFunc: method is nil but chatSync.OpenConversation was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PeerID uuid.UUID
	}{
		Ctx:    ctx,
		PeerID: peerID,
	}
	mock.lockOpenConversation.Lock()
	mock.calls.OpenConversation = append(mock.calls.OpenConversation, callInfo)
	mock.lockOpenConversation.Unlock()
	return mock.OpenConversationFunc(ctx, peerID)
}

func (mock *chatSyncMock) OpenConversationCalls() []struct {
	Ctx    context.Context
	PeerID uuid.UUID
} {
	mock.lockOpenConversation.RLock()
	calls := mock.calls.OpenConversation
	mock.lockOpenConversation.RUnlock()
	return calls
}

func (mock *chatSyncMock) SendMessage(ctx context.Context, peerID uuid.UUID, text string) error {
	if mock.SendMessageFunc == nil {
		panic("chatSyncMock.SendMessageFunc: method is nil but chatSync.SendMessage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PeerID uuid.UUID
		Text   string
	}{
		Ctx:    ctx,
		PeerID: peerID,
		Text:   text,
	}
	mock.lockSendMessage.Lock()
	mock.calls.SendMessage = append(mock.calls.SendMessage, callInfo)
	mock.lockSendMessage.Unlock()
	return mock.SendMessageFunc(ctx, peerID, text)
}

func (mock *chatSyncMock) SendMessageCalls() []struct {
	Ctx    context.Context
	PeerID uuid.UUID
	Text   string
} {
	mock.lockSendMessage.RLock()
	calls := mock.calls.SendMessage
	mock.lockSendMessage.RUnlock()
	return calls
}
