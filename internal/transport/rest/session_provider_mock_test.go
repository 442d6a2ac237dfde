package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ sessionProvider = &sessionProviderMock{}

type sessionProviderMock struct {
	ChatFunc    func(ctx context.Context, userID uuid.UUID) (chatSync, error)
	EntriesFunc func(ctx context.Context, userID uuid.UUID) (entrySync, error)
	VisitedFunc func(ctx context.Context, userID uuid.UUID) (visitedStore, error)

	calls struct {
		Chat []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Entries []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Visited []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockChat    sync.RWMutex
	lockEntries sync.RWMutex
	lockVisited sync.RWMutex
}

func (mock *sessionProviderMock) Chat(ctx context.Context, userID uuid.UUID) (chatSync, error) {
	if mock.ChatFunc == nil {
		panic("sessionProviderMock.ChatFunc: method is nil but sessionProvider.Chat was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockChat.Lock()
	mock.calls.Chat = append(mock.calls.Chat, callInfo)
	mock.lockChat.Unlock()
	return mock.ChatFunc(ctx, userID)
}

func (mock *sessionProviderMock) ChatCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockChat.RLock()
	calls := mock.calls.Chat
	mock.lockChat.RUnlock()
	return calls
}

func (mock *sessionProviderMock) Entries(ctx context.Context, userID uuid.UUID) (entrySync, error) {
	if mock.EntriesFunc == nil {
		panic("sessionProviderMock.EntriesFunc: method is nil but sessionProvider.Entries was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockEntries.Lock()
	mock.calls.Entries = append(mock.calls.Entries, callInfo)
	mock.lockEntries.Unlock()
	return mock.EntriesFunc(ctx, userID)
}

func (mock *sessionProviderMock) EntriesCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockEntries.RLock()
	calls := mock.calls.Entries
	mock.lockEntries.RUnlock()
	return calls
}

func (mock *sessionProviderMock) Visited(ctx context.Context, userID uuid.UUID) (visitedStore, error) {
	if mock.VisitedFunc == nil {
		panic("sessionProviderMock.VisitedFunc: method is nil but sessionProvider.Visited was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockVisited.Lock()
	mock.calls.Visited = append(mock.calls.Visited, callInfo)
	mock.lockVisited.Unlock()
	return mock.VisitedFunc(ctx, userID)
}

func (mock *sessionProviderMock) VisitedCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockVisited.RLock()
	calls := mock.calls.Visited
	mock.lockVisited.RUnlock()
	return calls
}
