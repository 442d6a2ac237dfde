package entrysync

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ reactionRepo = &reactionRepoMock{}

type reactionRepoMock struct {
	AddFunc             func(ctx context.Context, entryID uuid.UUID, userID uuid.UUID, kind domain.ReactionKind) error
	DeleteFunc          func(ctx context.Context, entryID uuid.UUID, userID uuid.UUID, kind domain.ReactionKind) error
	GetSummaryFunc      func(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionCount, error)
	GetUserReactionFunc func(ctx context.Context, entryID uuid.UUID, userID uuid.UUID, kind domain.ReactionKind) ([]domain.ReactionRecord, error)
	GetUsersFunc        func(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionUser, error)

	calls struct {
		Add []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			UserID  uuid.UUID
			Kind    domain.ReactionKind
		}
		Delete []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			UserID  uuid.UUID
			Kind    domain.ReactionKind
		}
		GetSummary []struct {
			Ctx     context.Context
			EntryID uuid.UUID
		}
		GetUserReaction []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			UserID  uuid.UUID
			Kind    domain.ReactionKind
		}
		GetUsers []struct {
			Ctx     context.Context
			EntryID uuid.UUID
		}
	}
	lockAdd             sync.RWMutex
	lockDelete          sync.RWMutex
	lockGetSummary      sync.RWMutex
	lockGetUserReaction sync.RWMutex
	lockGetUsers        sync.RWMutex
}

func (mock *reactionRepoMock) Add(ctx context.Context, entryID uuid.UUID, userID uuid.UUID, kind domain.ReactionKind) error {
	if mock.AddFunc == nil {
		panic("reactionRepoMock.AddFunc: method is nil but reactionRepo.Add was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		UserID  uuid.UUID
		Kind    domain.ReactionKind
	}{
		Ctx:     ctx,
		EntryID: entryID,
		UserID:  userID,
		Kind:    kind,
	}
	mock.lockAdd.Lock()
	mock.calls.Add = append(mock.calls.Add, callInfo)
	mock.lockAdd.Unlock()
	return mock.AddFunc(ctx, entryID, userID, kind)
}

func (mock *reactionRepoMock) AddCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	UserID  uuid.UUID
	Kind    domain.ReactionKind
} {
	mock.lockAdd.RLock()
	calls := mock.calls.Add
	mock.lockAdd.RUnlock()
	return calls
}

func (mock *reactionRepoMock) Delete(ctx context.Context, entryID uuid.UUID, userID uuid.UUID, kind domain.ReactionKind) error {
	if mock.DeleteFunc == nil {
		panic("reactionRepoMock.DeleteFunc: method is nil but reactionRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		UserID  uuid.UUID
		Kind    domain.ReactionKind
	}{
		Ctx:     ctx,
		EntryID: entryID,
		UserID:  userID,
		Kind:    kind,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, entryID, userID, kind)
}

func (mock *reactionRepoMock) DeleteCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	UserID  uuid.UUID
	Kind    domain.ReactionKind
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *reactionRepoMock) GetSummary(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionCount, error) {
	if mock.GetSummaryFunc == nil {
		panic("reactionRepoMock.GetSummaryFunc: method is nil but reactionRepo.GetSummary was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
	}{
		Ctx:     ctx,
		EntryID: entryID,
	}
	mock.lockGetSummary.Lock()
	mock.calls.GetSummary = append(mock.calls.GetSummary, callInfo)
	mock.lockGetSummary.Unlock()
	return mock.GetSummaryFunc(ctx, entryID)
}

func (mock *reactionRepoMock) GetSummaryCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
} {
	mock.lockGetSummary.RLock()
	calls := mock.calls.GetSummary
	mock.lockGetSummary.RUnlock()
	return calls
}

func (mock *reactionRepoMock) GetUserReaction(ctx context.Context, entryID uuid.UUID, userID uuid.UUID, kind domain.ReactionKind) ([]domain.ReactionRecord, error) {
	if mock.GetUserReactionFunc == nil {
		panic("reactionRepoMock.GetUserReactionFunc: method is nil but reactionRepo.GetUserReaction was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		UserID  uuid.UUID
		Kind    domain.ReactionKind
	}{
		Ctx:     ctx,
		EntryID: entryID,
		UserID:  userID,
		Kind:    kind,
	}
	mock.lockGetUserReaction.Lock()
	mock.calls.GetUserReaction = append(mock.calls.GetUserReaction, callInfo)
	mock.lockGetUserReaction.Unlock()
	return mock.GetUserReactionFunc(ctx, entryID, userID, kind)
}

func (mock *reactionRepoMock) GetUserReactionCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	UserID  uuid.UUID
	Kind    domain.ReactionKind
} {
	mock.lockGetUserReaction.RLock()
	calls := mock.calls.GetUserReaction
	mock.lockGetUserReaction.RUnlock()
	return calls
}

func (mock *reactionRepoMock) GetUsers(ctx context.Context, entryID uuid.UUID) ([]domain.ReactionUser, error) {
	if mock.GetUsersFunc == nil {
		panic("reactionRepoMock.GetUsersFunc: method is nil but reactionRepo.GetUsers was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
	}{
		Ctx:     ctx,
		EntryID: entryID,
	}
	mock.lockGetUsers.Lock()
	mock.calls.GetUsers = append(mock.calls.GetUsers, callInfo)
	mock.lockGetUsers.Unlock()
	return mock.GetUsersFunc(ctx, entryID)
}

func (mock *reactionRepoMock) GetUsersCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
} {
	mock.lockGetUsers.RLock()
	calls := mock.calls.GetUsers
	mock.lockGetUsers.RUnlock()
	return calls
}
