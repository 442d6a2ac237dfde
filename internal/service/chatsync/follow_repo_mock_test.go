package chatsync

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ followRepo = &followRepoMock{}

type followRepoMock struct {
	ListFollowingFunc func(ctx context.Context, followerID uuid.UUID) ([]domain.Peer, error)

	calls struct {
		ListFollowing []struct {
			Ctx        context.Context
			FollowerID uuid.UUID
		}
	}
	lockListFollowing sync.RWMutex
}

func (mock *followRepoMock) ListFollowing(ctx context.Context, followerID uuid.UUID) ([]domain.Peer, error) {
	if mock.ListFollowingFunc == nil {
		panic("followRepoMock.ListFollowingFunc: method is nil but followRepo.ListFollowing was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		FollowerID uuid.UUID
	}{
		Ctx:        ctx,
		FollowerID: followerID,
	}
	mock.lockListFollowing.Lock()
	mock.calls.ListFollowing = append(mock.calls.ListFollowing, callInfo)
	mock.lockListFollowing.Unlock()
	return mock.ListFollowingFunc(ctx, followerID)
}

func (mock *followRepoMock) ListFollowingCalls() []struct {
	Ctx        context.Context
	FollowerID uuid.UUID
} {
	mock.lockListFollowing.RLock()
	calls := mock.calls.ListFollowing
	mock.lockListFollowing.RUnlock()
	return calls
}
