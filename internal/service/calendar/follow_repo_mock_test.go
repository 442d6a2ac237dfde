package calendar

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ followRepo = &followRepoMock{}

type followRepoMock struct {
	IsFollowingFunc      func(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error)
	ListFollowingIDsFunc func(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)

	calls struct {
		IsFollowing []struct {
			Ctx         context.Context
			FollowerID  uuid.UUID
			FollowingID uuid.UUID
		}
		ListFollowingIDs []struct {
			Ctx        context.Context
			FollowerID uuid.UUID
		}
	}
	lockIsFollowing      sync.RWMutex
	lockListFollowingIDs sync.RWMutex
}

func (mock *followRepoMock) IsFollowing(ctx context.Context, followerID uuid.UUID, followingID uuid.UUID) (bool, error) {
	if mock.IsFollowingFunc == nil {
		panic("followRepoMock.IsFollowingFunc: method is nil but followRepo.IsFollowing was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		FollowerID  uuid.UUID
		FollowingID uuid.UUID
	}{
		Ctx:         ctx,
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	mock.lockIsFollowing.Lock()
	mock.calls.IsFollowing = append(mock.calls.IsFollowing, callInfo)
	mock.lockIsFollowing.Unlock()
	return mock.IsFollowingFunc(ctx, followerID, followingID)
}

func (mock *followRepoMock) IsFollowingCalls() []struct {
	Ctx         context.Context
	FollowerID  uuid.UUID
	FollowingID uuid.UUID
} {
	mock.lockIsFollowing.RLock()
	calls := mock.calls.IsFollowing
	mock.lockIsFollowing.RUnlock()
	return calls
}

func (mock *followRepoMock) ListFollowingIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	if mock.ListFollowingIDsFunc == nil {
		panic("followRepoMock.ListFollowingIDsFunc: method is nil but followRepo.ListFollowingIDs was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		FollowerID uuid.UUID
	}{
		Ctx:        ctx,
		FollowerID: followerID,
	}
	mock.lockListFollowingIDs.Lock()
	mock.calls.ListFollowingIDs = append(mock.calls.ListFollowingIDs, callInfo)
	mock.lockListFollowingIDs.Unlock()
	return mock.ListFollowingIDsFunc(ctx, followerID)
}

func (mock *followRepoMock) ListFollowingIDsCalls() []struct {
	Ctx        context.Context
	FollowerID uuid.UUID
} {
	mock.lockListFollowingIDs.RLock()
	calls := mock.calls.ListFollowingIDs
	mock.lockListFollowingIDs.RUnlock()
	return calls
}
