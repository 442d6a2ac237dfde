package calendar

import (
	"context"
	"sync"
)

var _ blobRemover = &blobRemoverMock{}

type blobRemoverMock struct {
	RemoveFunc func(ctx context.Context, path string) error

	calls struct {
		Remove []struct {
			Ctx  context.Context
			Path string
		}
	}
	lockRemove sync.RWMutex
}

func (mock *blobRemoverMock) Remove(ctx context.Context, path string) error {
	if mock.RemoveFunc == nil {
		panic("blobRemoverMock.RemoveFunc: method is nil but blobRemover.Remove was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Path string
	}{
		Ctx:  ctx,
		Path: path,
	}
	mock.lockRemove.Lock()
	mock.calls.Remove = append(mock.calls.Remove, callInfo)
	mock.lockRemove.Unlock()
	return mock.RemoveFunc(ctx, path)
}

func (mock *blobRemoverMock) RemoveCalls() []struct {
	Ctx  context.Context
	Path string
} {
	mock.lockRemove.RLock()
	calls := mock.calls.Remove
	mock.lockRemove.RUnlock()
	return calls
}
