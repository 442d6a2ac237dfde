package calendar

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ imageRepo = &imageRepoMock{}

type imageRepoMock struct {
	ListByEntryFunc func(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error)

	calls struct {
		ListByEntry []struct {
			Ctx     context.Context
			EntryID uuid.UUID
		}
	}
	lockListByEntry sync.RWMutex
}

func (mock *imageRepoMock) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error) {
	if mock.ListByEntryFunc == nil {
		panic("imageRepoMock.ListByEntryFunc: method is nil but imageRepo.ListByEntry was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
	}{
		Ctx:     ctx,
		EntryID: entryID,
	}
	mock.lockListByEntry.Lock()
	mock.calls.ListByEntry = append(mock.calls.ListByEntry, callInfo)
	mock.lockListByEntry.Unlock()
	return mock.ListByEntryFunc(ctx, entryID)
}

func (mock *imageRepoMock) ListByEntryCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
} {
	mock.lockListByEntry.RLock()
	calls := mock.calls.ListByEntry
	mock.lockListByEntry.RUnlock()
	return calls
}
