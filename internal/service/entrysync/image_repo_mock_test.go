package entrysync

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ imageRepo = &imageRepoMock{}

type imageRepoMock struct {
	AddFunc         func(ctx context.Context, entryID uuid.UUID, url string, caption *string) (*domain.EntryImage, error)
	DeleteFunc      func(ctx context.Context, entryID uuid.UUID, imageID uuid.UUID) error
	ListByEntryFunc func(ctx context.Context, entryID uuid.UUID) ([]domain.EntryImage, error)

	calls struct {
		Add []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			Url     string
			Caption *string
		}
		Delete []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			ImageID uuid.UUID
		}
		ListByEntry []struct {
			Ctx     context.Context
			EntryID uuid.UUID
		}
	}
	lockAdd         sync.RWMutex
	lockDelete      sync.RWMutex
	lockListByEntry sync.RWMutex
}

func (mock *imageRepoMock) Add(ctx context.Context, entryID uuid.UUID, url string, caption *string) (*domain.EntryImage, error) {
	if mock.AddFunc == nil {
		panic("imageRepoMock.AddFunc: method is nil but imageRepo.Add was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		Url     string
		Caption *string
	}{
		Ctx:     ctx,
		EntryID: entryID,
		Url:     url,
		Caption: caption,
	}
	mock.lockAdd.Lock()
	mock.calls.Add = append(mock.calls.Add, callInfo)
	mock.lockAdd.Unlock()
	return mock.AddFunc(ctx, entryID, url, caption)
}

func (mock *imageRepoMock) AddCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	Url     string
	Caption *string
} {
	mock.lockAdd.RLock()
	calls := mock.calls.Add
	mock.lockAdd.RUnlock()
	return calls
}

func (mock *imageRepoMock) Delete(ctx context.Context, entryID uuid.UUID, imageID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("imageRepoMock.DeleteFunc: method is nil but imageRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		ImageID uuid.UUID
	}{
		Ctx:     ctx,
		EntryID: entryID,
		ImageID: imageID,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, entryID, imageID)
}

func (mock *imageRepoMock) DeleteCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	ImageID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
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
