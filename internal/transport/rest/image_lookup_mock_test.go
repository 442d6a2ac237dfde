package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ imageLookup = &imageLookupMock{}

type imageLookupMock struct {
	GetByIDFunc func(ctx context.Context, imageID uuid.UUID) (*domain.EntryImage, error)

	calls struct {
		GetByID []struct {
			Ctx     context.Context
			ImageID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *imageLookupMock) GetByID(ctx context.Context, imageID uuid.UUID) (*domain.EntryImage, error) {
	if mock.GetByIDFunc == nil {
		panic("imageLookupMock.GetByIDFunc: method is nil but imageLookup.GetByID was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ImageID uuid.UUID
	}{
		Ctx:     ctx,
		ImageID: imageID,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, imageID)
}

func (mock *imageLookupMock) GetByIDCalls() []struct {
	Ctx     context.Context
	ImageID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
