package calendar

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/adapter/postgres/entry"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	CreateFunc      func(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	DeleteFunc      func(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	ListInRangeFunc func(ctx context.Context, f entry.RangeFilter) ([]domain.Entry, error)
	UpdateFunc      func(ctx context.Context, e *domain.Entry) (*domain.Entry, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			E   *domain.Entry
		}
		Delete []struct {
			Ctx     context.Context
			OwnerID uuid.UUID
			Id      uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		ListInRange []struct {
			Ctx context.Context
			F   entry.RangeFilter
		}
		Update []struct {
			Ctx context.Context
			E   *domain.Entry
		}
	}
	lockCreate      sync.RWMutex
	lockDelete      sync.RWMutex
	lockGetByID     sync.RWMutex
	lockListInRange sync.RWMutex
	lockUpdate      sync.RWMutex
}

func (mock *entryRepoMock) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	if mock.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but entryRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.Entry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *entryRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   *domain.Entry
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *entryRepoMock) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("entryRepoMock.DeleteFunc: method is nil but entryRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		OwnerID uuid.UUID
		Id      uuid.UUID
	}{
		Ctx:     ctx,
		OwnerID: ownerID,
		Id:      id,
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, ownerID, id)
}

func (mock *entryRepoMock) DeleteCalls() []struct {
	Ctx     context.Context
	OwnerID uuid.UUID
	Id      uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *entryRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	if mock.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *entryRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *entryRepoMock) ListInRange(ctx context.Context, f entry.RangeFilter) ([]domain.Entry, error) {
	if mock.ListInRangeFunc == nil {
		panic("entryRepoMock.ListInRangeFunc: method is nil but entryRepo.ListInRange was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   entry.RangeFilter
	}{
		Ctx: ctx,
		F:   f,
	}
	mock.lockListInRange.Lock()
	mock.calls.ListInRange = append(mock.calls.ListInRange, callInfo)
	mock.lockListInRange.Unlock()
	return mock.ListInRangeFunc(ctx, f)
}

func (mock *entryRepoMock) ListInRangeCalls() []struct {
	Ctx context.Context
	F   entry.RangeFilter
} {
	mock.lockListInRange.RLock()
	calls := mock.calls.ListInRange
	mock.lockListInRange.RUnlock()
	return calls
}

func (mock *entryRepoMock) Update(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	if mock.UpdateFunc == nil {
		panic("entryRepoMock.UpdateFunc: method is nil but entryRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   *domain.Entry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, e)
}

func (mock *entryRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	E   *domain.Entry
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
