package chatsync

import (
	"sync"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/realtime"
	"github.com/heartmarshall/himalink/internal/domain"
)

var _ subscriber = &subscriberMock{}

type subscriberMock struct {
	SubscribeFunc func(rel domain.Relation, h realtime.Handler) (*realtime.Subscription, error)

	calls struct {
		Subscribe []struct {
			Rel domain.Relation
			H   realtime.Handler
		}
	}
	lockSubscribe sync.RWMutex
}

func (mock *subscriberMock) Subscribe(rel domain.Relation, h realtime.Handler) (*realtime.Subscription, error) {
	if mock.SubscribeFunc == nil {
		panic("subscriberMock.SubscribeFunc: method is nil but subscriber.Subscribe was just called")
	}
	callInfo := struct {
		Rel domain.Relation
		H   realtime.Handler
	}{
		Rel: rel,
		H:   h,
	}
	mock.lockSubscribe.Lock()
	mock.calls.Subscribe = append(mock.calls.Subscribe, callInfo)
	mock.lockSubscribe.Unlock()
	return mock.SubscribeFunc(rel, h)
}

func (mock *subscriberMock) SubscribeCalls() []struct {
	Rel domain.Relation
	H   realtime.Handler
} {
	mock.lockSubscribe.RLock()
	calls := mock.calls.Subscribe
	mock.lockSubscribe.RUnlock()
	return calls
}
