package entrysync

import (
	"context"
	"io"
	"sync"
)

var _ blobStore = &blobStoreMock{}

type blobStoreMock struct {
	RemoveFunc func(ctx context.Context, path string) error
	UploadFunc func(ctx context.Context, path string, contentType string, body io.Reader) (string, error)

	calls struct {
		Remove []struct {
			Ctx  context.Context
			Path string
		}
		Upload []struct {
			Ctx         context.Context
			Path        string
			ContentType string
			Body        io.Reader
		}
	}
	lockRemove sync.RWMutex
	lockUpload sync.RWMutex
}

func (mock *blobStoreMock) Remove(ctx context.Context, path string) error {
	if mock.RemoveFunc == nil {
		panic("blobStoreMock.RemoveFunc: method is nil but blobStore.Remove was just called")
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

func (mock *blobStoreMock) RemoveCalls() []struct {
	Ctx  context.Context
	Path string
} {
	mock.lockRemove.RLock()
	calls := mock.calls.Remove
	mock.lockRemove.RUnlock()
	return calls
}

func (mock *blobStoreMock) Upload(ctx context.Context, path string, contentType string, body io.Reader) (string, error) {
	if mock.UploadFunc == nil {
		panic("blobStoreMock.UploadFunc: method is nil but blobStore.Upload was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Path        string
		ContentType string
		Body        io.Reader
	}{
		Ctx:         ctx,
		Path:        path,
		ContentType: contentType,
		Body:        body,
	}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, path, contentType, body)
}

func (mock *blobStoreMock) UploadCalls() []struct {
	Ctx         context.Context
	Path        string
	ContentType string
	Body        io.Reader
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}
