package blob

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var _ objectAPI = &objectAPIMock{}

type objectAPIMock struct {
	DeleteObjectFunc func(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	PutObjectFunc    func(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)

	calls struct {
		DeleteObject []struct {
			Ctx    context.Context
			In     *s3.DeleteObjectInput
			OptFns []func(*s3.Options)
		}
		PutObject []struct {
			Ctx    context.Context
			In     *s3.PutObjectInput
			OptFns []func(*s3.Options)
		}
	}
	lockDeleteObject sync.RWMutex
	lockPutObject    sync.RWMutex
}

func (mock *objectAPIMock) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if mock.DeleteObjectFunc == nil {
		panic("objectAPIMock.DeleteObjectFunc: method is nil but objectAPI.DeleteObject was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		In     *s3.DeleteObjectInput
		OptFns []func(*s3.Options)
	}{
		Ctx:    ctx,
		In:     in,
		OptFns: optFns,
	}
	mock.lockDeleteObject.Lock()
	mock.calls.DeleteObject = append(mock.calls.DeleteObject, callInfo)
	mock.lockDeleteObject.Unlock()
	return mock.DeleteObjectFunc(ctx, in, optFns...)
}

func (mock *objectAPIMock) DeleteObjectCalls() []struct {
	Ctx    context.Context
	In     *s3.DeleteObjectInput
	OptFns []func(*s3.Options)
} {
	mock.lockDeleteObject.RLock()
	calls := mock.calls.DeleteObject
	mock.lockDeleteObject.RUnlock()
	return calls
}

func (mock *objectAPIMock) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if mock.PutObjectFunc == nil {
		panic("objectAPIMock.PutObjectFunc: method is nil but objectAPI.PutObject was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		In     *s3.PutObjectInput
		OptFns []func(*s3.Options)
	}{
		Ctx:    ctx,
		In:     in,
		OptFns: optFns,
	}
	mock.lockPutObject.Lock()
	mock.calls.PutObject = append(mock.calls.PutObject, callInfo)
	mock.lockPutObject.Unlock()
	return mock.PutObjectFunc(ctx, in, optFns...)
}

func (mock *objectAPIMock) PutObjectCalls() []struct {
	Ctx    context.Context
	In     *s3.PutObjectInput
	OptFns []func(*s3.Options)
} {
	mock.lockPutObject.RLock()
	calls := mock.calls.PutObject
	mock.lockPutObject.RUnlock()
	return calls
}
