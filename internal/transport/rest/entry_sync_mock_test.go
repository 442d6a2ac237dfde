package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/service/entrysync"
)

var _ entrySync = &entrySyncMock{}

type entrySyncMock struct {
	DeleteImageFunc    func(ctx context.Context, entryID uuid.UUID, imageID uuid.UUID, imageURL string) error
	LoadSnapshotFunc   func(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error
	ProjectionFunc     func(entryID uuid.UUID, viewerID uuid.UUID) (entrysync.Projection, bool)
	ProjectionsFunc    func(entryIDs []uuid.UUID, viewerID uuid.UUID) []entrysync.Projection
	RetainFunc         func(keep []uuid.UUID) []uuid.UUID
	SubmitCommentFunc  func(ctx context.Context, entryID uuid.UUID, text string, userID uuid.UUID) error
	ToggleReactionFunc func(ctx context.Context, entryID uuid.UUID, kind domain.ReactionKind, userID uuid.UUID) error
	UploadImageFunc    func(ctx context.Context, entryID uuid.UUID, file entrysync.ImageUpload) error

	calls struct {
		DeleteImage []struct {
			Ctx      context.Context
			EntryID  uuid.UUID
			ImageID  uuid.UUID
			ImageURL string
		}
		LoadSnapshot []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			EntryIDs []uuid.UUID
		}
		Projection []struct {
			EntryID  uuid.UUID
			ViewerID uuid.UUID
		}
		Projections []struct {
			EntryIDs []uuid.UUID
			ViewerID uuid.UUID
		}
		Retain []struct {
			Keep []uuid.UUID
		}
		SubmitComment []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			Text    string
			UserID  uuid.UUID
		}
		ToggleReaction []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			Kind    domain.ReactionKind
			UserID  uuid.UUID
		}
		UploadImage []struct {
			Ctx     context.Context
			EntryID uuid.UUID
			File    entrysync.ImageUpload
		}
	}
	lockDeleteImage    sync.RWMutex
	lockLoadSnapshot   sync.RWMutex
	lockProjection     sync.RWMutex
	lockProjections    sync.RWMutex
	lockRetain         sync.RWMutex
	lockSubmitComment  sync.RWMutex
	lockToggleReaction sync.RWMutex
	lockUploadImage    sync.RWMutex
}

func (mock *entrySyncMock) DeleteImage(ctx context.Context, entryID uuid.UUID, imageID uuid.UUID, imageURL string) error {
	if mock.DeleteImageFunc == nil {
		panic("entrySyncMock.DeleteImageFunc: method is nil but entrySync.DeleteImage was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		EntryID  uuid.UUID
		ImageID  uuid.UUID
		ImageURL string
	}{
		Ctx:      ctx,
		EntryID:  entryID,
		ImageID:  imageID,
		ImageURL: imageURL,
	}
	mock.lockDeleteImage.Lock()
	mock.calls.DeleteImage = append(mock.calls.DeleteImage, callInfo)
	mock.lockDeleteImage.Unlock()
	return mock.DeleteImageFunc(ctx, entryID, imageID, imageURL)
}

func (mock *entrySyncMock) DeleteImageCalls() []struct {
	Ctx      context.Context
	EntryID  uuid.UUID
	ImageID  uuid.UUID
	ImageURL string
} {
	mock.lockDeleteImage.RLock()
	calls := mock.calls.DeleteImage
	mock.lockDeleteImage.RUnlock()
	return calls
}

func (mock *entrySyncMock) LoadSnapshot(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error {
	if mock.LoadSnapshotFunc == nil {
		panic("entrySyncMock.LoadSnapshotFunc: method is nil but entrySync.LoadSnapshot was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		EntryIDs []uuid.UUID
	}{
		Ctx:      ctx,
		UserID:   userID,
		EntryIDs: entryIDs,
	}
	mock.lockLoadSnapshot.Lock()
	mock.calls.LoadSnapshot = append(mock.calls.LoadSnapshot, callInfo)
	mock.lockLoadSnapshot.Unlock()
	return mock.LoadSnapshotFunc(ctx, userID, entryIDs)
}

func (mock *entrySyncMock) LoadSnapshotCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	EntryIDs []uuid.UUID
} {
	mock.lockLoadSnapshot.RLock()
	calls := mock.calls.LoadSnapshot
	mock.lockLoadSnapshot.RUnlock()
	return calls
}

func (mock *entrySyncMock) Projection(entryID uuid.UUID, viewerID uuid.UUID) (entrysync.Projection, bool) {
	if mock.ProjectionFunc == nil {
		panic("entrySyncMock.ProjectionFunc: method is nil but entrySync.Projection was just called")
	}
	callInfo := struct {
		EntryID  uuid.UUID
		ViewerID uuid.UUID
	}{
		EntryID:  entryID,
		ViewerID: viewerID,
	}
	mock.lockProjection.Lock()
	mock.calls.Projection = append(mock.calls.Projection, callInfo)
	mock.lockProjection.Unlock()
	return mock.ProjectionFunc(entryID, viewerID)
}

func (mock *entrySyncMock) ProjectionCalls() []struct {
	EntryID  uuid.UUID
	ViewerID uuid.UUID
} {
	mock.lockProjection.RLock()
	calls := mock.calls.Projection
	mock.lockProjection.RUnlock()
	return calls
}

func (mock *entrySyncMock) Projections(entryIDs []uuid.UUID, viewerID uuid.UUID) []entrysync.Projection {
	if mock.ProjectionsFunc == nil {
		panic("entrySyncMock.ProjectionsFunc: method is nil but entrySync.Projections was just called")
	}
	callInfo := struct {
		EntryIDs []uuid.UUID
		ViewerID uuid.UUID
	}{
		EntryIDs: entryIDs,
		ViewerID: viewerID,
	}
	mock.lockProjections.Lock()
	mock.calls.Projections = append(mock.calls.Projections, callInfo)
	mock.lockProjections.Unlock()
	return mock.ProjectionsFunc(entryIDs, viewerID)
}

func (mock *entrySyncMock) ProjectionsCalls() []struct {
	EntryIDs []uuid.UUID
	ViewerID uuid.UUID
} {
	mock.lockProjections.RLock()
	calls := mock.calls.Projections
	mock.lockProjections.RUnlock()
	return calls
}

func (mock *entrySyncMock) Retain(keep []uuid.UUID) []uuid.UUID {
	if mock.RetainFunc == nil {
		panic("entrySyncMock.RetainFunc: method is nil but entrySync.Retain was just called")
	}
	callInfo := struct {
		Keep []uuid.UUID
	}{
		Keep: keep,
	}
	mock.lockRetain.Lock()
	mock.calls.Retain = append(mock.calls.Retain, callInfo)
	mock.lockRetain.Unlock()
	return mock.RetainFunc(keep)
}

func (mock *entrySyncMock) RetainCalls() []struct {
	Keep []uuid.UUID
} {
	mock.lockRetain.RLock()
	calls := mock.calls.Retain
	mock.lockRetain.RUnlock()
	return calls
}

func (mock *entrySyncMock) SubmitComment(ctx context.Context, entryID uuid.UUID, text string, userID uuid.UUID) error {
	if mock.SubmitCommentFunc == nil {
		panic("entrySyncMock.SubmitCommentFunc: method is nil but entrySync.SubmitComment was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		Text    string
		UserID  uuid.UUID
	}{
		Ctx:     ctx,
		EntryID: entryID,
		Text:    text,
		UserID:  userID,
	}
	mock.lockSubmitComment.Lock()
	mock.calls.SubmitComment = append(mock.calls.SubmitComment, callInfo)
	mock.lockSubmitComment.Unlock()
	return mock.SubmitCommentFunc(ctx, entryID, text, userID)
}

func (mock *entrySyncMock) SubmitCommentCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	Text    string
	UserID  uuid.UUID
} {
	mock.lockSubmitComment.RLock()
	calls := mock.calls.SubmitComment
	mock.lockSubmitComment.RUnlock()
	return calls
}

func (mock *entrySyncMock) ToggleReaction(ctx context.Context, entryID uuid.UUID, kind domain.ReactionKind, userID uuid.UUID) error {
	if mock.ToggleReactionFunc == nil {
		panic("entrySyncMock.ToggleReactionFunc: method is nil but entrySync.ToggleReaction was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		Kind    domain.ReactionKind
		UserID  uuid.UUID
	}{
		Ctx:     ctx,
		EntryID: entryID,
		Kind:    kind,
		UserID:  userID,
	}
	mock.lockToggleReaction.Lock()
	mock.calls.ToggleReaction = append(mock.calls.ToggleReaction, callInfo)
	mock.lockToggleReaction.Unlock()
	return mock.ToggleReactionFunc(ctx, entryID, kind, userID)
}

func (mock *entrySyncMock) ToggleReactionCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	Kind    domain.ReactionKind
	UserID  uuid.UUID
} {
	mock.lockToggleReaction.RLock()
	calls := mock.calls.ToggleReaction
	mock.lockToggleReaction.RUnlock()
	return calls
}

func (mock *entrySyncMock) UploadImage(ctx context.Context, entryID uuid.UUID, file entrysync.ImageUpload) error {
	if mock.UploadImageFunc == nil {
		panic("entrySyncMock.UploadImageFunc: method is nil but entrySync.UploadImage was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		EntryID uuid.UUID
		File    entrysync.ImageUpload
	}{
		Ctx:     ctx,
		EntryID: entryID,
		File:    file,
	}
	mock.lockUploadImage.Lock()
	mock.calls.UploadImage = append(mock.calls.UploadImage, callInfo)
	mock.lockUploadImage.Unlock()
	return mock.UploadImageFunc(ctx, entryID, file)
}

func (mock *entrySyncMock) UploadImageCalls() []struct {
	Ctx     context.Context
	EntryID uuid.UUID
	File    entrysync.ImageUpload
} {
	mock.lockUploadImage.RLock()
	calls := mock.calls.UploadImage
	mock.lockUploadImage.RUnlock()
	return calls
}
