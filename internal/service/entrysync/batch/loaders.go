package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/himalink/internal/domain"
)

func newSummaryBatchFn(repo ReactionRepo, timeout time.Duration) dataloader.BatchFunc[uuid.UUID, []domain.ReactionCount] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.ReactionCount] {
		ctx, cancel := detach(ctx, timeout)
		defer cancel()

		rows, err := repo.GetSummaryByEntryIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.ReactionCount](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.ReactionCount, len(keys))
		for _, r := range rows {
			grouped[r.EntryID] = append(grouped[r.EntryID], r.ReactionCount)
		}

		return mapResults(keys, grouped, emptySlice[domain.ReactionCount])
	}
}

func newUsersBatchFn(repo ReactionRepo, timeout time.Duration) dataloader.BatchFunc[uuid.UUID, []domain.ReactionUser] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.ReactionUser] {
		ctx, cancel := detach(ctx, timeout)
		defer cancel()

		rows, err := repo.GetUsersByEntryIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.ReactionUser](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.ReactionUser, len(keys))
		for _, r := range rows {
			grouped[r.EntryID] = append(grouped[r.EntryID], r.ReactionUser)
		}

		return mapResults(keys, grouped, emptySlice[domain.ReactionUser])
	}
}

func newCommentsBatchFn(repo CommentRepo, timeout time.Duration) dataloader.BatchFunc[uuid.UUID, []domain.Comment] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.Comment] {
		ctx, cancel := detach(ctx, timeout)
		defer cancel()

		rows, err := repo.ListByEntryIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.Comment](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.Comment, len(keys))
		for _, c := range rows {
			grouped[c.EntryID] = append(grouped[c.EntryID], c)
		}

		return mapResults(keys, grouped, emptySlice[domain.Comment])
	}
}

func newImagesBatchFn(repo ImageRepo, timeout time.Duration) dataloader.BatchFunc[uuid.UUID, []domain.EntryImage] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[[]domain.EntryImage] {
		ctx, cancel := detach(ctx, timeout)
		defer cancel()

		rows, err := repo.ListByEntryIDs(ctx, keys)
		if err != nil {
			return errorResults[[]domain.EntryImage](len(keys), err)
		}

		grouped := make(map[uuid.UUID][]domain.EntryImage, len(keys))
		for _, img := range rows {
			grouped[img.EntryID] = append(grouped[img.EntryID], img)
		}

		return mapResults(keys, grouped, emptySlice[domain.EntryImage])
	}
}

// detach drops the cancellation of the caller that happened to open the
// batch; the other callers in it must not fail with that caller's error.
func detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// errorResults returns a slice of error results for all keys.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps grouped results back to key order, using defaultFn for missing keys.
func mapResults[V any](keys []uuid.UUID, grouped map[uuid.UUID]V, defaultFn func() V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		if v, ok := grouped[key]; ok {
			results[i] = &dataloader.Result[V]{Data: v}
		} else {
			results[i] = &dataloader.Result[V]{Data: defaultFn()}
		}
	}
	return results
}

func emptySlice[T any]() []T {
	return []T{}
}
