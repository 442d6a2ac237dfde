package session

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/realtime"
	"github.com/heartmarshall/himalink/internal/domain"
)

// Watch subscribes to comment inserts and refreshes the comment list in
// every session that tracks the commented entry.
func (r *Registry) Watch(sub subscriber) error {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	if r.sub != nil {
		return nil
	}

	r.fanMu.Lock()
	r.fanStopped = false
	r.fanMu.Unlock()

	s, err := sub.Subscribe(domain.RelationEntryComments, r.onComment)
	if err != nil {
		return err
	}
	r.sub = s
	return nil
}

// Unwatch ends the comment subscription and waits for refreshes already
// started.
func (r *Registry) Unwatch() {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	if r.sub != nil {
		r.sub.Unsubscribe()
		r.sub = nil
	}

	r.fanMu.Lock()
	r.fanStopped = true
	r.fanMu.Unlock()
	r.fanWG.Wait()
}

// onComment runs on the listener goroutine and must not block; the
// refreshes run in the background.
func (r *Registry) onComment(ctx context.Context, payload []byte) {
	c, err := realtime.DecodeComment(payload)
	if err != nil {
		r.log.WarnContext(ctx, "bad comment insert payload", slog.String("error", err.Error()))
		return
	}

	r.mu.RLock()
	targets := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		if sess.Entries != nil && sess.Entries.Tracks(c.EntryID) {
			targets = append(targets, sess)
		}
	}
	r.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	r.fanMu.Lock()
	if r.fanStopped {
		r.fanMu.Unlock()
		return
	}
	r.fanWG.Add(1)
	r.fanMu.Unlock()

	go func() {
		defer r.fanWG.Done()
		r.refreshComments(r.fanCtx, c.EntryID, targets)
	}()
}

func (r *Registry) refreshComments(ctx context.Context, entryID uuid.UUID, targets []*Session) {
	var g errgroup.Group
	g.SetLimit(r.opts.FanOut)
	for _, sess := range targets {
		g.Go(func() error {
			// Failures are logged by the synchronizer.
			_ = sess.Entries.RefreshComments(ctx, entryID)
			return nil
		})
	}
	_ = g.Wait()
}
