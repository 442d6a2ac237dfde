// Package session holds the per-user synchronizers of authenticated users.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/himalink/internal/adapter/postgres/realtime"
	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
	"github.com/heartmarshall/himalink/internal/service/chatsync"
	"github.com/heartmarshall/himalink/internal/service/entrysync"
	"github.com/heartmarshall/himalink/internal/service/visited"
)

// ErrClosed is returned by Get after CloseAll.
var ErrClosed = errors.New("session registry closed")

// Session is the state kept for one user between requests.
type Session struct {
	UserID  uuid.UUID
	Entries *entrysync.Service
	Chat    *chatsync.Service
	Visited *visited.Store

	lastUsed atomic.Int64
}

func (s *Session) touch(now time.Time) { s.lastUsed.Store(now.UnixNano()) }

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastUsed.Load()))
}

// Close stops the chat subscription and waits for in-flight entry loads.
func (s *Session) Close() {
	if s.Chat != nil {
		s.Chat.Close()
	}
	if s.Entries != nil {
		s.Entries.Close()
	}
}

// Factory builds a ready session for userID.
type Factory func(ctx context.Context, userID uuid.UUID) (*Session, error)

type subscriber interface {
	Subscribe(rel domain.Relation, h realtime.Handler) (*realtime.Subscription, error)
}

// Options tunes a Registry.
type Options struct {
	// IdleTTL evicts sessions unused for longer. Zero disables eviction.
	IdleTTL time.Duration
	// SweepInterval is the janitor period. Default: one minute.
	SweepInterval time.Duration
	// FanOut caps concurrent comment refreshes per insert. Default: 8.
	FanOut int
}

// Registry creates sessions lazily and evicts idle ones.
type Registry struct {
	log     *slog.Logger
	factory Factory
	opts    Options
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	closed   bool

	group singleflight.Group

	subMu sync.Mutex
	sub   *realtime.Subscription

	// Background comment refreshes. fanCancel is called by CloseAll.
	fanCtx     context.Context
	fanCancel  context.CancelFunc
	fanMu      sync.Mutex
	fanStopped bool
	fanWG      sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger, factory Factory, opts Options) *Registry {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	if opts.FanOut <= 0 {
		opts.FanOut = 8
	}
	fanCtx, fanCancel := context.WithCancel(context.Background())
	return &Registry{
		log:       logger.With("service", "session"),
		factory:   factory,
		opts:      opts,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
		fanCtx:    fanCtx,
		fanCancel: fanCancel,
	}
}

// Get returns the session of userID, creating it on first use. Concurrent
// first calls share one construction.
func (r *Registry) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	if sess, ok := r.lookup(userID); ok {
		return sess, nil
	}

	v, err, _ := r.group.Do(userID.String(), func() (any, error) {
		if sess, ok := r.lookup(userID); ok {
			return sess, nil
		}
		return r.create(context.WithoutCancel(ctx), userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (r *Registry) lookup(userID uuid.UUID) (*Session, bool) {
	r.mu.RLock()
	sess, ok := r.sessions[userID]
	r.mu.RUnlock()
	if ok {
		sess.touch(r.now())
	}
	return sess, ok
}

func (r *Registry) create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	sess, err := r.factory(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess.UserID = userID
	if sess.Chat != nil {
		if err := sess.Chat.Start(ctx); err != nil {
			sess.Close()
			return nil, err
		}
	}
	sess.touch(r.now())

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		sess.Close()
		return nil, ErrClosed
	}
	r.sessions[userID] = sess
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	r.log.InfoContext(ctx, "session created", slog.String("user_id", userID.String()))
	return sess, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Evict closes and drops the session of userID, if any.
func (r *Registry) Evict(userID uuid.UUID) {
	r.mu.Lock()
	sess, ok := r.sessions[userID]
	delete(r.sessions, userID)
	n := len(r.sessions)
	r.mu.Unlock()

	if ok {
		sess.Close()
		metrics.ActiveSessions.Set(float64(n))
	}
}

// Sweep evicts sessions idle longer than IdleTTL and returns how many.
func (r *Registry) Sweep(ctx context.Context) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	now := r.now()

	r.mu.Lock()
	var idle []*Session
	for id, sess := range r.sessions {
		if sess.idleSince(now) > r.opts.IdleTTL {
			idle = append(idle, sess)
			delete(r.sessions, id)
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
	}
	if len(idle) > 0 {
		metrics.ActiveSessions.Set(float64(n))
		r.log.InfoContext(ctx, "idle sessions evicted", slog.Int("count", len(idle)))
	}
	return len(idle)
}

// Run sweeps idle sessions until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.opts.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// CloseAll closes every session and rejects further creation.
func (r *Registry) CloseAll() {
	r.fanCancel()
	r.Unwatch()

	r.mu.Lock()
	r.closed = true
	all := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		all = append(all, sess)
	}
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()

	for _, sess := range all {
		sess.Close()
	}
	metrics.ActiveSessions.Set(0)
	r.log.Info("sessions closed", slog.Int("count", len(all)))
}
