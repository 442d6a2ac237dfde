// Package realtime delivers row-insert notifications published by the
// gateway's realtime trigger (pg_notify on "<prefix><table>") to
// in-process subscribers.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
)

// Handler receives the JSON payload of one inserted row. Handlers run on
// the listener goroutine and must not block.
type Handler func(ctx context.Context, payload []byte)

// Listener multiplexes one dedicated LISTEN connection across any number
// of subscriptions.
type Listener struct {
	pool           *pgxpool.Pool
	prefix         string
	reconnectDelay time.Duration
	log            *slog.Logger

	mu     sync.Mutex
	nextID uint64
	subs   map[domain.Relation]map[uint64]Handler
	dirty  bool
	wake   context.CancelFunc
}

// NewListener creates a Listener. Run must be called for events to flow.
func NewListener(pool *pgxpool.Pool, prefix string, reconnectDelay time.Duration, logger *slog.Logger) *Listener {
	if reconnectDelay <= 0 {
		reconnectDelay = time.Second
	}
	return &Listener{
		pool:           pool,
		prefix:         prefix,
		reconnectDelay: reconnectDelay,
		log:            logger.With("component", "realtime"),
		subs:           make(map[domain.Relation]map[uint64]Handler),
	}
}

// Subscription is a live registration returned by Subscribe.
type Subscription struct {
	l    *Listener
	rel  domain.Relation
	id   uint64
	once sync.Once
}

// Unsubscribe removes the handler. Safe to call more than once. A zero
// Subscription is inert.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.l != nil {
			s.l.remove(s.rel, s.id)
		}
	})
}

// Subscribe registers h for inserts into rel.
func (l *Listener) Subscribe(rel domain.Relation, h Handler) (*Subscription, error) {
	if !rel.IsValid() {
		return nil, domain.NewValidationError("relation", fmt.Sprintf("unknown relation %q", rel))
	}
	if h == nil {
		return nil, domain.NewValidationError("handler", "required")
	}

	l.mu.Lock()
	l.nextID++
	id := l.nextID
	if l.subs[rel] == nil {
		l.subs[rel] = make(map[uint64]Handler)
		l.markDirtyLocked()
	}
	l.subs[rel][id] = h
	l.mu.Unlock()

	return &Subscription{l: l, rel: rel, id: id}, nil
}

func (l *Listener) remove(rel domain.Relation, id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.subs[rel], id)
	if len(l.subs[rel]) == 0 {
		delete(l.subs, rel)
		l.markDirtyLocked()
	}
}

// markDirtyLocked asks the Run loop to resync its LISTEN set.
func (l *Listener) markDirtyLocked() {
	l.dirty = true
	if l.wake != nil {
		l.wake()
	}
}

// Run keeps a LISTEN connection open until ctx is done, reconnecting after
// connection loss. It returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}
		l.log.WarnContext(ctx, "realtime connection lost",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", l.reconnectDelay),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listen connection: %w", err)
	}
	// LISTEN state must not leak back into the pool.
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	active := make(map[string]bool)
	l.log.InfoContext(ctx, "realtime connection established")

	for {
		l.mu.Lock()
		l.dirty = false
		wanted := l.channelsLocked()
		l.mu.Unlock()

		if err := l.syncChannels(ctx, conn, active, wanted); err != nil {
			return err
		}

		waitCtx, cancel := context.WithCancel(ctx)
		l.mu.Lock()
		if l.dirty {
			l.mu.Unlock()
			cancel()
			continue
		}
		l.wake = cancel
		l.mu.Unlock()

		n, err := conn.WaitForNotification(waitCtx)

		l.mu.Lock()
		l.wake = nil
		l.mu.Unlock()
		woken := waitCtx.Err() != nil && ctx.Err() == nil
		cancel()

		if err != nil {
			if woken && !conn.IsClosed() {
				continue
			}
			return fmt.Errorf("wait for notification: %w", err)
		}

		l.dispatch(ctx, n)
	}
}

func (l *Listener) channelsLocked() []string {
	out := make([]string, 0, len(l.subs))
	for rel := range l.subs {
		out = append(out, l.channel(rel))
	}
	sort.Strings(out)
	return out
}

func (l *Listener) syncChannels(ctx context.Context, conn *pgx.Conn, active map[string]bool, wanted []string) error {
	want := make(map[string]bool, len(wanted))
	for _, ch := range wanted {
		want[ch] = true
		if active[ch] {
			continue
		}
		if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return fmt.Errorf("listen %s: %w", ch, err)
		}
		active[ch] = true
	}
	for ch := range active {
		if want[ch] {
			continue
		}
		if _, err := conn.Exec(ctx, "UNLISTEN "+pgx.Identifier{ch}.Sanitize()); err != nil {
			return fmt.Errorf("unlisten %s: %w", ch, err)
		}
		delete(active, ch)
	}
	return nil
}

func (l *Listener) dispatch(ctx context.Context, n *pgconn.Notification) {
	rel, ok := l.relation(n.Channel)
	if !ok {
		return
	}

	l.mu.Lock()
	handlers := make([]Handler, 0, len(l.subs[rel]))
	for _, h := range l.subs[rel] {
		handlers = append(handlers, h)
	}
	l.mu.Unlock()

	if len(handlers) == 0 {
		metrics.IncRealtimeEvent(rel.String(), "unsubscribed")
		return
	}
	metrics.IncRealtimeEvent(rel.String(), "dispatched")

	payload := []byte(n.Payload)
	for _, h := range handlers {
		h(ctx, payload)
	}
}

func (l *Listener) channel(rel domain.Relation) string {
	return l.prefix + rel.String()
}

func (l *Listener) relation(channel string) (domain.Relation, bool) {
	name, ok := strings.CutPrefix(channel, l.prefix)
	if !ok {
		return "", false
	}
	rel := domain.Relation(name)
	return rel, rel.IsValid()
}
