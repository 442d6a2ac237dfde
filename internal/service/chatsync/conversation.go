package chatsync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/metrics"
)

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadPeers reads the follow list, makes every followed user a peer and
// loads each conversation independently. A failed conversation load is
// logged and does not fail the call.
func (s *Service) LoadPeers(ctx context.Context) (peers []domain.Peer, err error) {
	defer func(start time.Time) { metrics.ObserveGatewayCall("load_peers", start, err) }(time.Now())

	peers, err = s.follows.ListFollowing(ctx, s.userID)
	if err != nil {
		s.log.ErrorContext(ctx, "load peers failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("load peers: %w", err)
	}

	s.mu.Lock()
	s.peers = s.peers[:0]
	for _, p := range peers {
		c := s.ensureLocked(p.UserID)
		c.peer = p
		s.peers = append(s.peers, p.UserID)
	}
	s.mu.Unlock()

	var g errgroup.Group
	for _, p := range peers {
		g.Go(func() error {
			_ = s.LoadConversation(ctx, p.UserID)
			return nil
		})
	}
	_ = g.Wait()

	return peers, nil
}

// LoadConversation replaces the peer's message list with the gateway's and
// recomputes the preview. A response overtaken by a newer load for the same
// peer is discarded. Messages pushed after this load was issued are kept.
func (s *Service) LoadConversation(ctx context.Context, peerID uuid.UUID) (err error) {
	defer func(start time.Time) { metrics.ObserveGatewayCall("load_conversation", start, err) }(time.Now())

	s.mu.Lock()
	c := s.ensureLocked(peerID)
	c.gen++
	gen := c.gen
	s.mu.Unlock()

	msgs, err := s.chats.ListConversation(ctx, s.userID, peerID)
	if err != nil {
		s.log.ErrorContext(ctx, "load conversation failed",
			slog.String("peer_id", peerID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("load conversation %s: %w", peerID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.convs[peerID]
	if !ok || c.gen != gen {
		incStale()
		s.log.DebugContext(ctx, "stale conversation discarded", slog.String("peer_id", peerID.String()))
		return nil
	}
	c.apply(msgs, gen)
	return nil
}

// apply installs a reload result, keeping pushes the result does not cover.
func (c *conversation) apply(msgs []domain.ChatMessage, gen uint64) {
	seen := make(map[uuid.UUID]struct{}, len(msgs))
	for _, m := range msgs {
		seen[m.ID] = struct{}{}
	}

	merged := msgs
	kept := c.pushed[:0]
	for _, p := range c.pushed {
		if p.gen < gen {
			continue
		}
		kept = append(kept, p)
		if _, ok := seen[p.msg.ID]; !ok {
			merged = append(merged, p.msg)
		}
	}
	c.pushed = kept

	c.messages = merged
	c.loaded = true
	c.preview = ""
	if latest := domain.LatestMessage(merged); latest != nil {
		c.preview = latest.Text
	}
}

// ---------------------------------------------------------------------------
// Open conversation
// ---------------------------------------------------------------------------

// OpenConversation marks peerID as the conversation on screen and loads it.
func (s *Service) OpenConversation(ctx context.Context, peerID uuid.UUID) error {
	s.mu.Lock()
	s.open = peerID
	s.mu.Unlock()

	return s.LoadConversation(ctx, peerID)
}

// CloseConversation clears the open-conversation marker.
func (s *Service) CloseConversation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.convs[s.open]; ok {
		c.pushed = nil
	}
	s.open = uuid.Nil
}

// ---------------------------------------------------------------------------
// Sending and receiving
// ---------------------------------------------------------------------------

// SendMessage inserts a message to peerID. Blank text is rejected without
// a gateway call. The message is not appended here; it shows up through
// the insert stream.
func (s *Service) SendMessage(ctx context.Context, peerID uuid.UUID, text string) (err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NewValidationError("text", "required")
	}

	defer func(start time.Time) { metrics.ObserveGatewayCall("send_message", start, err) }(time.Now())

	if _, err = s.chats.Add(ctx, s.userID, peerID, text); err != nil {
		s.log.ErrorContext(ctx, "send message failed",
			slog.String("peer_id", peerID.String()),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// HandleInsert reconciles one pushed message. Messages not involving the
// user are ignored. The peer's preview always follows the push; the message
// is appended only when that peer's conversation is open. It reports
// whether the message concerned the user.
func (s *Service) HandleInsert(ctx context.Context, msg domain.ChatMessage) bool {
	if !msg.Involves(s.userID) {
		return false
	}
	peerID := msg.PeerOf(s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.ensureLocked(peerID)
	c.preview = msg.Text

	if s.open != peerID {
		return true
	}
	for _, m := range c.messages {
		if m.ID == msg.ID {
			return true
		}
	}
	c.messages = append(c.messages, msg)
	c.pushed = append(c.pushed, pushedMessage{msg: msg, gen: c.gen})

	s.log.DebugContext(ctx, "chat message appended", slog.String("peer_id", peerID.String()))
	return true
}
