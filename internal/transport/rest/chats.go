package rest

import (
	"log/slog"
	"net/http"
)

// ChatHandler serves the caller's direct-message conversations.
type ChatHandler struct {
	sessions sessionProvider
	log      *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(sessions sessionProvider, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{sessions: sessions, log: logger.With("handler", "chats")}
}

type conversationsResponse struct {
	Conversations []conversationResponse `json:"conversations"`
}

// List handles GET /api/chats: reloads followed peers and their previews.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	chat, err := h.sessions.Chat(r.Context(), userID(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if _, err := chat.LoadPeers(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	convs := chat.Conversations()
	resp := conversationsResponse{Conversations: make([]conversationResponse, 0, len(convs))}
	for _, c := range convs {
		resp.Conversations = append(resp.Conversations, toConversationResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Open handles GET /api/chats/{peerID}: opens the conversation, reloads it
// and returns its messages.
func (h *ChatHandler) Open(w http.ResponseWriter, r *http.Request) {
	peerID, err := uuidParam(r, "peerID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	chat, err := h.sessions.Chat(r.Context(), userID(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := chat.OpenConversation(r.Context(), peerID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	c, ok := chat.Conversation(peerID)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, toConversationDetail(c))
}

// Send handles POST /api/chats/{peerID}/messages. The message shows up
// through the insert stream, so the response carries no body.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	peerID, err := uuidParam(r, "peerID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	chat, err := h.sessions.Chat(r.Context(), userID(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := chat.SendMessage(r.Context(), peerID, req.Text); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// Close handles DELETE /api/chats/open.
func (h *ChatHandler) Close(w http.ResponseWriter, r *http.Request) {
	chat, err := h.sessions.Chat(r.Context(), userID(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	chat.CloseConversation()
	w.WriteHeader(http.StatusNoContent)
}
