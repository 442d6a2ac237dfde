package rest

import (
	"log/slog"
	"net/http"
)

// VisitedHandler serves the caller's recently visited profiles.
type VisitedHandler struct {
	sessions sessionProvider
	log      *slog.Logger
}

// NewVisitedHandler creates a VisitedHandler.
func NewVisitedHandler(sessions sessionProvider, logger *slog.Logger) *VisitedHandler {
	return &VisitedHandler{sessions: sessions, log: logger.With("handler", "visited")}
}

// List handles GET /api/visited.
func (h *VisitedHandler) List(w http.ResponseWriter, r *http.Request) {
	store, err := h.sessions.Visited(r.Context(), userID(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visitedResponse{UserIDs: store.Get()})
}

// Add handles POST /api/visited/{userID}.
func (h *VisitedHandler) Add(w http.ResponseWriter, r *http.Request) {
	visitedID, err := uuidParam(r, "userID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	store, err := h.sessions.Visited(r.Context(), userID(r))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := store.Add(r.Context(), visitedID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visitedResponse{UserIDs: store.Get()})
}
