package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/service/calendar"
)

type calendarService interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, in calendar.CreateEntryInput) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, in calendar.UpdateEntryInput) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	Entry(ctx context.Context, viewerID, entryID uuid.UUID) (*domain.Entry, error)
	Timeline(ctx context.Context, userID uuid.UUID, in calendar.TimelineInput, view calendar.SocialView) ([]domain.Entry, error)
}

type imageLookup interface {
	GetByID(ctx context.Context, imageID uuid.UUID) (*domain.EntryImage, error)
}

// EntryHandler serves entry CRUD, the timeline and entry social state.
type EntryHandler struct {
	calendar  calendarService
	sessions  sessionProvider
	images    imageLookup
	maxUpload int64
	log       *slog.Logger
}

// NewEntryHandler creates an EntryHandler. maxUpload bounds image uploads
// in bytes.
func NewEntryHandler(cal calendarService, sessions sessionProvider, images imageLookup, maxUpload int64, logger *slog.Logger) *EntryHandler {
	return &EntryHandler{
		calendar:  cal,
		sessions:  sessions,
		images:    images,
		maxUpload: maxUpload,
		log:       logger.With("handler", "entries"),
	}
}

type timelineResponse struct {
	Entries []entryResponse `json:"entries"`
}

// Timeline handles GET /api/timeline?from=&to= (RFC 3339).
func (h *EntryHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	in, err := parseWindow(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	uid := userID(r)
	view, err := h.sessions.Entries(r.Context(), uid)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entries, err := h.calendar.Timeline(r.Context(), uid, in, view)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ids := make([]uuid.UUID, len(entries))
	for i := range entries {
		ids[i] = entries[i].ID
	}
	social := make(map[uuid.UUID]*socialResponse, len(entries))
	for _, p := range view.Projections(ids, uid) {
		social[p.EntryID] = toSocialResponse(p)
	}

	resp := timelineResponse{Entries: make([]entryResponse, 0, len(entries))}
	for i := range entries {
		er := toEntryResponse(&entries[i])
		er.Social = social[entries[i].ID]
		resp.Entries = append(resp.Entries, er)
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseWindow(r *http.Request) (calendar.TimelineInput, error) {
	var (
		in   calendar.TimelineInput
		errs []domain.FieldError
	)
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from", &in.From}, {"to", &in.To}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: p.name, Message: "must be RFC 3339"})
			continue
		}
		*p.dst = t
	}
	if len(errs) > 0 {
		return in, domain.NewValidationErrors(errs)
	}
	return in, nil
}

// Create handles POST /api/entries.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.calendar.CreateEntry(r.Context(), userID(r), req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(e))
}

// Get handles GET /api/entries/{entryID}. The social state is included
// when the caller's session tracks the entry.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	uid := userID(r)
	e, err := h.calendar.Entry(r.Context(), uid, entryID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := toEntryResponse(e)
	if view, err := h.sessions.Entries(r.Context(), uid); err == nil {
		if p, ok := view.Projection(entryID, uid); ok {
			resp.Social = toSocialResponse(p)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Update handles PATCH /api/entries/{entryID}.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, err := h.calendar.UpdateEntry(r.Context(), userID(r), entryID, req.input())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

// Delete handles DELETE /api/entries/{entryID}.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.calendar.DeleteEntry(r.Context(), userID(r), entryID); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
