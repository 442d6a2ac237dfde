package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/himalink/internal/domain"
	"github.com/heartmarshall/himalink/internal/service/entrysync"
)

// visibleEntry resolves {entryID}, checks the caller may see it and
// returns the caller's entry synchronizer.
func (h *EntryHandler) visibleEntry(w http.ResponseWriter, r *http.Request) (*domain.Entry, entrySync, bool) {
	entryID, err := uuidParam(r, "entryID")
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, nil, false
	}

	uid := userID(r)
	e, err := h.calendar.Entry(r.Context(), uid, entryID)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, nil, false
	}

	view, err := h.sessions.Entries(r.Context(), uid)
	if err != nil {
		handleError(h.log, w, r, err)
		return nil, nil, false
	}
	return e, view, true
}

func (h *EntryHandler) writeProjection(w http.ResponseWriter, r *http.Request, view entrySync, entryID uuid.UUID, status int) {
	p, ok := view.Projection(entryID, userID(r))
	if !ok {
		writeError(w, http.StatusNotFound, "entry not loaded")
		return
	}
	writeJSON(w, status, toSocialResponse(p))
}

// writeMutated answers a successful mutation. An entry whose social state
// has never been fetched has nothing to render, so the answer is empty.
func (h *EntryHandler) writeMutated(w http.ResponseWriter, r *http.Request, view entrySync, entryID uuid.UUID, status int) {
	p, ok := view.Projection(entryID, userID(r))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, status, toSocialResponse(p))
}

// Social handles GET /api/entries/{entryID}/social.
func (h *EntryHandler) Social(w http.ResponseWriter, r *http.Request) {
	e, view, ok := h.visibleEntry(w, r)
	if !ok {
		return
	}
	h.writeProjection(w, r, view, e.ID, http.StatusOK)
}

// ToggleReaction handles POST /api/entries/{entryID}/reactions.
func (h *EntryHandler) ToggleReaction(w http.ResponseWriter, r *http.Request) {
	var req reactionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	kind, err := domain.ParseReactionKind(req.Kind)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, view, ok := h.visibleEntry(w, r)
	if !ok {
		return
	}
	if err := view.ToggleReaction(r.Context(), e.ID, kind, userID(r)); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeMutated(w, r, view, e.ID, http.StatusOK)
}

// SubmitComment handles POST /api/entries/{entryID}/comments.
func (h *EntryHandler) SubmitComment(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, view, ok := h.visibleEntry(w, r)
	if !ok {
		return
	}
	if err := view.SubmitComment(r.Context(), e.ID, req.Text, userID(r)); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeMutated(w, r, view, e.ID, http.StatusCreated)
}

// UploadImage handles POST /api/entries/{entryID}/images with a multipart
// "file" part and an optional "caption" field. Owner only.
func (h *EntryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	e, view, ok := h.visibleEntry(w, r)
	if !ok {
		return
	}
	if !e.IsOwnedBy(userID(r)) {
		handleError(h.log, w, r, domain.ErrForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		handleError(h.log, w, r, domain.NewValidationError("file", "invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("file", "required"))
		return
	}
	defer file.Close()

	upload := entrysync.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	if caption := r.FormValue("caption"); caption != "" {
		upload.Caption = &caption
	}

	if err := view.UploadImage(r.Context(), e.ID, upload); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.writeMutated(w, r, view, e.ID, http.StatusCreated)
}

// DeleteImage handles DELETE /api/entries/{entryID}/images/{imageID}.
// Owner only.
func (h *EntryHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuidParam(r, "imageID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	e, view, ok := h.visibleEntry(w, r)
	if !ok {
		return
	}
	if !e.IsOwnedBy(userID(r)) {
		handleError(h.log, w, r, domain.ErrForbidden)
		return
	}

	img, err := h.images.GetByID(r.Context(), imageID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if img.EntryID != e.ID {
		handleError(h.log, w, r, fmt.Errorf("image %s on entry %s: %w", imageID, e.ID, domain.ErrNotFound))
		return
	}

	if err := view.DeleteImage(r.Context(), e.ID, imageID, img.ImageURL); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
