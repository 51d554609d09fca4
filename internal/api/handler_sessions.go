package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/session"
)

type startSessionRequest struct {
	FeedingMode model.FeedingMode `json:"feedingMode"`
}

// StartSession handles POST /api/babies/:id/sessions/start. Starting
// for a different baby than the active one switches the live context
// first.
func (h *Handler) StartSession(c *gin.Context) {
	// An empty body means a breast session.
	var req startSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	mode := req.FeedingMode
	if mode == "" {
		mode = model.ModeBreast
	}
	if mode != model.ModeBreast && mode != model.ModeBottle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedingMode must be breast or bottle"})
		return
	}

	err := h.controller.Start(c.Request.Context(), c.Param("id"), mode)
	switch {
	case errors.Is(err, session.ErrDebounced):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "tap ignored, try again shortly"})
	case errors.Is(err, session.ErrSessionOpen):
		c.JSON(http.StatusConflict, gin.H{"error": "a session is already open"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, h.activeView())
	}
}

// StopSession handles POST /api/babies/:id/sessions/stop. The response
// carries the finalized totals so the UI can prompt for volume or a
// note.
func (h *Handler) StopSession(c *gin.Context) {
	if err := h.ensureBaby(c); err != nil {
		return
	}

	result, err := h.controller.Stop(c.Request.Context())
	switch {
	case errors.Is(err, session.ErrDebounced):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "tap ignored, try again shortly"})
	case errors.Is(err, session.ErrNoOpenSession):
		c.JSON(http.StatusConflict, gin.H{"error": "no open session"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, result)
	}
}

// SwitchSides handles POST /api/babies/:id/sessions/switch. Bottle
// sessions have no sides to switch.
func (h *Handler) SwitchSides(c *gin.Context) {
	if err := h.ensureBaby(c); err != nil {
		return
	}
	if !h.rejectBottleTransition(c) {
		return
	}
	h.controller.SwitchSides(c.Request.Context())
	c.JSON(http.StatusOK, h.activeView())
}

// ToggleBreak handles POST /api/babies/:id/sessions/break.
func (h *Handler) ToggleBreak(c *gin.Context) {
	if err := h.ensureBaby(c); err != nil {
		return
	}
	if !h.rejectBottleTransition(c) {
		return
	}
	h.controller.ToggleBreak(c.Request.Context())
	c.JSON(http.StatusOK, h.activeView())
}

// ActiveSession handles GET /api/babies/:id/sessions/active: the live
// elapsed view plus the breast suggestion. Never cached.
func (h *Handler) ActiveSession(c *gin.Context) {
	if err := h.ensureBaby(c); err != nil {
		return
	}
	c.JSON(http.StatusOK, h.activeView())
}

type activeResponse struct {
	session.Elapsed
	SuggestedSide *string `json:"suggestedSide"`
	LastWasBottle bool    `json:"lastWasBottle"`
}

func (h *Handler) activeView() activeResponse {
	side, lastWasBottle := h.controller.Suggestion()
	resp := activeResponse{
		Elapsed:       h.controller.Elapsed(),
		LastWasBottle: lastWasBottle,
	}
	if side != nil {
		s := string(*side)
		resp.SuggestedSide = &s
	}
	return resp
}

// ensureBaby points the controller at the route's baby, restoring its
// open session if it has one. Reports and writes the error itself.
func (h *Handler) ensureBaby(c *gin.Context) error {
	id := c.Param("id")
	if h.controller.BabyID() == id {
		return nil
	}
	if err := h.controller.RestoreForBaby(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return err
	}
	return nil
}

// rejectBottleTransition writes a 409 and reports false when the open
// session is bottle mode.
func (h *Handler) rejectBottleTransition(c *gin.Context) bool {
	view := h.controller.Elapsed()
	if view.Feeding && view.Mode == model.ModeBottle {
		c.JSON(http.StatusConflict, gin.H{"error": "bottle sessions have no breast transitions"})
		return false
	}
	return true
}

// ListSessions handles GET /api/babies/:id/sessions with either
// ?date=YYYY-MM-DD or ?from=...&to=... .
func (h *Handler) ListSessions(c *gin.Context) {
	babyID := c.Param("id")

	if date := c.Query("date"); date != "" {
		sessions, err := h.store.SessionsByDate(c.Request.Context(), babyID, date)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessions)
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date or from/to is required"})
		return
	}
	sessions, err := h.store.SessionsByDateRange(c.Request.Context(), babyID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

type attachVolumeRequest struct {
	Volume int `json:"volume" binding:"required,min=1"`
}

// AttachVolume handles PATCH /api/sessions/:id/volume, recorded after a
// bottle feed from the post-stop prompt.
func (h *Handler) AttachVolume(c *gin.Context) {
	var req attachVolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.AttachVolume(c.Request.Context(), c.Param("id"), req.Volume); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type attachNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// AttachNote handles PATCH /api/sessions/:id/note.
func (h *Handler) AttachNote(c *gin.Context) {
	var req attachNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.AttachNote(c.Request.Context(), c.Param("id"), req.Note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type attachAudioRequest struct {
	Path string `json:"path" binding:"required"`
}

// AttachAudio handles PATCH /api/sessions/:id/audio.
func (h *Handler) AttachAudio(c *gin.Context) {
	var req attachAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.AttachAudioNote(c.Request.Context(), c.Param("id"), req.Path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.store.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
