package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/timeutil"
)

type createDiaperRequest struct {
	Type model.DiaperType `json:"type" binding:"required"`
	At   *time.Time       `json:"at"`
}

// CreateDiaperLog handles POST /api/babies/:id/diapers. The timestamp
// defaults to now; a client may back-date an entry.
func (h *Handler) CreateDiaperLog(c *gin.Context) {
	var req createDiaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Type {
	case model.DiaperPee, model.DiaperPoop, model.DiaperBoth:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be pee, poop or both"})
		return
	}

	at := timeutil.NowInstant()
	if req.At != nil {
		at = *req.At
	}

	id := timeutil.NewID()
	if err := h.store.CreateDiaperLog(c.Request.Context(), id, c.Param("id"), req.Type, at); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "type": req.Type, "createdAt": at})
}

// ListDiaperLogs handles GET /api/babies/:id/diapers with ?date= or
// ?from=&to=, defaulting to today.
func (h *Handler) ListDiaperLogs(c *gin.Context) {
	babyID := c.Param("id")

	from, to := c.Query("from"), c.Query("to")
	if from != "" && to != "" {
		logs, err := h.store.DiaperLogsByDateRange(c.Request.Context(), babyID, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, logs)
		return
	}

	date := c.DefaultQuery("date", todayDate())
	logs, err := h.store.DiaperLogsByDate(c.Request.Context(), babyID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// DeleteDiaperLog handles DELETE /api/diapers/:id.
func (h *Handler) DeleteDiaperLog(c *gin.Context) {
	if err := h.store.DeleteDiaperLog(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
