package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/timeutil"
)

type babyRequest struct {
	Name      string        `json:"name" binding:"required"`
	BirthDate *time.Time    `json:"birthDate"`
	Gender    *model.Gender `json:"gender"`
}

// CreateBaby handles POST /api/babies.
func (h *Handler) CreateBaby(c *gin.Context) {
	var req babyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Gender != nil && *req.Gender != model.GenderBoy && *req.Gender != model.GenderGirl {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gender must be boy or girl"})
		return
	}

	baby := model.Baby{
		ID:        timeutil.NewID(),
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	}
	if err := h.store.CreateBaby(c.Request.Context(), &baby); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, baby)
}

// ListBabies handles GET /api/babies.
func (h *Handler) ListBabies(c *gin.Context) {
	babies, err := h.store.ListBabies(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, babies)
}

// GetBaby handles GET /api/babies/:id.
func (h *Handler) GetBaby(c *gin.Context) {
	baby, err := h.store.GetBaby(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if baby == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "baby not found"})
		return
	}
	c.JSON(http.StatusOK, baby)
}

// UpdateBaby handles PUT /api/babies/:id.
func (h *Handler) UpdateBaby(c *gin.Context) {
	var req babyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	baby, err := h.store.GetBaby(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if baby == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "baby not found"})
		return
	}

	baby.Name = req.Name
	baby.BirthDate = req.BirthDate
	baby.Gender = req.Gender
	if err := h.store.UpdateBaby(c.Request.Context(), baby); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, baby)
}

// DeleteBaby handles DELETE /api/babies/:id. All of the baby's records
// go with it.
func (h *Handler) DeleteBaby(c *gin.Context) {
	id := c.Param("id")
	if h.controller.BabyID() == id {
		// Drop the live context so a deleted baby's session can't keep
		// ticking.
		if err := h.controller.RestoreForBaby(c.Request.Context(), ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if err := h.store.DeleteBaby(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
