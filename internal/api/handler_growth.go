package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frodoferhat/BreastfeedingTracker/internal/growth"
	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/timeutil"
)

type createGrowthRequest struct {
	MeasuredAt time.Time `json:"measuredAt" binding:"required"`
	WeightKg   *float64  `json:"weightKg"`
	HeightCm   *float64  `json:"heightCm"`
	HeadCm     *float64  `json:"headCm"`
}

// CreateGrowthMeasurement handles POST /api/babies/:id/growth.
func (h *Handler) CreateGrowthMeasurement(c *gin.Context) {
	var req createGrowthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WeightKg == nil && req.HeightCm == nil && req.HeadCm == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one measurement is required"})
		return
	}

	m := model.GrowthMeasurement{
		ID:         timeutil.NewID(),
		BabyID:     c.Param("id"),
		MeasuredAt: req.MeasuredAt,
		WeightKg:   req.WeightKg,
		HeightCm:   req.HeightCm,
		HeadCm:     req.HeadCm,
	}
	if err := h.store.CreateGrowthMeasurement(c.Request.Context(), &m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListGrowthMeasurements handles GET /api/babies/:id/growth.
func (h *Handler) ListGrowthMeasurements(c *gin.Context) {
	measurements, err := h.store.GrowthMeasurements(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, measurements)
}

// DeleteGrowthMeasurement handles DELETE /api/growth/:id.
func (h *Handler) DeleteGrowthMeasurement(c *gin.Context) {
	if err := h.store.DeleteGrowthMeasurement(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GrowthPercentile handles GET /api/babies/:id/growth/percentile
// ?metric=weight|height|head, evaluated against the latest measurement.
// The percentile is null when the baby's profile lacks a birth date or
// gender, or the age falls outside the reference tables.
func (h *Handler) GrowthPercentile(c *gin.Context) {
	metric := growth.Metric(c.DefaultQuery("metric", string(growth.MetricWeight)))
	switch metric {
	case growth.MetricWeight, growth.MetricHeight, growth.MetricHead:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "metric must be weight, height or head"})
		return
	}

	ctx := c.Request.Context()
	baby, err := h.store.GetBaby(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if baby == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "baby not found"})
		return
	}

	latest, err := h.store.LatestGrowthMeasurement(ctx, baby.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if latest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no growth measurements recorded"})
		return
	}

	var value *float64
	switch metric {
	case growth.MetricWeight:
		value = latest.WeightKg
	case growth.MetricHeight:
		value = latest.HeightCm
	case growth.MetricHead:
		value = latest.HeadCm
	}

	resp := gin.H{
		"metric":     metric,
		"measuredAt": latest.MeasuredAt,
		"value":      value,
		"percentile": nil,
	}
	if value != nil && baby.BirthDate != nil && baby.Gender != nil {
		days := latest.MeasuredAt.Sub(*baby.BirthDate).Hours() / 24
		if days >= 0 {
			ageMonths := days / 30.4375
			resp["percentile"] = growth.Percentile(*value, ageMonths, *baby.Gender, metric)
		}
	}
	c.JSON(http.StatusOK, resp)
}
