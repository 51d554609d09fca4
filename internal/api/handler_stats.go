package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DayStats handles GET /api/babies/:id/stats/day?date=YYYY-MM-DD,
// defaulting to today.
func (h *Handler) DayStats(c *gin.Context) {
	date := c.DefaultQuery("date", todayDate())
	out, err := h.stats.Day(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// WeekStats handles GET /api/babies/:id/stats/week. Without explicit
// start/end it covers the current Monday-to-Sunday week.
func (h *Handler) WeekStats(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		start, end = currentWeek()
	}
	out, err := h.stats.Week(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// BottleStats handles GET /api/babies/:id/stats/bottle.
func (h *Handler) BottleStats(c *gin.Context) {
	start, end := rangeOrToday(c)
	out, err := h.stats.Bottle(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// DiaperStats handles GET /api/babies/:id/stats/diaper.
func (h *Handler) DiaperStats(c *gin.Context) {
	start, end := rangeOrToday(c)
	out, err := h.stats.Diaper(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// History handles GET /api/babies/:id/stats/history?period=week|month:
// rollups walking back to the first recorded session, empty windows
// omitted.
func (h *Handler) History(c *gin.Context) {
	switch c.DefaultQuery("period", "week") {
	case "week":
		out, err := h.stats.WeeklyHistory(c.Request.Context(), c.Param("id"), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	case "month":
		out, err := h.stats.MonthlyHistory(c.Request.Context(), c.Param("id"), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, out)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be week or month"})
	}
}

// DailyBreakdown handles GET /api/babies/:id/stats/daily?from=&to=.
func (h *Handler) DailyBreakdown(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}
	out, err := h.stats.Daily(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Calendar handles GET /api/babies/:id/stats/calendar?month=YYYY-MM:
// the dates in that month holding at least one session, for calendar
// dot markers.
func (h *Handler) Calendar(c *gin.Context) {
	month := c.DefaultQuery("month", time.Now().Format("2006-01"))
	if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	dates, err := h.store.MarkedDates(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "dates": dates})
}

func rangeOrToday(c *gin.Context) (string, string) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		today := todayDate()
		return today, today
	}
	return start, end
}

func currentWeek() (string, string) {
	now := time.Now()
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)
	return monday.Format("2006-01-02"), monday.AddDate(0, 0, 6).Format("2006-01-02")
}
