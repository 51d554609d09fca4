package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/frodoferhat/BreastfeedingTracker/internal/session"
	"github.com/frodoferhat/BreastfeedingTracker/internal/stats"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	stats      *stats.Service
	controller *session.Controller
	webpush    *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, ctrl *session.Controller, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:      s,
		stats:      stats.New(s),
		controller: ctrl,
		webpush:    webpushOptions,
	}
}

func todayDate() string {
	return time.Now().Format("2006-01-02")
}
