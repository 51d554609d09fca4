package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/timeutil"
)

// Sender sends one web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender sends through the webpush library.
type WebPushSender struct{}

func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Job is one feeding reminder to deliver: which baby, and how long ago
// the last completed feeding ended.
type Job struct {
	BabyID       string
	BabyName     string
	SinceSeconds int
}

// reminderPayload is the JSON the service worker renders.
type reminderPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

// WorkerPool delivers feeding reminders to every subscription of a
// baby. Sends happen off the scheduler goroutine so a slow push
// endpoint never delays a sweep.
type WorkerPool struct {
	size    int
	jobs    chan Job
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Job, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines. They exit when ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Reminder worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			wp.remind(ctx, job)
		case <-ctx.Done():
			log.Printf("Reminder worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a reminder for delivery.
func (wp *WorkerPool) Dispatch(job Job) {
	wp.jobs <- job
}

// remind fetches the baby's subscriptions and pushes the reminder to
// each of them.
func (wp *WorkerPool) remind(ctx context.Context, job Job) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("baby_id = ?", job.BabyID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for baby %s: %v", job.BabyID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(reminderPayload{
		Title: "Time to feed " + job.BabyName,
		Body:  "Last feeding ended " + timeutil.FormatHuman(job.SinceSeconds) + " ago.",
		Tag:   "feeding-reminder-" + job.BabyID,
	})
	if err != nil {
		log.Printf("Error encoding reminder payload for baby %s: %v", job.BabyID, err)
		return
	}

	log.Printf("Sending %d feeding reminders for baby %s", len(subscriptions), job.BabyID)
	for _, sub := range subscriptions {
		wp.push(ctx, sub, payload)
	}
}

func (wp *WorkerPool) push(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending reminder to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
