package notification

import (
	"context"
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/frodoferhat/BreastfeedingTracker/config"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

// Scheduler periodically looks for babies overdue for a feeding and
// dispatches reminder jobs to the worker pool. A baby is due when its
// last completed session ended more than the configured threshold ago,
// no session is currently open, and no reminder has been sent for that
// session yet.
type Scheduler struct {
	cfg   *config.Config
	store store.Store
	pool  *WorkerPool
	now   func() time.Time

	// remindedFor maps baby ID to the session ID last reminded about,
	// so a baby is nagged once per feeding gap, not once per sweep.
	remindedFor map[string]string
}

// NewScheduler wires a scheduler onto the shared webpush options. With
// nil options (VAPID keys unset) no worker pool is created and Run
// refuses to start.
func NewScheduler(cfg *config.Config, s store.Store, webpushOptions *webpush.Options) *Scheduler {
	sch := &Scheduler{
		cfg:         cfg,
		store:       s,
		now:         time.Now,
		remindedFor: make(map[string]string),
	}
	if webpushOptions != nil {
		sch.pool = NewWorkerPool(cfg.WorkerPool.Size, s.DB(), webpushOptions)
	}
	return sch
}

// Run sweeps in a loop until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.cfg.Reminder.Enabled {
		log.Println("Feeding reminders are disabled. Not starting.")
		return
	}
	if s.pool == nil {
		log.Println("Feeding reminders are enabled but VAPID keys are not configured. Not starting.")
		return
	}
	log.Println("Starting feeding reminder scheduler...")

	s.pool.Start(ctx)

	s.SweepOnce(ctx)

	timer := time.NewTimer(s.cfg.Reminder.SweepInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Reminder scheduler shutting down.")
			return
		case <-timer.C:
			s.SweepOnce(ctx)
			timer.Reset(s.cfg.Reminder.SweepInterval)
		}
	}
}

// SweepOnce checks every baby once and dispatches reminders for the
// overdue ones.
func (s *Scheduler) SweepOnce(ctx context.Context) {
	babies, err := s.store.ListBabies(ctx)
	if err != nil {
		log.Printf("Reminder sweep: failed to list babies: %v", err)
		return
	}

	now := s.now()
	for _, baby := range babies {
		due, job, err := s.check(ctx, baby.ID, baby.Name, now)
		if err != nil {
			log.Printf("Reminder sweep: check failed for baby %s: %v", baby.ID, err)
			continue
		}
		if due {
			s.pool.Dispatch(job)
		}
	}
}

func (s *Scheduler) check(ctx context.Context, babyID, name string, now time.Time) (bool, Job, error) {
	// An open session suppresses reminders outright.
	open, err := s.store.GetOpenSession(ctx, babyID)
	if err != nil {
		return false, Job{}, err
	}
	if open != nil {
		return false, Job{}, nil
	}

	last, err := s.store.GetLastClosedSession(ctx, babyID)
	if err != nil {
		return false, Job{}, err
	}
	if last == nil || last.EndTime == nil {
		return false, Job{}, nil
	}

	since := now.Sub(*last.EndTime)
	if since < s.cfg.Reminder.Threshold {
		return false, Job{}, nil
	}
	if s.remindedFor[babyID] == last.ID {
		return false, Job{}, nil
	}

	s.remindedFor[babyID] = last.ID
	return true, Job{
		BabyID:       babyID,
		BabyName:     name,
		SinceSeconds: int(since.Seconds()),
	}, nil
}
