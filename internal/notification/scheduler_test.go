package notification

import (
	"context"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/frodoferhat/BreastfeedingTracker/config"
	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

// schedStore serves canned session state per baby.
type schedStore struct {
	store.Store

	babies []model.Baby
	open   map[string]*model.FeedingSession
	last   map[string]*model.FeedingSession
}

func (f *schedStore) ListBabies(ctx context.Context) ([]model.Baby, error) {
	return f.babies, nil
}

func (f *schedStore) GetOpenSession(ctx context.Context, babyID string) (*model.FeedingSession, error) {
	return f.open[babyID], nil
}

func (f *schedStore) GetLastClosedSession(ctx context.Context, babyID string) (*model.FeedingSession, error) {
	return f.last[babyID], nil
}

func (f *schedStore) DB() *gorm.DB { return nil }

func reminderConfig() *config.Config {
	return &config.Config{
		Reminder: config.ReminderConfig{
			Enabled:       true,
			SweepInterval: time.Minute,
			Threshold:     2*time.Hour + 30*time.Minute,
		},
		WorkerPool: config.WorkerPoolConfig{Size: 4},
	}
}

func testPushOptions() *webpush.Options {
	return &webpush.Options{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv"}
}

func closedAt(id string, end time.Time) *model.FeedingSession {
	return &model.FeedingSession{ID: id, EndTime: &end}
}

func drainJobs(s *Scheduler) []Job {
	var jobs []Job
	for {
		select {
		case j := <-s.pool.jobs:
			jobs = append(jobs, j)
		default:
			return jobs
		}
	}
}

func TestSweepDispatchesOverdueBaby(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs := &schedStore{
		babies: []model.Baby{{ID: "baby-1", Name: "Nora"}},
		open:   map[string]*model.FeedingSession{},
		last: map[string]*model.FeedingSession{
			"baby-1": closedAt("s1", now.Add(-3*time.Hour)),
		},
	}
	s := NewScheduler(reminderConfig(), fs, testPushOptions())
	s.now = func() time.Time { return now }

	s.SweepOnce(context.Background())

	jobs := drainJobs(s)
	require.Len(t, jobs, 1)
	assert.Equal(t, "baby-1", jobs[0].BabyID)
	assert.Equal(t, "Nora", jobs[0].BabyName)
	assert.Equal(t, int(3*time.Hour.Seconds()), jobs[0].SinceSeconds)
}

func TestSweepSkipsRecentFeed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs := &schedStore{
		babies: []model.Baby{{ID: "baby-1", Name: "Nora"}},
		open:   map[string]*model.FeedingSession{},
		last: map[string]*model.FeedingSession{
			"baby-1": closedAt("s1", now.Add(-time.Hour)),
		},
	}
	s := NewScheduler(reminderConfig(), fs, testPushOptions())
	s.now = func() time.Time { return now }

	s.SweepOnce(context.Background())
	assert.Empty(t, drainJobs(s))
}

func TestSweepSuppressedWhileFeeding(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs := &schedStore{
		babies: []model.Baby{{ID: "baby-1", Name: "Nora"}},
		open: map[string]*model.FeedingSession{
			"baby-1": {ID: "s2"},
		},
		last: map[string]*model.FeedingSession{
			"baby-1": closedAt("s1", now.Add(-5*time.Hour)),
		},
	}
	s := NewScheduler(reminderConfig(), fs, testPushOptions())
	s.now = func() time.Time { return now }

	s.SweepOnce(context.Background())
	assert.Empty(t, drainJobs(s))
}

func TestSweepRemindsOncePerSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fs := &schedStore{
		babies: []model.Baby{{ID: "baby-1", Name: "Nora"}},
		open:   map[string]*model.FeedingSession{},
		last: map[string]*model.FeedingSession{
			"baby-1": closedAt("s1", now.Add(-3*time.Hour)),
		},
	}
	s := NewScheduler(reminderConfig(), fs, testPushOptions())
	s.now = func() time.Time { return now }

	s.SweepOnce(context.Background())
	s.SweepOnce(context.Background())
	assert.Len(t, drainJobs(s), 1, "second sweep must not re-remind for the same session")

	// A newer closed session resets the dedupe.
	fs.last["baby-1"] = closedAt("s2", now.Add(-3*time.Hour))
	s.SweepOnce(context.Background())
	assert.Len(t, drainJobs(s), 1)
}

func TestSweepNoHistoryNoReminder(t *testing.T) {
	fs := &schedStore{
		babies: []model.Baby{{ID: "baby-1", Name: "Nora"}},
		open:   map[string]*model.FeedingSession{},
		last:   map[string]*model.FeedingSession{},
	}
	s := NewScheduler(reminderConfig(), fs, testPushOptions())

	s.SweepOnce(context.Background())
	assert.Empty(t, drainJobs(s))
}

func TestRunDisabled(t *testing.T) {
	cfg := reminderConfig()
	cfg.Reminder.Enabled = false
	s := NewScheduler(cfg, &schedStore{}, testPushOptions())

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when reminders are disabled")
	}
}

func TestRunWithoutPushConfig(t *testing.T) {
	s := NewScheduler(reminderConfig(), &schedStore{}, nil)
	require.Nil(t, s.pool)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when VAPID keys are missing")
	}
}
