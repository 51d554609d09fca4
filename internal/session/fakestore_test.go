package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

// fakeStore is an in-memory store.Store good enough for controller tests.
// It records the order of persistence operations so ordering invariants
// can be asserted.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*model.FeedingSession
	ops      []string
	failNext map[string]error

	// beforeSnapshot, when set, runs outside the lock before a snapshot
	// write lands, so tests can hold selected writes in flight.
	beforeSnapshot func(blob string)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[string]*model.FeedingSession),
		failNext: make(map[string]error),
	}
}

func (f *fakeStore) record(op string) error {
	f.ops = append(f.ops, op)
	if err, ok := f.failNext[op]; ok {
		delete(f.failNext, op)
		return err
	}
	return nil
}

func (f *fakeStore) opLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.ops))
	copy(out, f.ops)
	return out
}

func (f *fakeStore) session(id string) *model.FeedingSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		cp := *s
		return &cp
	}
	return nil
}

func (f *fakeStore) CreateSession(ctx context.Context, id, babyID string, start time.Time, mode model.FeedingMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("create"); err != nil {
		return err
	}
	f.sessions[id] = &model.FeedingSession{
		ID: id, BabyID: babyID, StartTime: start, Mode: mode, CreatedAt: start,
	}
	return nil
}

func (f *fakeStore) FinalizeSession(ctx context.Context, id string, end time.Time, duration, first, second, brk int, phasesBlob string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("finalize"); err != nil {
		return err
	}
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("no such session %s", id)
	}
	s.EndTime = &end
	s.Duration = &duration
	s.FirstBreastDuration = &first
	s.SecondBreastDuration = &second
	s.BreakDuration = &brk
	s.Phases = &phasesBlob
	s.PhaseState = nil
	return nil
}

func (f *fakeStore) UpdatePhaseSnapshot(ctx context.Context, id, blob string) error {
	f.mu.Lock()
	hook := f.beforeSnapshot
	f.mu.Unlock()
	if hook != nil {
		hook(blob)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("snapshot"); err != nil {
		return err
	}
	if s, ok := f.sessions[id]; ok {
		b := blob
		s.PhaseState = &b
	}
	return nil
}

func (f *fakeStore) GetOpenSession(ctx context.Context, babyID string) (*model.FeedingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("getOpen"); err != nil {
		return nil, err
	}
	for _, s := range f.sessions {
		if s.BabyID == babyID && s.EndTime == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetLastClosedSession(ctx context.Context, babyID string) (*model.FeedingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("getLastClosed"); err != nil {
		return nil, err
	}
	var latest *model.FeedingSession
	for _, s := range f.sessions {
		if s.BabyID != babyID || s.EndTime == nil {
			continue
		}
		if latest == nil || s.StartTime.After(latest.StartTime) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeStore) DeleteSession(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeStore) AttachVolume(ctx context.Context, id string, volumeML int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[id]; ok {
		s.Volume = &volumeML
	}
	return nil
}

func (f *fakeStore) AttachAudioNote(ctx context.Context, id, path string) error { return nil }
func (f *fakeStore) AttachNote(ctx context.Context, id, text string) error      { return nil }

func (f *fakeStore) SessionsByDate(ctx context.Context, babyID, date string) ([]model.FeedingSession, error) {
	return nil, nil
}

func (f *fakeStore) SessionsByDateRange(ctx context.Context, babyID, startDate, endDate string) ([]model.FeedingSession, error) {
	return nil, nil
}

func (f *fakeStore) DayStats(ctx context.Context, babyID, date string) (store.SessionAggRow, error) {
	return store.SessionAggRow{}, nil
}

func (f *fakeStore) RangeStats(ctx context.Context, babyID, startDate, endDate string) (store.SessionAggRow, error) {
	return store.SessionAggRow{}, nil
}

func (f *fakeStore) BottleStats(ctx context.Context, babyID, startDate, endDate string) (store.BottleAggRow, error) {
	return store.BottleAggRow{}, nil
}

func (f *fakeStore) DailyBreakdown(ctx context.Context, babyID, startDate, endDate string) ([]store.DailyAggRow, error) {
	return nil, nil
}

func (f *fakeStore) FirstSessionDate(ctx context.Context, babyID string) (string, error) {
	return "", nil
}

func (f *fakeStore) MarkedDates(ctx context.Context, babyID, yearMonth string) ([]string, error) {
	return nil, nil
}

func (f *fakeStore) CreateDiaperLog(ctx context.Context, id, babyID string, typ model.DiaperType, at time.Time) error {
	return nil
}

func (f *fakeStore) DeleteDiaperLog(ctx context.Context, id string) error { return nil }

func (f *fakeStore) DiaperLogsByDate(ctx context.Context, babyID, date string) ([]model.DiaperLog, error) {
	return nil, nil
}

func (f *fakeStore) DiaperLogsByDateRange(ctx context.Context, babyID, startDate, endDate string) ([]model.DiaperLog, error) {
	return nil, nil
}

func (f *fakeStore) DiaperStats(ctx context.Context, babyID, startDate, endDate string) (store.DiaperAggRow, error) {
	return store.DiaperAggRow{}, nil
}

func (f *fakeStore) CreateBaby(ctx context.Context, baby *model.Baby) error { return nil }
func (f *fakeStore) ListBabies(ctx context.Context) ([]model.Baby, error)   { return nil, nil }
func (f *fakeStore) GetBaby(ctx context.Context, id string) (*model.Baby, error) {
	return nil, nil
}
func (f *fakeStore) UpdateBaby(ctx context.Context, baby *model.Baby) error { return nil }
func (f *fakeStore) DeleteBaby(ctx context.Context, id string) error        { return nil }

func (f *fakeStore) CreateGrowthMeasurement(ctx context.Context, m *model.GrowthMeasurement) error {
	return nil
}

func (f *fakeStore) DeleteGrowthMeasurement(ctx context.Context, id string) error { return nil }

func (f *fakeStore) GrowthMeasurements(ctx context.Context, babyID string) ([]model.GrowthMeasurement, error) {
	return nil, nil
}

func (f *fakeStore) LatestGrowthMeasurement(ctx context.Context, babyID string) (*model.GrowthMeasurement, error) {
	return nil, nil
}

func (f *fakeStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	return nil
}

func (f *fakeStore) DeleteSubscription(ctx context.Context, endpoint string) error { return nil }

func (f *fakeStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	return nil, nil
}

func (f *fakeStore) DB() *gorm.DB { return nil }
