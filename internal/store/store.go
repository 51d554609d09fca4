package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
)

// Store defines the persistence operations the tracking core relies on.
type Store interface {
	// Feeding session lifecycle
	CreateSession(ctx context.Context, id, babyID string, start time.Time, mode model.FeedingMode) error
	FinalizeSession(ctx context.Context, id string, end time.Time, duration, first, second, brk int, phasesBlob string) error
	UpdatePhaseSnapshot(ctx context.Context, id, snapshotBlob string) error
	GetOpenSession(ctx context.Context, babyID string) (*model.FeedingSession, error)
	GetLastClosedSession(ctx context.Context, babyID string) (*model.FeedingSession, error)
	DeleteSession(ctx context.Context, id string) error

	// Post-hoc single-field attachments
	AttachVolume(ctx context.Context, id string, volumeML int) error
	AttachAudioNote(ctx context.Context, id, path string) error
	AttachNote(ctx context.Context, id, text string) error

	// Range queries and pre-aggregated statistics (local calendar dates,
	// passed as "YYYY-MM-DD" strings)
	SessionsByDate(ctx context.Context, babyID, date string) ([]model.FeedingSession, error)
	SessionsByDateRange(ctx context.Context, babyID, startDate, endDate string) ([]model.FeedingSession, error)
	DayStats(ctx context.Context, babyID, date string) (SessionAggRow, error)
	RangeStats(ctx context.Context, babyID, startDate, endDate string) (SessionAggRow, error)
	BottleStats(ctx context.Context, babyID, startDate, endDate string) (BottleAggRow, error)
	DailyBreakdown(ctx context.Context, babyID, startDate, endDate string) ([]DailyAggRow, error)
	FirstSessionDate(ctx context.Context, babyID string) (string, error)
	MarkedDates(ctx context.Context, babyID, yearMonth string) ([]string, error)

	// Diaper logs
	CreateDiaperLog(ctx context.Context, id, babyID string, typ model.DiaperType, at time.Time) error
	DeleteDiaperLog(ctx context.Context, id string) error
	DiaperLogsByDate(ctx context.Context, babyID, date string) ([]model.DiaperLog, error)
	DiaperLogsByDateRange(ctx context.Context, babyID, startDate, endDate string) ([]model.DiaperLog, error)
	DiaperStats(ctx context.Context, babyID, startDate, endDate string) (DiaperAggRow, error)

	// Babies
	CreateBaby(ctx context.Context, baby *model.Baby) error
	ListBabies(ctx context.Context) ([]model.Baby, error)
	GetBaby(ctx context.Context, id string) (*model.Baby, error)
	UpdateBaby(ctx context.Context, baby *model.Baby) error
	DeleteBaby(ctx context.Context, id string) error

	// Growth measurements
	CreateGrowthMeasurement(ctx context.Context, m *model.GrowthMeasurement) error
	DeleteGrowthMeasurement(ctx context.Context, id string) error
	GrowthMeasurements(ctx context.Context, babyID string) ([]model.GrowthMeasurement, error)
	LatestGrowthMeasurement(ctx context.Context, babyID string) (*model.GrowthMeasurement, error)

	// Reminder subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)

	// DB exposes the underlying handle for handler-level reads.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// localDate builds the dialect-specific expression extracting the local
// calendar date of a timestamp column. Date bucketing always happens
// SQL-side so both drivers agree with the stats layer.
func (s *gormStore) localDate(col string) string {
	if s.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("(%s)::date", col)
	}
	return fmt.Sprintf("date(%s, 'localtime')", col)
}

// CreateSession inserts an open session row.
func (s *gormStore) CreateSession(ctx context.Context, id, babyID string, start time.Time, mode model.FeedingMode) error {
	session := model.FeedingSession{
		ID:        id,
		BabyID:    babyID,
		StartTime: start,
		Mode:      mode,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create session %s: %w", id, err)
	}
	return nil
}

// FinalizeSession closes a session in a single atomic update: end time,
// totals and the phase history land together or not at all.
func (s *gormStore) FinalizeSession(ctx context.Context, id string, end time.Time, duration, first, second, brk int, phasesBlob string) error {
	res := s.db.WithContext(ctx).Model(&model.FeedingSession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"end_time":               end,
			"duration":               duration,
			"first_breast_duration":  first,
			"second_breast_duration": second,
			"break_duration":         brk,
			"phases":                 phasesBlob,
			"phase_state":            nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to finalize session %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to finalize session %s: no such session", id)
	}
	return nil
}

// UpdatePhaseSnapshot overwrites the recovery snapshot for an open session.
func (s *gormStore) UpdatePhaseSnapshot(ctx context.Context, id, snapshotBlob string) error {
	if err := s.db.WithContext(ctx).Model(&model.FeedingSession{}).
		Where("id = ?", id).
		Update("phase_state", snapshotBlob).Error; err != nil {
		return fmt.Errorf("failed to update phase snapshot for session %s: %w", id, err)
	}
	return nil
}

// GetOpenSession returns the single open session for a baby, or nil.
func (s *gormStore) GetOpenSession(ctx context.Context, babyID string) (*model.FeedingSession, error) {
	var session model.FeedingSession
	err := s.db.WithContext(ctx).
		Where("baby_id = ? AND end_time IS NULL", babyID).
		Order("start_time DESC").
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up open session for baby %s: %w", babyID, err)
	}
	return &session, nil
}

// GetLastClosedSession returns the most recent finalized session, or nil.
func (s *gormStore) GetLastClosedSession(ctx context.Context, babyID string) (*model.FeedingSession, error) {
	var session model.FeedingSession
	err := s.db.WithContext(ctx).
		Where("baby_id = ? AND end_time IS NOT NULL", babyID).
		Order("start_time DESC").
		First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up last closed session for baby %s: %w", babyID, err)
	}
	return &session, nil
}

func (s *gormStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.FeedingSession{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

func (s *gormStore) AttachVolume(ctx context.Context, id string, volumeML int) error {
	return s.attachField(ctx, id, "volume", volumeML)
}

func (s *gormStore) AttachAudioNote(ctx context.Context, id, path string) error {
	return s.attachField(ctx, id, "audio_note_path", path)
}

func (s *gormStore) AttachNote(ctx context.Context, id, text string) error {
	return s.attachField(ctx, id, "note", text)
}

func (s *gormStore) attachField(ctx context.Context, id, column string, value any) error {
	if err := s.db.WithContext(ctx).Model(&model.FeedingSession{}).
		Where("id = ?", id).
		Update(column, value).Error; err != nil {
		return fmt.Errorf("failed to attach %s to session %s: %w", column, id, err)
	}
	return nil
}

// SessionsByDate returns closed and open sessions starting on the given
// local calendar date, newest first.
func (s *gormStore) SessionsByDate(ctx context.Context, babyID, date string) ([]model.FeedingSession, error) {
	var sessions []model.FeedingSession
	err := s.db.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Where(s.localDate("start_time")+" = ?", date).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for %s on %s: %w", babyID, date, err)
	}
	return sessions, nil
}

// SessionsByDateRange returns sessions within an inclusive date range,
// newest first.
func (s *gormStore) SessionsByDateRange(ctx context.Context, babyID, startDate, endDate string) ([]model.FeedingSession, error) {
	var sessions []model.FeedingSession
	ld := s.localDate("start_time")
	err := s.db.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Where(ld+" >= ? AND "+ld+" <= ?", startDate, endDate).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for %s in [%s, %s]: %w", babyID, startDate, endDate, err)
	}
	return sessions, nil
}
