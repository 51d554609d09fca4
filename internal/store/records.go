package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frodoferhat/BreastfeedingTracker/internal/model"
)

// --- Diaper logs ---

func (s *gormStore) CreateDiaperLog(ctx context.Context, id, babyID string, typ model.DiaperType, at time.Time) error {
	entry := model.DiaperLog{ID: id, BabyID: babyID, Type: typ, CreatedAt: at}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to create diaper log %s: %w", id, err)
	}
	return nil
}

func (s *gormStore) DeleteDiaperLog(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.DiaperLog{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete diaper log %s: %w", id, err)
	}
	return nil
}

func (s *gormStore) DiaperLogsByDate(ctx context.Context, babyID, date string) ([]model.DiaperLog, error) {
	return s.diaperLogs(ctx, babyID, s.localDate("created_at")+" = ?", date)
}

func (s *gormStore) DiaperLogsByDateRange(ctx context.Context, babyID, startDate, endDate string) ([]model.DiaperLog, error) {
	ld := s.localDate("created_at")
	return s.diaperLogs(ctx, babyID, ld+" >= ? AND "+ld+" <= ?", startDate, endDate)
}

func (s *gormStore) diaperLogs(ctx context.Context, babyID, dateCond string, dateArgs ...any) ([]model.DiaperLog, error) {
	var logs []model.DiaperLog
	err := s.db.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Where(dateCond, dateArgs...).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query diaper logs for baby %s: %w", babyID, err)
	}
	return logs, nil
}

// --- Babies ---

func (s *gormStore) CreateBaby(ctx context.Context, baby *model.Baby) error {
	if err := s.db.WithContext(ctx).Create(baby).Error; err != nil {
		return fmt.Errorf("failed to create baby: %w", err)
	}
	return nil
}

func (s *gormStore) ListBabies(ctx context.Context) ([]model.Baby, error) {
	var babies []model.Baby
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&babies).Error; err != nil {
		return nil, fmt.Errorf("failed to list babies: %w", err)
	}
	return babies, nil
}

func (s *gormStore) GetBaby(ctx context.Context, id string) (*model.Baby, error) {
	var baby model.Baby
	err := s.db.WithContext(ctx).First(&baby, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baby %s: %w", id, err)
	}
	return &baby, nil
}

func (s *gormStore) UpdateBaby(ctx context.Context, baby *model.Baby) error {
	res := s.db.WithContext(ctx).Model(&model.Baby{}).
		Where("id = ?", baby.ID).
		Updates(map[string]any{
			"name":       baby.Name,
			"birth_date": baby.BirthDate,
			"gender":     baby.Gender,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update baby %s: %w", baby.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update baby %s: not found", baby.ID)
	}
	return nil
}

func (s *gormStore) DeleteBaby(ctx context.Context, id string) error {
	// Dependent rows go with the baby in one transaction; SQLite installs
	// may run without foreign_keys enabled.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&model.FeedingSession{}, &model.DiaperLog{},
			&model.GrowthMeasurement{}, &model.PushSubscription{},
		} {
			if err := tx.Where("baby_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete dependents of baby %s: %w", id, err)
			}
		}
		if err := tx.Delete(&model.Baby{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete baby %s: %w", id, err)
		}
		return nil
	})
}

// --- Growth measurements ---

func (s *gormStore) CreateGrowthMeasurement(ctx context.Context, m *model.GrowthMeasurement) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create growth measurement: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteGrowthMeasurement(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&model.GrowthMeasurement{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete growth measurement %s: %w", id, err)
	}
	return nil
}

func (s *gormStore) GrowthMeasurements(ctx context.Context, babyID string) ([]model.GrowthMeasurement, error) {
	var list []model.GrowthMeasurement
	err := s.db.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("measured_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list growth measurements for baby %s: %w", babyID, err)
	}
	return list, nil
}

func (s *gormStore) LatestGrowthMeasurement(ctx context.Context, babyID string) (*model.GrowthMeasurement, error) {
	var m model.GrowthMeasurement
	err := s.db.WithContext(ctx).
		Where("baby_id = ?", babyID).
		Order("measured_at DESC").
		First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest growth measurement for baby %s: %w", babyID, err)
	}
	return &m, nil
}

// --- Reminder subscriptions ---

func (s *gormStore) UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "baby_id"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *gormStore) GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error) {
	var sub model.PushSubscription
	err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return &sub, nil
}
