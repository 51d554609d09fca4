package store

import (
	"context"
	"fmt"
)

// DayStats aggregates closed sessions starting on one local calendar date.
// A day with no sessions yields the zero row, not an error.
func (s *gormStore) DayStats(ctx context.Context, babyID, date string) (SessionAggRow, error) {
	return s.sessionAgg(ctx, babyID, s.localDate("start_time")+" = ?", date)
}

// RangeStats aggregates closed sessions over an inclusive date range.
func (s *gormStore) RangeStats(ctx context.Context, babyID, startDate, endDate string) (SessionAggRow, error) {
	ld := s.localDate("start_time")
	return s.sessionAgg(ctx, babyID, ld+" >= ? AND "+ld+" <= ?", startDate, endDate)
}

func (s *gormStore) sessionAgg(ctx context.Context, babyID, dateCond string, dateArgs ...any) (SessionAggRow, error) {
	var row SessionAggRow
	err := s.db.WithContext(ctx).
		Table("feeding_sessions").
		Select(`COUNT(*) as total_feedings,
			COALESCE(SUM(duration), 0) as total_duration,
			COALESCE(AVG(duration), 0) as avg_duration,
			COALESCE(MAX(duration), 0) as longest_session,
			COALESCE(MIN(duration), 0) as shortest_session`).
		Where("baby_id = ? AND end_time IS NOT NULL", babyID).
		Where(dateCond, dateArgs...).
		Scan(&row).Error
	if err != nil {
		return SessionAggRow{}, fmt.Errorf("failed to aggregate sessions for baby %s: %w", babyID, err)
	}
	return row, nil
}

// BottleStats aggregates feeding-mode counts and bottle volumes over an
// inclusive date range (pass the same date twice for a single day).
func (s *gormStore) BottleStats(ctx context.Context, babyID, startDate, endDate string) (BottleAggRow, error) {
	var row BottleAggRow
	ld := s.localDate("start_time")
	err := s.db.WithContext(ctx).
		Table("feeding_sessions").
		Select(`COALESCE(SUM(CASE WHEN feeding_mode = 'bottle' THEN 1 ELSE 0 END), 0) as bottle_count,
			COALESCE(SUM(CASE WHEN feeding_mode = 'breast' OR feeding_mode IS NULL THEN 1 ELSE 0 END), 0) as breast_count,
			COALESCE(SUM(CASE WHEN feeding_mode = 'bottle' THEN volume ELSE 0 END), 0) as total_volume,
			COALESCE(AVG(CASE WHEN feeding_mode = 'bottle' AND volume IS NOT NULL THEN volume END), 0) as avg_volume`).
		Where("baby_id = ? AND end_time IS NOT NULL", babyID).
		Where(ld+" >= ? AND "+ld+" <= ?", startDate, endDate).
		Scan(&row).Error
	if err != nil {
		return BottleAggRow{}, fmt.Errorf("failed to aggregate bottle stats for baby %s: %w", babyID, err)
	}
	return row, nil
}

// DiaperStats aggregates diaper logs over an inclusive date range. A
// "both" entry counts toward both tallies, so total <= pee + poop.
func (s *gormStore) DiaperStats(ctx context.Context, babyID, startDate, endDate string) (DiaperAggRow, error) {
	var row DiaperAggRow
	ld := s.localDate("created_at")
	err := s.db.WithContext(ctx).
		Table("diaper_logs").
		Select(`COUNT(*) as total,
			COALESCE(SUM(CASE WHEN type = 'pee' OR type = 'both' THEN 1 ELSE 0 END), 0) as total_pee,
			COALESCE(SUM(CASE WHEN type = 'poop' OR type = 'both' THEN 1 ELSE 0 END), 0) as total_poop`).
		Where("baby_id = ?", babyID).
		Where(ld+" >= ? AND "+ld+" <= ?", startDate, endDate).
		Scan(&row).Error
	if err != nil {
		return DiaperAggRow{}, fmt.Errorf("failed to aggregate diaper stats for baby %s: %w", babyID, err)
	}
	return row, nil
}

// DailyBreakdown returns one aggregate row per day with sessions, newest
// day first. Days with no sessions produce no row.
func (s *gormStore) DailyBreakdown(ctx context.Context, babyID, startDate, endDate string) ([]DailyAggRow, error) {
	var rows []DailyAggRow
	ld := s.localDate("start_time")
	err := s.db.WithContext(ctx).
		Table("feeding_sessions").
		Select(ld + ` as date,
			COUNT(*) as total_feedings,
			COALESCE(SUM(duration), 0) as total_duration,
			COALESCE(AVG(duration), 0) as avg_duration`).
		Where("baby_id = ? AND end_time IS NOT NULL", babyID).
		Where(ld+" >= ? AND "+ld+" <= ?", startDate, endDate).
		Group(ld).
		Order("date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build daily breakdown for baby %s: %w", babyID, err)
	}
	return rows, nil
}

// FirstSessionDate returns the local date of the baby's earliest closed
// session, or "" when the baby has none.
func (s *gormStore) FirstSessionDate(ctx context.Context, babyID string) (string, error) {
	var dates []string
	err := s.db.WithContext(ctx).
		Table("feeding_sessions").
		Select(s.localDate("start_time")+" as date").
		Where("baby_id = ? AND end_time IS NOT NULL", babyID).
		Order("start_time ASC").
		Limit(1).
		Scan(&dates).Error
	if err != nil {
		return "", fmt.Errorf("failed to find first session date for baby %s: %w", babyID, err)
	}
	if len(dates) == 0 {
		return "", nil
	}
	return dates[0], nil
}

// MarkedDates returns the distinct local dates within a "YYYY-MM" month
// that have at least one session, for calendar rendering.
func (s *gormStore) MarkedDates(ctx context.Context, babyID, yearMonth string) ([]string, error) {
	var dates []string
	ld := s.localDate("start_time")
	err := s.db.WithContext(ctx).
		Table("feeding_sessions").
		Distinct(ld+" as date").
		Where("baby_id = ?", babyID).
		Where(ld+" >= ? AND "+ld+" <= ?", yearMonth+"-01", yearMonth+"-31").
		Scan(&dates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query marked dates for baby %s: %w", babyID, err)
	}
	return dates, nil
}
