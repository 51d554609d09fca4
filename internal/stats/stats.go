// Package stats composes the store's pre-aggregated rows into the
// figures the API serves. It is read-only and holds no state, so two
// calls against unchanged data always return identical results.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/frodoferhat/BreastfeedingTracker/internal/store"
)

const dateLayout = "2006-01-02"

// Service answers statistics queries for one store.
type Service struct {
	store store.Store
}

func New(s store.Store) *Service {
	return &Service{store: s}
}

// DayStatistics summarizes the closed sessions of one local calendar
// date. A day without sessions yields the zero value.
type DayStatistics struct {
	Date            string `json:"date"`
	TotalFeedings   int64  `json:"totalFeedings"`
	TotalDuration   int    `json:"totalDuration"`
	AverageDuration int    `json:"averageDuration"`
	LongestSession  int    `json:"longestSession"`
	ShortestSession int    `json:"shortestSession"`
}

// WeekStatistics summarizes an inclusive date range, conventionally a
// Monday-to-Sunday week.
type WeekStatistics struct {
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	TotalFeedings   int64   `json:"totalFeedings"`
	TotalDuration   int     `json:"totalDuration"`
	AverageDuration int     `json:"averageDuration"`
	FeedingsPerDay  float64 `json:"feedingsPerDay"`
}

// MonthStatistics summarizes one calendar month.
type MonthStatistics struct {
	Month           string `json:"month"`
	TotalFeedings   int64  `json:"totalFeedings"`
	TotalDuration   int    `json:"totalDuration"`
	AverageDuration int    `json:"averageDuration"`
}

// BottleStatistics splits a range by feeding mode. Volume figures cover
// bottle sessions only.
type BottleStatistics struct {
	BottleCount   int64 `json:"bottleCount"`
	BreastCount   int64 `json:"breastCount"`
	TotalVolume   int   `json:"totalVolume"`
	AverageVolume int   `json:"averageVolume"`
}

// DiaperStatistics tallies diaper logs over a range. A "both" entry
// counts toward pee and poop alike and once toward Total, so Total is
// at most TotalPee+TotalPoop. PerDay is populated for multi-day ranges
// and rounded to one decimal.
type DiaperStatistics struct {
	TotalPee  int64   `json:"totalPee"`
	TotalPoop int64   `json:"totalPoop"`
	Total     int64   `json:"total"`
	PerDay    float64 `json:"perDay,omitempty"`
}

// Day returns the aggregate for one local calendar date.
func (s *Service) Day(ctx context.Context, babyID, date string) (DayStatistics, error) {
	row, err := s.store.DayStats(ctx, babyID, date)
	if err != nil {
		return DayStatistics{}, err
	}
	return dayFromRow(date, row), nil
}

// Week returns the aggregate over an inclusive date range plus the
// average number of feedings per day in it.
func (s *Service) Week(ctx context.Context, babyID, startDate, endDate string) (WeekStatistics, error) {
	row, err := s.store.RangeStats(ctx, babyID, startDate, endDate)
	if err != nil {
		return WeekStatistics{}, err
	}
	days, err := rangeDays(startDate, endDate)
	if err != nil {
		return WeekStatistics{}, err
	}
	return WeekStatistics{
		StartDate:       startDate,
		EndDate:         endDate,
		TotalFeedings:   row.TotalFeedings,
		TotalDuration:   row.TotalDuration,
		AverageDuration: roundAvg(row.AvgDuration),
		FeedingsPerDay:  perDay(row.TotalFeedings, days),
	}, nil
}

// Bottle returns the feeding-mode split over an inclusive date range.
func (s *Service) Bottle(ctx context.Context, babyID, startDate, endDate string) (BottleStatistics, error) {
	row, err := s.store.BottleStats(ctx, babyID, startDate, endDate)
	if err != nil {
		return BottleStatistics{}, err
	}
	return BottleStatistics{
		BottleCount:   row.BottleCount,
		BreastCount:   row.BreastCount,
		TotalVolume:   row.TotalVolume,
		AverageVolume: roundAvg(row.AvgVolume),
	}, nil
}

// Diaper returns the diaper tallies over an inclusive date range. For a
// single-day range PerDay is left zero.
func (s *Service) Diaper(ctx context.Context, babyID, startDate, endDate string) (DiaperStatistics, error) {
	row, err := s.store.DiaperStats(ctx, babyID, startDate, endDate)
	if err != nil {
		return DiaperStatistics{}, err
	}
	out := DiaperStatistics{
		TotalPee:  row.TotalPee,
		TotalPoop: row.TotalPoop,
		Total:     row.Total,
	}
	days, err := rangeDays(startDate, endDate)
	if err != nil {
		return DiaperStatistics{}, err
	}
	if days > 1 {
		out.PerDay = perDay(row.Total, days)
	}
	return out, nil
}

// Daily returns the per-day breakdown of a range, most recent day
// first. Days without sessions are absent.
func (s *Service) Daily(ctx context.Context, babyID, startDate, endDate string) ([]DayStatistics, error) {
	rows, err := s.store.DailyBreakdown(ctx, babyID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	out := make([]DayStatistics, 0, len(rows))
	for _, r := range rows {
		out = append(out, DayStatistics{
			Date:            r.Date,
			TotalFeedings:   r.TotalFeedings,
			TotalDuration:   r.TotalDuration,
			AverageDuration: roundAvg(r.AvgDuration),
		})
	}
	return out, nil
}

// WeeklyHistory walks Monday-aligned week windows from the week of
// "today" back to the baby's first session, newest first. Weeks without
// feedings are omitted. With no sessions at all it returns an empty
// list.
func (s *Service) WeeklyHistory(ctx context.Context, babyID string, today time.Time) ([]WeekStatistics, error) {
	first, err := s.firstDate(ctx, babyID)
	if err != nil || first.IsZero() {
		return []WeekStatistics{}, err
	}

	out := []WeekStatistics{}
	for start := startOfWeek(today); !start.AddDate(0, 0, 6).Before(first); start = start.AddDate(0, 0, -7) {
		end := start.AddDate(0, 0, 6)
		week, err := s.Week(ctx, babyID, start.Format(dateLayout), end.Format(dateLayout))
		if err != nil {
			return nil, err
		}
		if week.TotalFeedings > 0 {
			out = append(out, week)
		}
	}
	return out, nil
}

// MonthlyHistory walks calendar-month windows from the month of "today"
// back to the baby's first session, newest first, omitting empty
// months.
func (s *Service) MonthlyHistory(ctx context.Context, babyID string, today time.Time) ([]MonthStatistics, error) {
	first, err := s.firstDate(ctx, babyID)
	if err != nil || first.IsZero() {
		return []MonthStatistics{}, err
	}

	out := []MonthStatistics{}
	for start := startOfMonth(today); !endOfMonth(start).Before(first); start = start.AddDate(0, -1, 0) {
		end := endOfMonth(start)
		row, err := s.store.RangeStats(ctx, babyID, start.Format(dateLayout), end.Format(dateLayout))
		if err != nil {
			return nil, err
		}
		if row.TotalFeedings == 0 {
			continue
		}
		out = append(out, MonthStatistics{
			Month:           start.Format("2006-01"),
			TotalFeedings:   row.TotalFeedings,
			TotalDuration:   row.TotalDuration,
			AverageDuration: roundAvg(row.AvgDuration),
		})
	}
	return out, nil
}

func (s *Service) firstDate(ctx context.Context, babyID string) (time.Time, error) {
	first, err := s.store.FirstSessionDate(ctx, babyID)
	if err != nil {
		return time.Time{}, err
	}
	if first == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, first, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad first session date %q: %w", first, err)
	}
	return t, nil
}

func dayFromRow(date string, row store.SessionAggRow) DayStatistics {
	return DayStatistics{
		Date:            date,
		TotalFeedings:   row.TotalFeedings,
		TotalDuration:   row.TotalDuration,
		AverageDuration: roundAvg(row.AvgDuration),
		LongestSession:  row.LongestSession,
		ShortestSession: row.ShortestSession,
	}
}

func roundAvg(v float64) int {
	return int(math.Round(v))
}

// perDay rounds to one decimal, matching the display convention.
func perDay(total int64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return math.Round(float64(total)/float64(days)*10) / 10
}

func rangeDays(startDate, endDate string) (int, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return 0, fmt.Errorf("bad start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return 0, fmt.Errorf("bad end date %q: %w", endDate, err)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// startOfWeek returns the Monday of t's week, at midnight local time.
func startOfWeek(t time.Time) time.Time {
	t = midnight(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func endOfMonth(start time.Time) time.Time {
	return start.AddDate(0, 1, -1)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
