package store

// SessionAggRow is the pre-aggregated feeding result for a date or range.
// Averages come back fractional from SQL and are rounded by the stats layer.
type SessionAggRow struct {
	TotalFeedings   int64   `gorm:"column:total_feedings"`
	TotalDuration   int     `gorm:"column:total_duration"`
	AvgDuration     float64 `gorm:"column:avg_duration"`
	LongestSession  int     `gorm:"column:longest_session"`
	ShortestSession int     `gorm:"column:shortest_session"`
}

// DailyAggRow is one day's feeding aggregate within a range breakdown.
type DailyAggRow struct {
	Date          string  `gorm:"column:date"`
	TotalFeedings int64   `gorm:"column:total_feedings"`
	TotalDuration int     `gorm:"column:total_duration"`
	AvgDuration   float64 `gorm:"column:avg_duration"`
}

// BottleAggRow is the feeding-mode aggregate for a date or range. Volume
// figures cover bottle sessions only; NULL volumes count as 0 in the sum
// and are excluded from the average.
type BottleAggRow struct {
	BottleCount int64   `gorm:"column:bottle_count"`
	BreastCount int64   `gorm:"column:breast_count"`
	TotalVolume int     `gorm:"column:total_volume"`
	AvgVolume   float64 `gorm:"column:avg_volume"`
}

// DiaperAggRow is the diaper aggregate for a date or range. A "both"
// entry counts toward both tallies and once toward Total.
type DiaperAggRow struct {
	Total     int64 `gorm:"column:total"`
	TotalPee  int64 `gorm:"column:total_pee"`
	TotalPoop int64 `gorm:"column:total_poop"`
}
