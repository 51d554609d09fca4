package model

import "time"

// GrowthMeasurement represents one growth data point. Any of the three
// metrics may be absent; at least one is set.
type GrowthMeasurement struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	BabyID     string    `gorm:"index;size:64;not null" json:"babyId"`
	MeasuredAt time.Time `gorm:"index;not null" json:"measuredAt"`
	WeightKg   *float64  `json:"weightKg"`
	HeightCm   *float64  `json:"heightCm"`
	HeadCm     *float64  `json:"headCm"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Baby Baby `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
