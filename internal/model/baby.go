package model

import "time"

// Gender is the optional recorded sex of a baby, used for growth percentiles.
type Gender string

const (
	GenderBoy  Gender = "boy"
	GenderGirl Gender = "girl"
)

// Baby represents one tracked subject.
type Baby struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	Name      string     `gorm:"size:128;not null" json:"name"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    *Gender    `gorm:"size:8" json:"gender"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`

	// Associations
	Sessions []FeedingSession `gorm:"foreignKey:BabyID" json:"-"`
}
