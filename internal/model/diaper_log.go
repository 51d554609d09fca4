package model

import "time"

// DiaperType classifies a diaper change. A "both" entry counts toward both
// the pee and poop tallies.
type DiaperType string

const (
	DiaperPee  DiaperType = "pee"
	DiaperPoop DiaperType = "poop"
	DiaperBoth DiaperType = "both"
)

// DiaperLog represents one diaper change.
type DiaperLog struct {
	ID        string     `gorm:"primaryKey;size:64" json:"id"`
	BabyID    string     `gorm:"index;size:64;not null" json:"babyId"`
	Type      DiaperType `gorm:"size:8;not null" json:"type"`
	CreatedAt time.Time  `gorm:"index;not null" json:"createdAt"`

	// Associations
	Baby Baby `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
