package model

import "time"

// FeedingMode distinguishes breast and bottle sessions. It is fixed at
// session start for the lifetime of the session.
type FeedingMode string

const (
	ModeBreast FeedingMode = "breast"
	ModeBottle FeedingMode = "bottle"
)

// FeedingSession represents one feeding event. A session is open while
// EndTime is NULL; at most one open session exists per baby.
type FeedingSession struct {
	ID        string      `gorm:"primaryKey;size:64" json:"id"`
	BabyID    string      `gorm:"index;size:64;not null" json:"babyId"`
	StartTime time.Time   `gorm:"index;not null" json:"startTime"`
	EndTime   *time.Time  `json:"endTime"`
	Duration  *int        `json:"duration"` // feeding seconds, breaks excluded
	Mode      FeedingMode `gorm:"column:feeding_mode;size:8;not null;default:breast" json:"feedingMode"`
	Volume    *int        `json:"volume"` // ml, bottle mode only

	FirstBreastDuration  *int `json:"firstBreastDuration"`
	SecondBreastDuration *int `json:"secondBreastDuration"`
	BreakDuration        *int `json:"breakDuration"`

	// Phases holds the serialized phase history, written once at finalize.
	// PhaseState holds the recovery snapshot and is only meaningful while
	// the session is open. Both are opaque blobs owned by the phase package.
	Phases     *string `json:"phases"`
	PhaseState *string `json:"-"`

	AudioNotePath *string   `json:"audioNotePath"`
	Note          *string   `json:"note"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Baby Baby `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Open reports whether the session has not been finalized yet.
func (s *FeedingSession) Open() bool {
	return s.EndTime == nil
}
