package model

import "time"

// PushSubscription holds a browser push subscription used for feeding
// reminders. A subscription follows exactly one baby.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey" json:"endpoint"`
	P256DH    string    `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string    `gorm:"not null" json:"auth"`
	BabyID    string    `gorm:"index;size:64;not null" json:"babyId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
