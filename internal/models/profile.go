package models

import "time"

// Profile holds the extra per-user fields shown on the profile page.
// It is created together with the user, so it always exists.
type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex;not null"`
	Bio       string `gorm:"type:text"`
	Avatar    string `gorm:"size:500"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
