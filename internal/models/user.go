package models

import "time"

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:254;index"` // uniqueness of non-empty emails enforced on register
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:150"`
	LastName     string `gorm:"size:150"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Profile Profile `gorm:"constraint:OnDelete:CASCADE"`
}
