package entities

import "time"

// RevokedToken holds the ID of a logged-out token until it would have expired.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:36" json:"jti"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"type:timestamp;not null;index" json:"expires_at"`
}
