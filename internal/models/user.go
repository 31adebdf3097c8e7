package models

import (
	"time"
)

// User mirrors an identity owned by the external auth provider. The row
// exists for join purposes only; the provider stays the source of truth.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	PublicID   string    `gorm:"uniqueIndex;not null;size:36" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;not null;size:120" json:"external_id"`
	Email      string    `gorm:"size:120" json:"email"`
	Name       string    `gorm:"size:120" json:"name"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	URLs       []URL     `gorm:"foreignKey:UserID" json:"urls,omitempty"`
}
