package models

import (
	"time"
)

type URL struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        *uint      `json:"user_id,omitempty"` // Nullable for anonymous
	User          *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ShortCode     string     `gorm:"uniqueIndex;not null;size:30" json:"short_code"`
	OriginalURL   string     `gorm:"not null;type:text" json:"original_url"`
	ClicksCount   int        `gorm:"column:clicks;default:0" json:"clicks_count"`
	LastClickedAt *time.Time `json:"last_clicked_at,omitempty"`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Clicks []Click `gorm:"foreignKey:URLID;constraint:OnDelete:CASCADE" json:"clicks,omitempty"`
}

func (URL) TableName() string {
	return "urls"
}
