package models

import (
	"time"
)

type Click struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	URLID      uint      `gorm:"not null;index" json:"url_id"`
	Timestamp  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
	Browser    string    `gorm:"size:50" json:"browser"`
	OS         string    `gorm:"size:100" json:"os"`
	DeviceType string    `gorm:"size:50" json:"device_type"`
	Platform   string    `gorm:"size:255" json:"platform"` // Raw User-Agent until enrichment
	Referrer   string    `gorm:"size:255;default:'Direct'" json:"referrer"`
}
