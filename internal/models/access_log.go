package models

import (
	"time"
)

// AccessLog is one resolution attempt. Append-only audit trail; never read
// back by the service, and retained after the link itself is deleted.
type AccessLog struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	URL     string `gorm:"type:text" json:"url"`
	Slug    string `gorm:"size:64;index" json:"slug"`
	IP      string `gorm:"size:45" json:"ip,omitempty"`
	Country string `gorm:"size:8" json:"country,omitempty"`
	// Status as stored at the time of the hit.
	Status  string `gorm:"size:10" json:"status"`
	Referer string `gorm:"size:255" json:"referer,omitempty"`
	// UserAgent keeps the raw header; Browser/OS/DeviceType are parsed by
	// the log worker.
	UserAgent  string    `gorm:"size:255" json:"user_agent,omitempty"`
	Browser    string    `gorm:"size:50" json:"browser,omitempty"`
	OS         string    `gorm:"size:100" json:"os,omitempty"`
	DeviceType string    `gorm:"size:50" json:"device_type,omitempty"`
	Hostname   string    `gorm:"size:255" json:"hostname,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
