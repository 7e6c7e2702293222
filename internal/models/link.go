package models

import (
	"time"
)

// Link statuses drive the resolution pipeline's branch per slug.
const (
	StatusOK       = "ok"
	StatusProxy    = "proxy"
	StatusBan      = "ban"
	StatusSkip     = "skip"
	StatusNotFound = "404"
)

type Link struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"uniqueIndex;not null;size:64" json:"slug"`
	URL  string `gorm:"not null;type:text" json:"url"`
	// PasswordHash is the SHA-256 hex digest of the management password.
	// nil means no password was ever set: the link is readable but can
	// never be managed.
	PasswordHash *string `gorm:"size:64" json:"-"`
	Email        string  `gorm:"size:120" json:"email,omitempty"`
	Status       string  `gorm:"size:10;not null;default:'ok';index" json:"status"`

	// Creation metadata, write-once.
	IP        string    `gorm:"size:45" json:"ip,omitempty"`
	Country   string    `gorm:"size:8" json:"country,omitempty"`
	UserAgent string    `gorm:"size:255" json:"user_agent,omitempty"`
	Hostname  string    `gorm:"size:255" json:"hostname,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Link) TableName() string {
	return "links"
}

// Managed reports whether the link has a management password set.
func (l *Link) Managed() bool {
	return l.PasswordHash != nil && *l.PasswordHash != ""
}
