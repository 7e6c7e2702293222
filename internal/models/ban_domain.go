package models

import (
	"time"
)

// BanDomain denylists a registrable domain as a shortening target. Checked
// at creation and again at every resolution, so bans take effect on links
// that already exist.
type BanDomain struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Domain    string    `gorm:"uniqueIndex;not null;size:255" json:"domain"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (BanDomain) TableName() string {
	return "ban_domains"
}
