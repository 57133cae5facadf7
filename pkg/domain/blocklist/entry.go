package blocklist

import (
	"time"

	"gorm.io/gorm"
)

const (
	KindIP        = "ip"
	KindUserAgent = "user_agent"
	KindASN       = "asn"
)

// Entry is one admin-managed overlay row. The baseline never touches this
// table; only the admin API writes here.
type Entry struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Kind      string    `json:"kind" gorm:"type:varchar(16);not null;uniqueIndex:idx_kind_value"`
	Value     string    `json:"value" gorm:"type:varchar(512);not null;uniqueIndex:idx_kind_value"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

func (Entry) TableName() string {
	return "blocklist_entries"
}
