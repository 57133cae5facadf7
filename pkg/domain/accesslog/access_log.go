package accesslog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DecisionReal = "real"
	DecisionFake = "fake"
)

// Entry is one recorded redirect decision. Append-only.
type Entry struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TenantID  uuid.UUID `json:"tenant_id" gorm:"type:uuid;index;not null"`
	RouteSlug string    `json:"route_slug" gorm:"index;not null"`
	IP        string    `json:"ip" gorm:"type:varchar(64)"`
	Country   string    `json:"country" gorm:"type:varchar(2)"`
	UserAgent string    `json:"user_agent" gorm:"type:varchar(512)"`
	Referer   string    `json:"referer" gorm:"type:varchar(512)"`
	Decision  string    `json:"decision" gorm:"type:varchar(8);not null"`
	Reason    string    `json:"reason" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return nil
}

func (Entry) TableName() string {
	return "access_logs"
}
