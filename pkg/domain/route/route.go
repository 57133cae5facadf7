package route

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkveil/cloakgate/pkg/domain"
)

const (
	RotationSequential Rotation = "sequential"
	RotationRandom     Rotation = "random"

	ActionForceFake ScheduleAction = "force_fake"
	ActionForceReal ScheduleAction = "force_real"
)

type (
	Rotation       string
	ScheduleAction string
)

// ScheduleRule is a time-window override. Days are lowercase three-letter
// weekday names ("mon".."sun"), Start/End are "HH:MM" in the route's timezone.
// Start is inclusive, End exclusive.
type ScheduleRule struct {
	Days         []string       `json:"days" mapstructure:"days"`
	Start        string         `json:"start" mapstructure:"start"`
	End          string         `json:"end" mapstructure:"end"`
	Action       ScheduleAction `json:"action" mapstructure:"action"`
	HighPriority bool           `json:"high_priority" mapstructure:"high_priority"`
}

// Policy is the per-route cloaking configuration owned by a tenant. Slugs
// are globally unique: the redirect path resolves and caches by slug alone,
// so two tenants can never share one.
type Policy struct {
	ID                uuid.UUID             `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID             `json:"tenant_id" gorm:"type:uuid;not null;index:idx_routes_tenant"`
	Slug              string                `json:"slug" gorm:"not null;uniqueIndex:idx_routes_slug"`
	RealDestinations  domain.StringListJSON `json:"real_destinations" gorm:"type:jsonb;not null"`
	RotationMode      Rotation              `json:"rotation_mode" gorm:"default:'sequential'"`
	FakeDestination   string                `json:"fake_destination"`
	BlockedIPs        domain.StringListJSON `json:"blocked_ips" gorm:"type:jsonb"`
	BlockedUserAgents domain.StringListJSON `json:"blocked_user_agents" gorm:"type:jsonb"`
	AllowedCountries  domain.StringListJSON `json:"allowed_countries" gorm:"type:jsonb"`
	BlockedCountries  domain.StringListJSON `json:"blocked_countries" gorm:"type:jsonb"`
	BlockFacebookBots bool                  `json:"block_facebook_bots" gorm:"default:false"`
	AIMode            bool                  `json:"ai_mode" gorm:"default:false"`
	Emergency         bool                  `json:"emergency" gorm:"default:false"`
	Timezone          string                `json:"timezone"`
	DelaySeconds      int                   `json:"delay_seconds" gorm:"default:0"`
	ScheduleRules     ScheduleRulesJSON     `json:"schedule_rules" gorm:"type:jsonb"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

func (p *Policy) Validate() error {
	if p.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if len(p.RealDestinations) == 0 {
		return fmt.Errorf("at least one real destination is required")
	}
	switch p.RotationMode {
	case RotationSequential, RotationRandom, "":
	default:
		return fmt.Errorf("invalid rotation mode: %s", p.RotationMode)
	}
	if p.Filters() && p.FakeDestination == "" {
		return fmt.Errorf("fake destination is required when filtering is active")
	}
	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			return fmt.Errorf("invalid timezone: %s", p.Timezone)
		}
	}
	for i, rule := range p.ScheduleRules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("schedule rule %d: %w", i, err)
		}
	}
	return nil
}

// Filters reports whether any rule could ever send a visitor to the fake
// destination. A route with no fake destination cannot filter.
func (p *Policy) Filters() bool {
	return p.Emergency ||
		p.AIMode ||
		p.BlockFacebookBots ||
		len(p.BlockedIPs) > 0 ||
		len(p.BlockedUserAgents) > 0 ||
		len(p.AllowedCountries) > 0 ||
		len(p.BlockedCountries) > 0 ||
		len(p.ScheduleRules) > 0
}

// Location resolves the route's timezone, falling back to UTC.
func (p *Policy) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (r ScheduleRule) Validate() error {
	if len(r.Days) == 0 {
		return fmt.Errorf("at least one day is required")
	}
	for _, d := range r.Days {
		if _, ok := weekdays[d]; !ok {
			return fmt.Errorf("invalid day: %s", d)
		}
	}
	if _, err := ParseClock(r.Start); err != nil {
		return fmt.Errorf("invalid start time %q: %w", r.Start, err)
	}
	if _, err := ParseClock(r.End); err != nil {
		return fmt.Errorf("invalid end time %q: %w", r.End, err)
	}
	switch r.Action {
	case ActionForceFake, ActionForceReal:
	default:
		return fmt.Errorf("invalid action: %s", r.Action)
	}
	return nil
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// MatchesDay reports whether the rule's day set includes the given weekday.
func (r ScheduleRule) MatchesDay(day time.Weekday) bool {
	for _, d := range r.Days {
		if wd, ok := weekdays[d]; ok && wd == day {
			return true
		}
	}
	return false
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("out of range")
	}
	return h*60 + m, nil
}

func (p *Policy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.RotationMode == "" {
		p.RotationMode = RotationSequential
	}
	return p.Validate()
}

func (p *Policy) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return p.Validate()
}

func (p *Policy) TableName() string {
	return "routes"
}
