package types

// ScheduleRuleDTO mirrors route.ScheduleRule at the API boundary.
type ScheduleRuleDTO struct {
	Days         []string `json:"days"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	Action       string   `json:"action"`
	HighPriority bool     `json:"highPriority"`
}

// CreateRouteRequest is the admin payload for creating a route policy.
type CreateRouteRequest struct {
	Slug              string            `json:"slug"`
	RealDestinations  []string          `json:"realDestinations"`
	RotationMode      string            `json:"rotationMode"`
	FakeDestination   string            `json:"fakeDestination"`
	BlockedIPs        []string          `json:"blockedIps"`
	BlockedUserAgents []string          `json:"blockedUserAgents"`
	AllowedCountries  []string          `json:"allowedCountries"`
	BlockedCountries  []string          `json:"blockedCountries"`
	BlockFacebookBots bool              `json:"blockFacebookBots"`
	AIMode            bool              `json:"aiMode"`
	Emergency         bool              `json:"emergency"`
	Timezone          string            `json:"timezone"`
	DelaySeconds      int               `json:"delaySeconds"`
	ScheduleRules     []ScheduleRuleDTO `json:"scheduleRules"`
}

// UpdateRouteRequest carries the full replacement policy for a slug.
type UpdateRouteRequest = CreateRouteRequest

// RouteResponse is the admin-facing view of a stored route policy.
type RouteResponse struct {
	ID                string            `json:"id"`
	TenantID          string            `json:"tenantId"`
	Slug              string            `json:"slug"`
	RealDestinations  []string          `json:"realDestinations"`
	RotationMode      string            `json:"rotationMode"`
	FakeDestination   string            `json:"fakeDestination"`
	BlockedIPs        []string          `json:"blockedIps"`
	BlockedUserAgents []string          `json:"blockedUserAgents"`
	AllowedCountries  []string          `json:"allowedCountries"`
	BlockedCountries  []string          `json:"blockedCountries"`
	BlockFacebookBots bool              `json:"blockFacebookBots"`
	AIMode            bool              `json:"aiMode"`
	Emergency         bool              `json:"emergency"`
	Timezone          string            `json:"timezone"`
	DelaySeconds      int               `json:"delaySeconds"`
	ScheduleRules     []ScheduleRuleDTO `json:"scheduleRules"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
}

// UpdateBlocklistsRequest merges values into the shared overlay. Pointers
// distinguish a missing field from an empty list; all three are required.
type UpdateBlocklistsRequest struct {
	BlockedIPs        *[]string `json:"blockedIps"`
	BlockedUserAgents *[]string `json:"blockedUserAgents"`
	BlockedASNs       *[]string `json:"blockedAsns"`
}

// BlocklistsResponse is the merged view served to admins.
type BlocklistsResponse struct {
	BlockedIPs        []string `json:"blockedIps"`
	BlockedUserAgents []string `json:"blockedUserAgents"`
	BlockedASNs       []string `json:"blockedAsns"`
}

// DecoyRequest asks the external generator for a safe page matching a real
// offer URL.
type DecoyRequest struct {
	RealURL string `json:"realUrl"`
}

type DecoyResponse struct {
	FakeURL string `json:"fakeUrl"`
}
