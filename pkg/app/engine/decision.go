package engine

import (
	"time"

	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
)

type Destination string

const (
	DestinationReal Destination = "real"
	DestinationFake Destination = "fake"
)

// Reasons attached to decisions, one per rule tier.
const (
	ReasonEmergency         = "emergency-mode"
	ReasonPrioritySchedule  = "priority-schedule"
	ReasonIPBlocklist       = "ip-blocklist"
	ReasonUABlocklist       = "ua-blocklist"
	ReasonCountryBlocked    = "country-blocked"
	ReasonCountryNotAllowed = "country-not-allowed"
	ReasonSchedule          = "schedule"
	ReasonClassifierPrefix  = "ai-classifier:"
	ReasonDefault           = "default"
)

// Decision is the evaluator's answer for one request. DelaySeconds is only
// set on the real branch, for routes that interpose a delay page.
type Decision struct {
	Destination  Destination `json:"destination"`
	Reason       string      `json:"reason"`
	TargetURL    string      `json:"target_url"`
	DelaySeconds int         `json:"delay_seconds,omitempty"`
}

// Outcome is a rule tier's verdict before a concrete URL is chosen.
type Outcome struct {
	Destination Destination
	Reason      string
}

// Input bundles everything a rule tier may look at. Checks never perform I/O;
// the classifier tier is the single exception and is bounded by its own
// timeout.
type Input struct {
	Visitor *fingerprint.Visitor
	Policy  *route.Policy
	Lists   blocklist.GlobalBlocklists
	Now     time.Time
}
