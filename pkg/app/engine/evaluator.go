package engine

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/linkveil/cloakgate/pkg/domain/blocklist"
	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/classifier"
	"github.com/linkveil/cloakgate/pkg/infra/fingerprint"
)

type CheckFunc func(ctx context.Context, in *Input) *Outcome

type Check struct {
	Name string
	Run  CheckFunc
}

// Evaluator runs the rule tiers in fixed order and stops at the first match.
// The order encodes the total precedence: emergency, priority schedule, ip,
// user agent, country deny, country allow, schedule, classifier, default.
type Evaluator struct {
	checks     []Check
	classifier classifier.Classifier
	rotator    Rotator
	logger     *logrus.Logger
}

func NewEvaluator(cls classifier.Classifier, rotator Rotator, logger *logrus.Logger) *Evaluator {
	e := &Evaluator{
		classifier: cls,
		rotator:    rotator,
		logger:     logger,
	}
	e.checks = []Check{
		{Name: "emergency", Run: e.checkEmergency},
		{Name: "priority-schedule", Run: e.checkPrioritySchedule},
		{Name: "ip-blocklist", Run: e.checkIPBlocklist},
		{Name: "ua-blocklist", Run: e.checkUABlocklist},
		{Name: "country-blocked", Run: e.checkCountryBlocked},
		{Name: "country-allowed", Run: e.checkCountryAllowed},
		{Name: "schedule", Run: e.checkSchedule},
		{Name: "classifier", Run: e.checkClassifier},
	}
	return e
}

// Evaluate classifies one visitor against one route policy. Pure except for
// the rotation counter and the optional classifier call.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	visitor *fingerprint.Visitor,
	policy *route.Policy,
	lists blocklist.GlobalBlocklists,
	now time.Time,
) Decision {
	in := &Input{
		Visitor: visitor,
		Policy:  policy,
		Lists:   lists,
		Now:     now,
	}

	for _, check := range e.checks {
		if out := check.Run(ctx, in); out != nil {
			e.logger.WithFields(logrus.Fields{
				"check":       check.Name,
				"destination": out.Destination,
				"reason":      out.Reason,
			}).Debug("rule tier matched")
			return e.finalize(ctx, in, *out)
		}
	}
	return e.finalize(ctx, in, Outcome{Destination: DestinationReal, Reason: ReasonDefault})
}

func (e *Evaluator) finalize(ctx context.Context, in *Input, out Outcome) Decision {
	decision := Decision{
		Destination: out.Destination,
		Reason:      out.Reason,
	}
	if out.Destination == DestinationFake {
		decision.TargetURL = in.Policy.FakeDestination
		return decision
	}
	decision.TargetURL = e.pickRealDestination(ctx, in.Policy)
	decision.DelaySeconds = in.Policy.DelaySeconds
	return decision
}

func (e *Evaluator) pickRealDestination(ctx context.Context, policy *route.Policy) string {
	dests := policy.RealDestinations
	if len(dests) == 0 {
		return ""
	}
	if len(dests) == 1 {
		return dests[0]
	}
	switch policy.RotationMode {
	case route.RotationRandom:
		return dests[rand.Intn(len(dests))] // #nosec G404 -- traffic spreading, not crypto
	default:
		return dests[e.rotator.Next(ctx, policy.ID.String(), len(dests))]
	}
}
