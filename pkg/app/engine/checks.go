package engine

import (
	"context"
	"strings"

	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/metrics"
)

func (e *Evaluator) checkEmergency(_ context.Context, in *Input) *Outcome {
	if !in.Policy.Emergency {
		return nil
	}
	return &Outcome{Destination: DestinationFake, Reason: ReasonEmergency}
}

func (e *Evaluator) checkPrioritySchedule(_ context.Context, in *Input) *Outcome {
	rule := ActiveRule(in.Policy.ScheduleRules, in.Now, in.Policy.Location(), true)
	if rule == nil {
		return nil
	}
	return &Outcome{Destination: actionDestination(rule.Action), Reason: ReasonPrioritySchedule}
}

func (e *Evaluator) checkIPBlocklist(_ context.Context, in *Input) *Outcome {
	entries := make([]string, 0, len(in.Policy.BlockedIPs)+len(in.Lists.BlockedIPs))
	entries = append(entries, in.Policy.BlockedIPs...)
	entries = append(entries, in.Lists.BlockedIPs...)
	if in.Policy.BlockFacebookBots {
		entries = append(entries, facebookCIDRs...)
	}
	if !ipMatches(in.Visitor.IP, entries) {
		return nil
	}
	return &Outcome{Destination: DestinationFake, Reason: ReasonIPBlocklist}
}

func (e *Evaluator) checkUABlocklist(_ context.Context, in *Input) *Outcome {
	ua := strings.ToLower(in.Visitor.UserAgent)

	for _, list := range [][]string{in.Policy.BlockedUserAgents, in.Lists.BlockedUserAgents} {
		for _, needle := range list {
			if needle == "" {
				continue
			}
			if strings.Contains(ua, strings.ToLower(needle)) {
				return &Outcome{Destination: DestinationFake, Reason: ReasonUABlocklist}
			}
		}
	}

	if in.Policy.BlockFacebookBots {
		for _, needle := range facebookUserAgents {
			if strings.Contains(ua, needle) {
				return &Outcome{Destination: DestinationFake, Reason: ReasonUABlocklist}
			}
		}
	}
	return nil
}

func (e *Evaluator) checkCountryBlocked(_ context.Context, in *Input) *Outcome {
	if !containsFold(in.Policy.BlockedCountries, in.Visitor.Country) {
		return nil
	}
	return &Outcome{Destination: DestinationFake, Reason: ReasonCountryBlocked}
}

func (e *Evaluator) checkCountryAllowed(_ context.Context, in *Input) *Outcome {
	if len(in.Policy.AllowedCountries) == 0 {
		return nil
	}
	if containsFold(in.Policy.AllowedCountries, in.Visitor.Country) {
		return nil
	}
	return &Outcome{Destination: DestinationFake, Reason: ReasonCountryNotAllowed}
}

func (e *Evaluator) checkSchedule(_ context.Context, in *Input) *Outcome {
	rule := ActiveRule(in.Policy.ScheduleRules, in.Now, in.Policy.Location(), false)
	if rule == nil {
		return nil
	}
	return &Outcome{Destination: actionDestination(rule.Action), Reason: ReasonSchedule}
}

// checkClassifier consults the external classifier when ai_mode is enabled.
// Advisory only: any error or timeout falls through toward the real
// destination.
func (e *Evaluator) checkClassifier(ctx context.Context, in *Input) *Outcome {
	if !in.Policy.AIMode || e.classifier == nil {
		return nil
	}
	verdict, err := e.classifier.Classify(ctx, in.Visitor)
	if err != nil {
		metrics.ClassifierFailureTotal.Inc()
		e.logger.WithError(err).WithField("ip", in.Visitor.IP).Warn("classifier unavailable, failing open")
		return nil
	}
	if !verdict.Block {
		return nil
	}
	reason := verdict.Reason
	if reason == "" {
		reason = "block"
	}
	return &Outcome{Destination: DestinationFake, Reason: ReasonClassifierPrefix + reason}
}

func actionDestination(action route.ScheduleAction) Destination {
	if action == route.ActionForceReal {
		return DestinationReal
	}
	return DestinationFake
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}
