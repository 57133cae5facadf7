package http

import (
	"context"
	"time"

	"github.com/linkveil/cloakgate/pkg/domain"
	"github.com/linkveil/cloakgate/pkg/domain/route"
	"github.com/linkveil/cloakgate/pkg/infra/cache"
	"github.com/linkveil/cloakgate/pkg/types"
)

func routeResponse(p *route.Policy) types.RouteResponse {
	rules := make([]types.ScheduleRuleDTO, 0, len(p.ScheduleRules))
	for _, r := range p.ScheduleRules {
		rules = append(rules, types.ScheduleRuleDTO{
			Days:         r.Days,
			Start:        r.Start,
			End:          r.End,
			Action:       string(r.Action),
			HighPriority: r.HighPriority,
		})
	}
	return types.RouteResponse{
		ID:                p.ID.String(),
		TenantID:          p.TenantID.String(),
		Slug:              p.Slug,
		RealDestinations:  emptyIfNil([]string(p.RealDestinations)),
		RotationMode:      string(p.RotationMode),
		FakeDestination:   p.FakeDestination,
		BlockedIPs:        emptyIfNil([]string(p.BlockedIPs)),
		BlockedUserAgents: emptyIfNil([]string(p.BlockedUserAgents)),
		AllowedCountries:  emptyIfNil([]string(p.AllowedCountries)),
		BlockedCountries:  emptyIfNil([]string(p.BlockedCountries)),
		BlockFacebookBots: p.BlockFacebookBots,
		AIMode:            p.AIMode,
		Emergency:         p.Emergency,
		Timezone:          p.Timezone,
		DelaySeconds:      p.DelaySeconds,
		ScheduleRules:     rules,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}

func applyRouteRequest(p *route.Policy, req *types.CreateRouteRequest) {
	rules := make(route.ScheduleRulesJSON, 0, len(req.ScheduleRules))
	for _, r := range req.ScheduleRules {
		rules = append(rules, route.ScheduleRule{
			Days:         r.Days,
			Start:        r.Start,
			End:          r.End,
			Action:       route.ScheduleAction(r.Action),
			HighPriority: r.HighPriority,
		})
	}
	p.RealDestinations = domain.StringListJSON(req.RealDestinations)
	p.RotationMode = route.Rotation(req.RotationMode)
	p.FakeDestination = req.FakeDestination
	p.BlockedIPs = domain.StringListJSON(req.BlockedIPs)
	p.BlockedUserAgents = domain.StringListJSON(req.BlockedUserAgents)
	p.AllowedCountries = domain.StringListJSON(req.AllowedCountries)
	p.BlockedCountries = domain.StringListJSON(req.BlockedCountries)
	p.BlockFacebookBots = req.BlockFacebookBots
	p.AIMode = req.AIMode
	p.Emergency = req.Emergency
	p.Timezone = req.Timezone
	p.DelaySeconds = req.DelaySeconds
	p.ScheduleRules = rules
}

// invalidateRouteCaches drops the slug from both cache layers so the next
// redirect reads the fresh policy.
func invalidateRouteCaches(ctx context.Context, c cache.Client, slug string) error {
	if m := c.GetTTLMap(cache.RouteTTLName); m != nil {
		m.Delete(slug)
	}
	return c.DeleteRoute(ctx, slug)
}
