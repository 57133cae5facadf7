package engine

import (
	"time"

	"github.com/linkveil/cloakgate/pkg/domain/route"
)

// ActiveRule returns the first listed rule in the given priority tier whose
// window contains now, or nil. Windows are inclusive of start, exclusive of
// end; an end at or before the start wraps past midnight. A rule whose day
// set excludes now's weekday never matches.
func ActiveRule(rules []route.ScheduleRule, now time.Time, loc *time.Location, highPriority bool) *route.ScheduleRule {
	local := now.In(loc)
	minutes := local.Hour()*60 + local.Minute()

	for i := range rules {
		rule := &rules[i]
		if rule.HighPriority != highPriority {
			continue
		}
		if !rule.MatchesDay(local.Weekday()) {
			continue
		}
		if windowContains(rule.Start, rule.End, minutes) {
			return rule
		}
	}
	return nil
}

func windowContains(start, end string, minutes int) bool {
	startMin, err := route.ParseClock(start)
	if err != nil {
		return false
	}
	endMin, err := route.ParseClock(end)
	if err != nil {
		return false
	}
	if startMin == endMin {
		return false
	}
	if startMin < endMin {
		return minutes >= startMin && minutes < endMin
	}
	// window wraps past midnight
	return minutes >= startMin || minutes < endMin
}
