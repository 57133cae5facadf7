package suggestion

import (
	"fmt"
	"sort"

	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/domain/accesslog"
)

const KindIP = "ip"

// Suggestion proposes adding a value to a blocklist. Derived from the log
// window on every pass, never persisted; acting on or dismissing one is the
// caller's concern.
type Suggestion struct {
	Kind            string `json:"kind"`
	Value           string `json:"value"`
	RouteSlug       string `json:"route_slug"`
	OccurrenceCount int    `json:"occurrence_count"`
	Rationale       string `json:"rationale"`
}

// Engine mines a bounded window of recent access-log entries for IPs that
// keep landing on the fake branch. Pure function of its input.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Suggest returns one suggestion per IP seen on the fake branch at least
// threshold times, sorted by occurrence count descending. Entries must be
// ordered newest first, as returned by the access-log repository.
func (e *Engine) Suggest(window []accesslog.Entry, threshold int) []Suggestion {
	if threshold <= 0 {
		threshold = common.DefaultSuggestionThreshold
	}

	type group struct {
		count     int
		routeSlug string // most recent slug seen for this ip
		firstSeen int    // position of the newest entry, for stable ordering
	}
	groups := make(map[string]*group)

	for i, entry := range window {
		if entry.Decision != accesslog.DecisionFake {
			continue
		}
		if entry.IP == "" || entry.IP == "unknown" {
			continue
		}
		g, ok := groups[entry.IP]
		if !ok {
			g = &group{routeSlug: entry.RouteSlug, firstSeen: i}
			groups[entry.IP] = g
		}
		g.count++
	}

	suggestions := make([]Suggestion, 0, len(groups))
	for ip, g := range groups {
		if g.count < threshold {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Kind:            KindIP,
			Value:           ip,
			RouteSlug:       g.routeSlug,
			OccurrenceCount: g.count,
			Rationale:       fmt.Sprintf("seen %d times on route /%s", g.count, g.routeSlug),
		})
	}

	order := make(map[string]int, len(groups))
	for ip, g := range groups {
		order[ip] = g.firstSeen
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].OccurrenceCount != suggestions[j].OccurrenceCount {
			return suggestions[i].OccurrenceCount > suggestions[j].OccurrenceCount
		}
		return order[suggestions[i].Value] < order[suggestions[j].Value]
	})
	return suggestions
}
