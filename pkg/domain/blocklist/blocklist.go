package blocklist

import (
	"sort"
	"strings"
)

// GlobalBlocklists is the tenant-independent denylist served to the evaluator:
// the compiled-in baseline merged with the admin-managed overlay.
type GlobalBlocklists struct {
	BlockedIPs        []string `json:"blocked_ips"`
	BlockedUserAgents []string `json:"blocked_user_agents"`
	BlockedASNs       []string `json:"blocked_asns"`
}

// Merge returns the set union of l and other. IPs and ASNs are compared
// case-sensitively; user-agent substrings are deduplicated case-insensitively,
// keeping the first spelling seen. Merging is idempotent.
func (l GlobalBlocklists) Merge(other GlobalBlocklists) GlobalBlocklists {
	return GlobalBlocklists{
		BlockedIPs:        unionExact(l.BlockedIPs, other.BlockedIPs),
		BlockedUserAgents: unionFold(l.BlockedUserAgents, other.BlockedUserAgents),
		BlockedASNs:       unionExact(l.BlockedASNs, other.BlockedASNs),
	}
}

func unionExact(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func unionFold(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if v == "" {
				continue
			}
			key := strings.ToLower(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
