package engine

import (
	"net"
	"strings"
)

// ipMatches reports whether ip is contained in any of the given entries.
// Entries are IP literals or CIDR ranges, IPv4 or IPv6. Malformed entries are
// skipped, never fatal.
func ipMatches(ip string, entries []string) bool {
	parsed := net.ParseIP(ip)
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			if parsed == nil {
				continue
			}
			_, network, err := net.ParseCIDR(entry)
			if err != nil {
				continue
			}
			if network.Contains(parsed) {
				return true
			}
			continue
		}
		if parsed != nil {
			if entryIP := net.ParseIP(entry); entryIP != nil {
				if entryIP.Equal(parsed) {
					return true
				}
				continue
			}
		}
		if entry == ip {
			return true
		}
	}
	return false
}
