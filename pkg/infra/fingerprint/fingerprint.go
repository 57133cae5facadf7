package fingerprint

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/linkveil/cloakgate/pkg/common"
	"github.com/linkveil/cloakgate/pkg/infra/geoip"
)

// Visitor holds the attributes a single request is judged on. Constructed once
// per request by the fingerprint middleware, then read-only.
type Visitor struct {
	IP          string
	UserAgent   string
	Country     string
	Referer     string
	RequestTime time.Time
}

// NewFromRequest builds a Visitor from an incoming request. The client IP is
// taken from X-Forwarded-For (first hop) when present, then X-Real-IP, then
// the connection address.
func NewFromRequest(c *fiber.Ctx, resolver geoip.Resolver) *Visitor {
	ip := clientIP(c)
	return &Visitor{
		IP:          ip,
		UserAgent:   c.Get(fiber.HeaderUserAgent),
		Country:     resolver.Country(ip),
		Referer:     c.Get(fiber.HeaderReferer),
		RequestTime: time.Now(),
	}
}

func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if real := c.Get("X-Real-IP"); real != "" {
		return real
	}
	return c.IP()
}

// FromContext extracts the Visitor placed in the context by the fingerprint
// middleware, or nil.
func FromContext(ctx context.Context) *Visitor {
	val := ctx.Value(common.FingerprintContextKey)
	if val == nil {
		return nil
	}
	v, ok := val.(*Visitor)
	if !ok {
		return nil
	}
	return v
}
