package blocklist

import "github.com/linkveil/cloakgate/pkg/domain/blocklist"

// Baseline returns the compiled-in, tenant-independent denylist. It is merged
// under the admin overlay and is always served, even when the overlay has
// never been fetched.
func Baseline() blocklist.GlobalBlocklists {
	return blocklist.GlobalBlocklists{
		BlockedIPs:        append([]string(nil), baselineIPs...),
		BlockedUserAgents: append([]string(nil), baselineUserAgents...),
		BlockedASNs:       append([]string(nil), baselineASNs...),
	}
}

// Crawlers, SEO tools, headless browsers and HTTP libraries that never carry
// buying traffic. Matched as case-insensitive substrings.
var baselineUserAgents = []string{
	"googlebot",
	"adsbot-google",
	"mediapartners-google",
	"bingbot",
	"bingpreview",
	"yandexbot",
	"baiduspider",
	"duckduckbot",
	"petalbot",
	"bytespider",
	"gptbot",
	"ccbot",
	"claudebot",
	"ahrefsbot",
	"semrushbot",
	"mj12bot",
	"dotbot",
	"blexbot",
	"screaming frog",
	"headlesschrome",
	"phantomjs",
	"selenium",
	"python-requests",
	"python-urllib",
	"go-http-client",
	"okhttp",
	"curl/",
	"wget/",
	"scrapy",
	"httpclient",
	"lighthouse",
	"pingdom",
	"uptimerobot",
	"site24x7",
}

// Known verification and scanning ranges.
var baselineIPs = []string{
	"66.249.64.0/19",  // Google crawl
	"64.233.160.0/19", // Google
	"157.55.32.0/20",  // Bing
	"207.46.0.0/16",   // Microsoft
	"180.76.0.0/16",   // Baidu
	"5.255.250.0/24",  // Yandex
	"199.16.156.0/22", // Twitter
}

// Hosting and cloud networks that real landing-page visitors do not browse
// from. Advisory: served to admins, not evaluated per request.
var baselineASNs = []string{
	"AS15169", // Google
	"AS8075",  // Microsoft
	"AS16509", // Amazon
	"AS14618", // Amazon EC2
	"AS13335", // Cloudflare
	"AS14061", // DigitalOcean
	"AS16276", // OVH
	"AS24940", // Hetzner
	"AS63949", // Akamai/Linode
}
