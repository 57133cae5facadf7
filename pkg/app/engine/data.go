package engine

// Fixed ruleset expanded by the block_facebook_bots convenience flag:
// user-agent substrings of Meta's crawlers and the network ranges they
// announce.
var facebookUserAgents = []string{
	"facebookexternalhit",
	"facebookcatalog",
	"facebot",
	"meta-externalagent",
	"meta-externalfetcher",
}

var facebookCIDRs = []string{
	"31.13.24.0/21",
	"31.13.64.0/18",
	"66.220.144.0/20",
	"69.63.176.0/20",
	"69.171.224.0/19",
	"74.119.76.0/22",
	"102.132.96.0/20",
	"129.134.0.0/16",
	"157.240.0.0/16",
	"173.252.64.0/18",
	"179.60.192.0/22",
	"185.60.216.0/22",
	"204.15.20.0/22",
	"2a03:2880::/29",
}
