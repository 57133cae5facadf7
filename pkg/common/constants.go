package common

import "time"

const (
	RouteCacheTTL     = 5 * time.Minute
	BlocklistCacheTTL = 30 * time.Minute

	SuggestionWindowSize       = 200
	DefaultSuggestionThreshold = 3

	ClassifierTimeout = 800 * time.Millisecond
)
