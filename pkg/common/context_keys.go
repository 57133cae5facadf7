package common

type contextKey string

const (
	TraceIdKey            contextKey = "trace_id"
	FingerprintContextKey contextKey = "visitor_fingerprint"
	AdminSubjectKey       contextKey = "admin_subject"
)
