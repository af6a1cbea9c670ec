package liquipedia

import "time"

const (
	defaultBaseURL     = "https://api.liquipedia.net/api/v1"
	defaultUserAgent   = "EsportsScheduleExtension/0.1 (contact: you@example.com)"
	defaultHTTPTimeout = 25 * time.Second
	defaultLimit       = 100
	maxErrorBody       = 512
)
