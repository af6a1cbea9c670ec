package backend

import "time"

const (
	providerName       = "backend"
	defaultBaseURL     = "http://localhost:8080"
	schedulePath       = "/api/schedule"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512
)
