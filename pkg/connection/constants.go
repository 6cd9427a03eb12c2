package connection

import "time"

const (
	// DefaultTimeout bounds one HTTP round trip
	DefaultTimeout = 30 * time.Second
)

// Environment variables read by ConfigFromEnv.
const (
	EnvToken         = "NOTION_TOKEN"
	EnvBaseURL       = "NOTION_BASE_URL"
	EnvAPIVersion    = "NOTION_API_VERSION"
	EnvNotionVersion = "NOTION_VERSION"
)
