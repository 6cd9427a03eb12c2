package connection

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/nyoungstudios/notion.go/pkg/constants"
	"github.com/nyoungstudios/notion.go/pkg/logger"
)

// Config holds everything an HTTPConnection needs. It is read-only once the
// connection has been created and may be shared by any number of clients.
type Config struct {
	// Auth is the integration token sent as "Authorization: Bearer <Auth>"
	Auth string
	// BaseURL is the scheme and host of the API, without a trailing slash
	BaseURL string
	// APIVersion is the path segment after BaseURL, e.g. "v1"
	APIVersion string
	// NotionVersion is sent as the Notion-Version header on every request
	NotionVersion string
	// UserAgent is sent as the User-Agent header when not empty
	UserAgent string
	// Timeout applies to each request when HTTPClient is nil
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout
	HTTPClient *http.Client
	// Logger receives request logs. Nil disables logging.
	Logger logger.Logger
}

// NewConfig creates a new Config for the given integration token with the
// default endpoint and protocol versions.
// It is not absolutely necessary to create a Config using this function,
// but it is recommended so that every field has a usable value.
func NewConfig(auth string) *Config {
	return &Config{
		Auth:          auth,
		BaseURL:       constants.DefaultBaseURL,
		APIVersion:    constants.DefaultAPIVersion,
		NotionVersion: constants.DefaultNotionVersion,
		UserAgent:     constants.UserAgent,
		Timeout:       DefaultTimeout,
		Logger:        logger.NewText(os.Stderr, slog.LevelInfo),
	}
}

// ConfigFromEnv builds a Config from NOTION_TOKEN, NOTION_BASE_URL,
// NOTION_API_VERSION and NOTION_VERSION.
//
// The given dotenv files are loaded first; with none given ".env" is tried.
// Missing files are ignored and variables already set in the process
// environment win over the files.
func ConfigFromEnv(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	conf := NewConfig(os.Getenv(EnvToken))
	conf.BaseURL = getEnvOrDefault(EnvBaseURL, conf.BaseURL)
	conf.APIVersion = getEnvOrDefault(EnvAPIVersion, conf.APIVersion)
	conf.NotionVersion = getEnvOrDefault(EnvNotionVersion, conf.NotionVersion)

	return conf, conf.Validate()
}

// Validate checks that every field needed to build a request is set.
func (c *Config) Validate() error {
	switch {
	case c.Auth == "":
		return constants.ErrNoAuth
	case c.BaseURL == "":
		return constants.ErrNoBaseURL
	case c.APIVersion == "":
		return constants.ErrNoAPIVersion
	case c.NotionVersion == "":
		return constants.ErrNoVersion
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
