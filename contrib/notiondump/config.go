package notiondump

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/nyoungstudios/notion.go/pkg/constants"
)

// Source names the listing a dump walks.
type Source string

const (
	// SourceDatabase walks a database query, ID is the database
	SourceDatabase Source = "database"
	// SourceDatabases walks every database shared with the integration
	SourceDatabases Source = "databases"
	// SourceChildren walks the children of the block or page ID
	SourceChildren Source = "children"
	// SourceSearch walks the search results for Query
	SourceSearch Source = "search"
	// SourceUsers walks the users of the workspace
	SourceUsers Source = "users"
)

// maxPageSize is the largest page_size the API accepts
const maxPageSize = 100

// Config holds all configuration options for dump operations
type Config struct {
	// Integration token
	Token string
	// API base URL (e.g., "https://api.notion.com")
	BaseURL string
	// Notion-Version header value
	NotionVersion string

	// Listing to dump
	Source Source
	// Database or block id, required for SourceDatabase and SourceChildren
	ID string
	// Search query, only used with SourceSearch
	Query string
	// JSON filter object sent with database queries and searches
	Filter string
	// Results per request, 0 leaves the server default
	PageSize int

	// Output file path
	Output string
	// Base directory for dumps (prefixes output path)
	Dir string

	// Enable verbose logging
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		BaseURL:       constants.DefaultBaseURL,
		NotionVersion: constants.DefaultNotionVersion,
		Source:        SourceDatabase,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required")
	}
	switch c.Source {
	case SourceDatabase, SourceChildren:
		if c.ID == "" {
			return fmt.Errorf("id is required for source %q", c.Source)
		}
	case SourceDatabases, SourceSearch, SourceUsers:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.PageSize < 0 || c.PageSize > maxPageSize {
		return fmt.Errorf("page size must be between 1 and %d", maxPageSize)
	}
	if c.Filter != "" {
		if c.Source != SourceDatabase && c.Source != SourceSearch {
			return fmt.Errorf("filter is only supported for database and search sources")
		}
		if _, err := c.filter(); err != nil {
			return err
		}
	}
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}

// GetOutputPath returns the full output path, applying Dir prefix if set
func (c *Config) GetOutputPath() string {
	if c.Dir != "" && c.Output != "" {
		return filepath.Join(c.Dir, c.Output)
	}
	return c.Output
}

func (c *Config) filter() (map[string]any, error) {
	if c.Filter == "" {
		return nil, nil
	}
	var filter map[string]any
	if err := json.Unmarshal([]byte(c.Filter), &filter); err != nil {
		return nil, fmt.Errorf("filter must be a JSON object: %w", err)
	}
	return filter, nil
}
