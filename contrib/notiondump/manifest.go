package notiondump

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// Manifest represents metadata about a dump file
type Manifest struct {
	// File information
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`

	// Listing context
	Source Source `json:"source"`
	ID     string `json:"id,omitempty"`

	// Pages is the number of responses read, Results the number of lines written
	Pages   int `json:"pages"`
	Results int `json:"results"`

	// Checksum for integrity
	SHA256 string `json:"sha256,omitempty"`
}

// Validate validates the manifest fields for consistency and completeness
func (m *Manifest) Validate() error {
	if m.Source == "" {
		return fmt.Errorf("manifest missing source")
	}
	if (m.Source == SourceDatabase || m.Source == SourceChildren) && m.ID == "" {
		return fmt.Errorf("manifest missing id for source %q", m.Source)
	}
	if m.Pages < 1 {
		return fmt.Errorf("manifest must record at least one page")
	}
	if m.Results < 0 {
		return fmt.Errorf("manifest has a negative result count")
	}
	return nil
}

// ManifestPath returns the path of the manifest written alongside dumpPath.
func ManifestPath(dumpPath string) string {
	return dumpPath + ".manifest.json"
}

// WriteManifest writes a manifest file alongside the dump
func WriteManifest(dumpPath string, manifest *Manifest) error {
	manifestPath := ManifestPath(dumpPath)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return os.WriteFile(manifestPath, data, 0600)
}

// ReadManifest reads a manifest file for a dump
// It returns an error if the manifest doesn't exist or if the manifest data is invalid
func ReadManifest(dumpPath string) (*Manifest, error) {
	manifestPath := ManifestPath(dumpPath)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest not found for %s", dumpPath)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	return &manifest, nil
}
