package notiondump

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	notion "github.com/nyoungstudios/notion.go"
	"github.com/nyoungstudios/notion.go/pkg/logger"
)

// newDumper creates a new dumper from the configuration
func newDumper(config *Config, log logger.Logger) (*Dumper, error) {
	opts := []notion.Option{notion.WithLogger(nil)}
	if config.Verbose {
		opts = []notion.Option{notion.WithLogger(log)}
	}
	if config.BaseURL != "" {
		opts = append(opts, notion.WithBaseURL(config.BaseURL))
	}
	if config.NotionVersion != "" {
		opts = append(opts, notion.WithNotionVersion(config.NotionVersion))
	}

	client, err := notion.New(config.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	p, err := params(config)
	if err != nil {
		return nil, err
	}
	return New(client, config.Source, config.ID, p), nil
}

// Do executes a dump operation based on the provided configuration.
// The configuration should be validated before calling this function.
func Do(ctx context.Context, config *Config) error {
	level := zerolog.InfoLevel
	if config.Verbose {
		level = zerolog.DebugLevel
	}
	log, err := logger.NewZerolog().FromBuffer(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).Make()
	if err != nil {
		return err
	}
	defer log.Close()

	outputPath := config.GetOutputPath()

	dumper, err := newDumper(config, log)
	if err != nil {
		return err
	}

	startTime := time.Now()
	log.Info("starting dump", "source", string(config.Source), "id", config.ID, "output", outputPath)

	manifest, err := dumper.Full(ctx, outputPath)
	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	log.Info("dump completed",
		"elapsed", time.Since(startTime).String(),
		"pages", manifest.Pages,
		"results", manifest.Results,
		"size", formatBytes(manifest.Size),
	)
	if config.Verbose {
		log.Debug("manifest created", "path", ManifestPath(outputPath), "sha256", manifest.SHA256)
	}

	displayManifest(manifest)
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func displayManifest(manifest *Manifest) {
	fmt.Println("\nDump Information:")
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Source:            %s\n", manifest.Source)
	if manifest.ID != "" {
		fmt.Printf("ID:                %s\n", manifest.ID)
	}
	fmt.Printf("Created At:        %s\n", manifest.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Pages:             %d\n", manifest.Pages)
	fmt.Printf("Results:           %d\n", manifest.Results)
	fmt.Printf("Size:              %s\n", formatBytes(manifest.Size))
	fmt.Printf("SHA256:            %s\n", manifest.SHA256)
}
