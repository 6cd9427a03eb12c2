package notiondump

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	notion "github.com/nyoungstudios/notion.go"
	"github.com/nyoungstudios/notion.go/pkg/constants"
	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

// Stats counts what a dump read and wrote.
type Stats struct {
	Pages   int
	Results int
}

// Dumper writes every result object of one listing as a line of JSON.
type Dumper struct {
	client *notion.Client
	source Source
	id     string
	params models.Params
}

// New creates a Dumper walking source. id is the database or block for
// SourceDatabase and SourceChildren and ignored otherwise. params are sent
// with every request of the listing.
func New(client *notion.Client, source Source, id string, params models.Params) *Dumper {
	return &Dumper{
		client: client,
		source: source,
		id:     id,
		params: params,
	}
}

func (d *Dumper) open(ctx context.Context) (*pagination.Paginator, error) {
	switch d.source {
	case SourceDatabase:
		return d.client.Databases.Query(ctx, d.id, d.params)
	case SourceDatabases:
		return d.client.Databases.List(ctx, d.params)
	case SourceChildren:
		return d.client.Blocks.Children.List(ctx, d.id, d.params)
	case SourceSearch:
		return d.client.Search(ctx, d.params)
	case SourceUsers:
		return d.client.Users.List(ctx, d.params)
	default:
		return nil, fmt.Errorf("unknown source %q", d.source)
	}
}

// Dump writes the listing to w, one result per line, in listing order.
// The returned Stats cover what was written before a failure.
func (d *Dumper) Dump(ctx context.Context, w io.Writer) (Stats, error) {
	var stats Stats

	p, err := d.open(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to open %s listing: %w", d.source, err)
	}

	bw := bufio.NewWriter(w)
	for page, err := range p.All(ctx) {
		if err != nil {
			_ = bw.Flush()
			return stats, fmt.Errorf("failed to read page %d: %w", stats.Pages+1, err)
		}
		stats.Pages++

		results, err := page.Results()
		if err != nil {
			_ = bw.Flush()
			return stats, err
		}
		for _, result := range results {
			if _, err := bw.Write(result); err != nil {
				return stats, err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return stats, err
			}
			stats.Results++
		}
	}

	return stats, bw.Flush()
}

// Full dumps the listing to outputPath and writes its manifest.
// A failed dump leaves no manifest behind, including one left by an earlier
// dump to the same path.
func (d *Dumper) Full(ctx context.Context, outputPath string) (*Manifest, error) {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// the data file is truncated below, so an older manifest no longer matches it
	if err := os.Remove(ManifestPath(outputPath)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale manifest: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	counter := &countingWriter{w: io.MultiWriter(file, hash)}

	stats, err := d.Dump(ctx, counter)
	if err != nil {
		return nil, err
	}
	if err := file.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync output file: %w", err)
	}

	manifest := &Manifest{
		Filename:  filepath.Base(outputPath),
		CreatedAt: time.Now().UTC(),
		Size:      counter.n,
		Source:    d.source,
		ID:        d.id,
		Pages:     stats.Pages,
		Results:   stats.Results,
		SHA256:    hex.EncodeToString(hash.Sum(nil)),
	}
	if err := WriteManifest(outputPath, manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// params builds the request parameters for config.
func params(config *Config) (models.Params, error) {
	p := models.Params{}
	if config.PageSize > 0 {
		p[constants.KeyPageSize] = config.PageSize
	}
	if config.Source == SourceSearch && config.Query != "" {
		p["query"] = config.Query
	}
	filter, err := config.filter()
	if err != nil {
		return nil, err
	}
	if filter != nil {
		p["filter"] = filter
	}
	return p, nil
}
