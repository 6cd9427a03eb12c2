package notion

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

// endpoint is a resource group rooted at one path segment.
type endpoint struct {
	client *Client
	name   string
}

// path joins the resource name with the non-empty parts. Each part is path
// escaped.
func (e endpoint) path(parts ...string) string {
	segments := []string{e.name}
	for _, p := range parts {
		if p == "" {
			continue
		}
		segments = append(segments, url.PathEscape(p))
	}
	return strings.Join(segments, "/")
}

func (e endpoint) get(ctx context.Context, params models.Params, parts ...string) (models.Page, error) {
	return e.client.Do(ctx, http.MethodGet, e.path(parts...), params)
}

func (e endpoint) post(ctx context.Context, params models.Params, parts ...string) (models.Page, error) {
	return e.client.Do(ctx, http.MethodPost, e.path(parts...), params)
}

func (e endpoint) patch(ctx context.Context, params models.Params, parts ...string) (models.Page, error) {
	return e.client.Do(ctx, http.MethodPatch, e.path(parts...), params)
}

func (e endpoint) delete(ctx context.Context, params models.Params, parts ...string) (models.Page, error) {
	return e.client.Do(ctx, http.MethodDelete, e.path(parts...), params)
}

func (e endpoint) paginate(ctx context.Context, method string, params models.Params, parts ...string) (*pagination.Paginator, error) {
	return e.client.Paginate(ctx, method, e.path(parts...), params)
}
