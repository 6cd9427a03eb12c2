package notion

import (
	"context"

	"github.com/nyoungstudios/notion.go/pkg/models"
)

type Pages struct {
	endpoint
}

func (p *Pages) Retrieve(ctx context.Context, pageID string) (models.Page, error) {
	return p.get(ctx, nil, pageID)
}

// Create creates a page in a database or as a child of another page.
func (p *Pages) Create(ctx context.Context, params models.Params) (models.Page, error) {
	return p.post(ctx, params)
}

// Update updates page properties. Setting "archived" to true moves the page to
// the trash.
func (p *Pages) Update(ctx context.Context, pageID string, params models.Params) (models.Page, error) {
	return p.patch(ctx, params, pageID)
}
