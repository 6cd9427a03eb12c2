package notion

import (
	"context"
	"net/http"

	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

type Databases struct {
	endpoint
}

// Query queries a database with filters and sorts.
func (d *Databases) Query(ctx context.Context, databaseID string, params models.Params) (*pagination.Paginator, error) {
	return d.paginate(ctx, http.MethodPost, params, databaseID, "query")
}

// Create creates a database as a child of the page named in params["parent"].
func (d *Databases) Create(ctx context.Context, params models.Params) (models.Page, error) {
	return d.post(ctx, params)
}

// Update updates the title or properties of a database.
func (d *Databases) Update(ctx context.Context, databaseID string, params models.Params) (models.Page, error) {
	return d.patch(ctx, params, databaseID)
}

func (d *Databases) Retrieve(ctx context.Context, databaseID string) (models.Page, error) {
	return d.get(ctx, nil, databaseID)
}

// List lists all the databases shared with the integration.
func (d *Databases) List(ctx context.Context, params models.Params) (*pagination.Paginator, error) {
	return d.paginate(ctx, http.MethodGet, params)
}
