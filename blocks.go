package notion

import (
	"context"
	"net/http"

	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

type Blocks struct {
	endpoint

	Children *BlocksChildren
}

func (b *Blocks) Retrieve(ctx context.Context, blockID string) (models.Page, error) {
	return b.get(ctx, nil, blockID)
}

func (b *Blocks) Update(ctx context.Context, blockID string, params models.Params) (models.Page, error) {
	return b.patch(ctx, params, blockID)
}

// Delete archives a block. Pages and databases are blocks too and can be
// deleted the same way.
func (b *Blocks) Delete(ctx context.Context, blockID string) (models.Page, error) {
	return b.delete(ctx, nil, blockID)
}

// BlocksChildren is the blocks/{id}/children sub-resource.
type BlocksChildren struct {
	endpoint
}

// List lists the children of a block or page.
func (c *BlocksChildren) List(ctx context.Context, blockID string, params models.Params) (*pagination.Paginator, error) {
	return c.paginate(ctx, http.MethodGet, params, blockID, "children")
}

// Append appends params["children"] to a container block.
//
// The response of the append is the first page of the parent's children.
// Further pages are read from the children listing; the append itself is
// never repeated.
func (c *BlocksChildren) Append(ctx context.Context, blockID string, params models.Params) (*pagination.Paginator, error) {
	first, err := c.patch(ctx, params, blockID, "children")
	if err != nil {
		return nil, err
	}

	list := c.client.fetcher(http.MethodGet, c.path(blockID, "children"))
	return pagination.New(list, first, nil, pagination.WithLogger(c.client.logger)), nil
}
