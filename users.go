package notion

import (
	"context"
	"net/http"

	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

type Users struct {
	endpoint
}

func (u *Users) Retrieve(ctx context.Context, userID string) (models.Page, error) {
	return u.get(ctx, nil, userID)
}

// List lists all users of the workspace.
func (u *Users) List(ctx context.Context, params models.Params) (*pagination.Paginator, error) {
	return u.paginate(ctx, http.MethodGet, params)
}

// Me retrieves the bot user of the token.
func (u *Users) Me(ctx context.Context) (models.Page, error) {
	return u.get(ctx, nil, "me")
}
