package notion

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyoungstudios/notion.go/pkg/connection"
	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

type call struct {
	method   string
	endpoint string
	params   models.Params
}

// recorder is a Transport answering every request with the next body of
// responses, or with a single-entity body once they run out.
type recorder struct {
	calls     []call
	responses []string
}

func (r *recorder) Request(_ context.Context, method, endpoint string, params models.Params) (*connection.Response, error) {
	r.calls = append(r.calls, call{method: method, endpoint: endpoint, params: params})

	body := `{"object":"page","id":"x"}`
	if len(r.responses) > 0 {
		body, r.responses = r.responses[0], r.responses[1:]
	}
	return &connection.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}, nil
}

const lastPage = `{"object":"list","results":[],"has_more":false,"next_cursor":null}`

func TestEndpoint_path(t *testing.T) {
	e := endpoint{name: "blocks"}

	assert.Equal(t, "blocks", e.path())
	assert.Equal(t, "blocks/abc", e.path("abc"))
	assert.Equal(t, "blocks/abc/children", e.path("abc", "children"))
	assert.Equal(t, "blocks/children", e.path("", "children"))
	assert.Equal(t, "blocks/a%2Fb", e.path("a/b"))
}

func TestClient_singleEntityOperations(t *testing.T) {
	ctx := context.Background()
	params := models.Params{"properties": map[string]any{}}

	tests := []struct {
		name     string
		do       func(c *Client) (models.Page, error)
		method   string
		endpoint string
		params   models.Params
	}{
		{"Databases.Create", func(c *Client) (models.Page, error) { return c.Databases.Create(ctx, params) }, http.MethodPost, "databases", params},
		{"Databases.Update", func(c *Client) (models.Page, error) { return c.Databases.Update(ctx, "db", params) }, http.MethodPatch, "databases/db", params},
		{"Databases.Retrieve", func(c *Client) (models.Page, error) { return c.Databases.Retrieve(ctx, "db") }, http.MethodGet, "databases/db", nil},
		{"Pages.Retrieve", func(c *Client) (models.Page, error) { return c.Pages.Retrieve(ctx, "pg") }, http.MethodGet, "pages/pg", nil},
		{"Pages.Create", func(c *Client) (models.Page, error) { return c.Pages.Create(ctx, params) }, http.MethodPost, "pages", params},
		{"Pages.Update", func(c *Client) (models.Page, error) { return c.Pages.Update(ctx, "pg", params) }, http.MethodPatch, "pages/pg", params},
		{"Blocks.Retrieve", func(c *Client) (models.Page, error) { return c.Blocks.Retrieve(ctx, "bk") }, http.MethodGet, "blocks/bk", nil},
		{"Blocks.Update", func(c *Client) (models.Page, error) { return c.Blocks.Update(ctx, "bk", params) }, http.MethodPatch, "blocks/bk", params},
		{"Blocks.Delete", func(c *Client) (models.Page, error) { return c.Blocks.Delete(ctx, "bk") }, http.MethodDelete, "blocks/bk", nil},
		{"Users.Retrieve", func(c *Client) (models.Page, error) { return c.Users.Retrieve(ctx, "us") }, http.MethodGet, "users/us", nil},
		{"Users.Me", func(c *Client) (models.Page, error) { return c.Users.Me(ctx) }, http.MethodGet, "users/me", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			c := FromTransport(rec, nil)

			page, err := tt.do(c)
			require.NoError(t, err)
			assert.Equal(t, "x", page.ID())

			require.Len(t, rec.calls, 1)
			assert.Equal(t, tt.method, rec.calls[0].method)
			assert.Equal(t, tt.endpoint, rec.calls[0].endpoint)
			assert.Equal(t, tt.params, rec.calls[0].params)
		})
	}
}

func TestClient_paginatedOperations(t *testing.T) {
	ctx := context.Background()
	params := models.Params{"page_size": 1}

	tests := []struct {
		name     string
		do       func(c *Client) (*pagination.Paginator, error)
		method   string
		endpoint string
	}{
		{"Databases.Query", func(c *Client) (*pagination.Paginator, error) { return c.Databases.Query(ctx, "db", params) }, http.MethodPost, "databases/db/query"},
		{"Databases.List", func(c *Client) (*pagination.Paginator, error) { return c.Databases.List(ctx, params) }, http.MethodGet, "databases"},
		{"Blocks.Children.List", func(c *Client) (*pagination.Paginator, error) { return c.Blocks.Children.List(ctx, "bk", params) }, http.MethodGet, "blocks/bk/children"},
		{"Users.List", func(c *Client) (*pagination.Paginator, error) { return c.Users.List(ctx, params) }, http.MethodGet, "users"},
		{"Search", func(c *Client) (*pagination.Paginator, error) { return c.Search(ctx, params) }, http.MethodPost, "search"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{responses: []string{
				`{"object":"list","results":[{"id":"a"}],"has_more":true,"next_cursor":"c1"}`,
				`{"object":"list","results":[{"id":"b"}],"has_more":false,"next_cursor":null}`,
			}}
			c := FromTransport(rec, nil)

			p, err := tt.do(c)
			require.NoError(t, err)
			// the first page is fetched before the paginator is returned
			require.Len(t, rec.calls, 1)

			pages, err := pagination.Collect(ctx, p)
			require.NoError(t, err)
			assert.Len(t, pages, 2)

			require.Len(t, rec.calls, 2)
			for _, got := range rec.calls {
				assert.Equal(t, tt.method, got.method)
				assert.Equal(t, tt.endpoint, got.endpoint)
			}
			assert.Equal(t, params, rec.calls[0].params)
			assert.Equal(t, models.Params{"page_size": 1, "start_cursor": "c1"}, rec.calls[1].params)
			assert.Equal(t, models.Params{"page_size": 1}, params, "caller params must not change")
		})
	}
}

func TestBlocksChildren_appendContinuesWithListing(t *testing.T) {
	ctx := context.Background()
	children := models.Params{"children": []any{map[string]any{"type": "paragraph"}}}

	rec := &recorder{responses: []string{
		`{"object":"list","results":[{"id":"a"}],"has_more":true,"next_cursor":"c1"}`,
		lastPage,
	}}
	c := FromTransport(rec, nil)

	p, err := c.Blocks.Children.Append(ctx, "bk", children)
	require.NoError(t, err)

	pages, err := pagination.Collect(ctx, p)
	require.NoError(t, err)
	assert.Len(t, pages, 2)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, call{method: http.MethodPatch, endpoint: "blocks/bk/children", params: children}, rec.calls[0])
	assert.Equal(t, http.MethodGet, rec.calls[1].method)
	assert.Equal(t, "blocks/bk/children", rec.calls[1].endpoint)
	assert.Equal(t, models.Params{"start_cursor": "c1"}, rec.calls[1].params)
}

func TestClient_firstPageFailure(t *testing.T) {
	rec := &recorder{responses: []string{`not json`}}
	c := FromTransport(rec, nil)

	p, err := c.Databases.Query(context.Background(), "db", nil)
	require.Error(t, err)
	assert.Nil(t, p)
}
