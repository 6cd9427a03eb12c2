package notion

import (
	"context"
	"net/http"
	"time"

	"github.com/nyoungstudios/notion.go/pkg/connection"
	"github.com/nyoungstudios/notion.go/pkg/logger"
	"github.com/nyoungstudios/notion.go/pkg/models"
	"github.com/nyoungstudios/notion.go/pkg/pagination"
)

// Client exposes the Notion API as resource groups.
//
// A Client holds only read-only configuration, so it is safe for concurrent
// use and any number of paginators may be created from it.
type Client struct {
	transport connection.Transport
	logger    logger.Logger

	Databases *Databases
	Pages     *Pages
	Blocks    *Blocks
	Users     *Users
}

// Option changes the configuration New builds.
type Option func(*connection.Config)

func WithBaseURL(baseURL string) Option {
	return func(c *connection.Config) { c.BaseURL = baseURL }
}

func WithAPIVersion(version string) Option {
	return func(c *connection.Config) { c.APIVersion = version }
}

func WithNotionVersion(version string) Option {
	return func(c *connection.Config) { c.NotionVersion = version }
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *connection.Config) { c.HTTPClient = client }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *connection.Config) { c.Timeout = timeout }
}

// WithLogger replaces the default logger. Nil disables logging.
func WithLogger(l logger.Logger) Option {
	return func(c *connection.Config) { c.Logger = l }
}

func WithUserAgent(userAgent string) Option {
	return func(c *connection.Config) { c.UserAgent = userAgent }
}

// New creates a client for the integration token auth.
func New(auth string, opts ...Option) (*Client, error) {
	conf := connection.NewConfig(auth)
	for _, opt := range opts {
		opt(conf)
	}
	return FromConfig(conf)
}

// ClientFromEnv creates a client configured by connection.ConfigFromEnv.
func ClientFromEnv(opts ...Option) (*Client, error) {
	conf, err := connection.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(conf)
	}
	return FromConfig(conf)
}

func FromConfig(conf *connection.Config) (*Client, error) {
	con, err := connection.NewHTTPConnection(conf)
	if err != nil {
		return nil, err
	}
	return FromTransport(con, conf.Logger), nil
}

// FromTransport creates a client sending every request through t.
func FromTransport(t connection.Transport, l logger.Logger) *Client {
	c := &Client{
		transport: t,
		logger:    logger.OrNop(l),
	}
	c.Databases = &Databases{endpoint{client: c, name: "databases"}}
	c.Pages = &Pages{endpoint{client: c, name: "pages"}}
	c.Blocks = &Blocks{
		endpoint: endpoint{client: c, name: "blocks"},
		Children: &BlocksChildren{endpoint{client: c, name: "blocks"}},
	}
	c.Users = &Users{endpoint{client: c, name: "users"}}
	return c
}

// Request sends one request and checks its status. endpoint is the path after
// the API version.
func (c *Client) Request(ctx context.Context, method, endpoint string, params models.Params) (*connection.Response, error) {
	return c.transport.Request(ctx, method, endpoint, params)
}

// Do sends one request and decodes the response body.
func (c *Client) Do(ctx context.Context, method, endpoint string, params models.Params) (models.Page, error) {
	resp, err := c.Request(ctx, method, endpoint, params)
	if err != nil {
		return models.Page{}, err
	}
	return resp.Page()
}

// Paginate fetches the first page of a listing and returns a paginator
// re-issuing the same request, with start_cursor set, for every further page.
func (c *Client) Paginate(ctx context.Context, method, endpoint string, params models.Params) (*pagination.Paginator, error) {
	first, err := c.Do(ctx, method, endpoint, params)
	if err != nil {
		return nil, err
	}
	return pagination.New(c.fetcher(method, endpoint), first, params, pagination.WithLogger(c.logger)), nil
}

func (c *Client) fetcher(method, endpoint string) pagination.FetchFunc {
	return func(ctx context.Context, params models.Params) (models.Page, error) {
		return c.Do(ctx, method, endpoint, params)
	}
}

// Search searches the pages and databases shared with the integration.
func (c *Client) Search(ctx context.Context, params models.Params) (*pagination.Paginator, error) {
	return c.Paginate(ctx, http.MethodPost, "search", params)
}
