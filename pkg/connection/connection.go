package connection

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/nyoungstudios/notion.go/pkg/models"
)

// Transport performs one request against the API.
//
// endpoint is the path after the API version, e.g. "databases/<id>/query".
// A non-nil error is either a *models.TransportError or a *models.ServerError;
// in the latter case the returned Response is also non-nil.
type Transport interface {
	Request(ctx context.Context, method, endpoint string, params models.Params) (*Response, error)
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Err returns a *models.ServerError when the status is not 2xx.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}

	serverErr := &models.ServerError{}
	// Best effort: a body that is not a Notion error object still yields a
	// ServerError carrying the status and raw body.
	_ = json.Unmarshal(r.Body, serverErr)
	serverErr.StatusCode = r.StatusCode
	serverErr.Body = r.Body
	if serverErr.RequestID == "" {
		serverErr.RequestID = r.Header.Get("X-Request-Id")
	}
	return serverErr
}

// Page decodes the body.
func (r *Response) Page() (models.Page, error) {
	return models.NewPage(r.Body)
}
