package connection

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/nyoungstudios/notion.go/pkg/constants"
	"github.com/nyoungstudios/notion.go/pkg/logger"
	"github.com/nyoungstudios/notion.go/pkg/models"
)

// HTTPConnection is the Transport speaking to the Notion REST API.
// It is safe for concurrent use; all of its state is read-only after New.
type HTTPConnection struct {
	prefix  string
	headers http.Header

	httpClient *http.Client
	logger     logger.Logger
}

func NewHTTPConnection(conf *Config) (*HTTPConnection, error) {
	if conf == nil {
		return nil, constants.ErrNoBaseURL
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	headers := make(http.Header)
	headers.Set(constants.HeaderAuthorization, "Bearer "+conf.Auth)
	headers.Set(constants.HeaderNotionVersion, conf.NotionVersion)
	headers.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if conf.UserAgent != "" {
		headers.Set(constants.HeaderUserAgent, conf.UserAgent)
	}

	con := HTTPConnection{
		prefix:     strings.TrimRight(conf.BaseURL, "/") + "/" + strings.Trim(conf.APIVersion, "/"),
		headers:    headers,
		httpClient: conf.HTTPClient,
		logger:     logger.OrNop(conf.Logger),
	}

	if con.httpClient == nil {
		timeout := conf.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		con.httpClient = &http.Client{
			Timeout: timeout, // Set a default timeout to avoid hanging requests
		}
	}

	return &con, nil
}

func (h *HTTPConnection) SetTimeout(timeout time.Duration) *HTTPConnection {
	h.httpClient.Timeout = timeout
	return h
}

func (h *HTTPConnection) SetHTTPClient(client *http.Client) *HTTPConnection {
	h.httpClient = client
	return h
}

// URL returns the absolute URL of endpoint.
func (h *HTTPConnection) URL(endpoint string) string {
	return h.prefix + "/" + strings.TrimLeft(endpoint, "/")
}

func (h *HTTPConnection) Request(ctx context.Context, method, endpoint string, params models.Params) (*Response, error) {
	req, err := h.newRequest(ctx, method, endpoint, params)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	resp, err := h.MakeRequest(req)
	if err != nil {
		h.logger.Warn("notion request failed", "method", method, "endpoint", endpoint, "error", err)
		return nil, err
	}

	h.logger.Debug("notion request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"elapsed", time.Since(started),
	)

	if err := resp.Err(); err != nil {
		h.logger.Debug("notion request rejected", "method", method, "endpoint", endpoint, "error", err)
		return resp, err
	}

	return resp, nil
}

func (h *HTTPConnection) newRequest(ctx context.Context, method, endpoint string, params models.Params) (*http.Request, error) {
	target := h.URL(endpoint)

	var body io.Reader = http.NoBody
	if method == http.MethodGet || method == http.MethodHead {
		query, err := encodeQuery(params)
		if err != nil {
			return nil, err
		}
		if query != "" {
			target += "?" + query
		}
	} else if len(params) > 0 {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range h.headers {
		req.Header[k] = v
	}

	return req, nil
}

// MakeRequest sends req and reads the whole body. It does not look at the
// status code.
func (h *HTTPConnection) MakeRequest(req *http.Request) (*Response, error) {
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, &models.TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBytes,
	}, nil
}

// encodeQuery turns params into a query string. Strings are sent verbatim,
// every other value as its JSON encoding.
func encodeQuery(params models.Params) (string, error) {
	if len(params) == 0 {
		return "", nil
	}

	values := make(url.Values, len(params))
	for k, v := range params {
		switch v := v.(type) {
		case nil:
			continue
		case string:
			values.Set(k, v)
		case models.Cursor:
			values.Set(k, string(v))
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return "", fmt.Errorf("failed to encode query parameter %q: %w", k, err)
			}
			values.Set(k, string(data))
		}
	}

	return values.Encode(), nil
}
