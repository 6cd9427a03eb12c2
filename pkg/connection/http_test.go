package connection

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/suite"

	"github.com/nyoungstudios/notion.go/pkg/constants"
	"github.com/nyoungstudios/notion.go/pkg/models"
)

type RoundTripFunc func(req *http.Request) *http.Response

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

// NewTestClient returns *http.Client with Transport replaced to avoid making real calls
func NewTestClient(fn RoundTripFunc) *http.Client {
	return &http.Client{
		Transport: fn,
	}
}

type contextTransport struct{}

func (contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	return jsonResponse(200, `{}`), nil
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		// Must be set to non-nil value or it panics
		Header: make(http.Header),
	}
}

type HTTPTestSuite struct {
	suite.Suite
	conf *Config
}

func TestHttpTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPTestSuite))
}

func (s *HTTPTestSuite) SetupTest() {
	s.conf = NewConfig("secret_token")
	s.conf.BaseURL = "http://test.notion"
	s.conf.Logger = nil
}

func (s *HTTPTestSuite) newConnection(fn RoundTripFunc) *HTTPConnection {
	con, err := NewHTTPConnection(s.conf)
	s.Require().NoError(err)
	con.SetHTTPClient(NewTestClient(fn))
	return con
}

func (s *HTTPTestSuite) TestRequest_headersOnEveryCall() {
	var seen []http.Header
	con := s.newConnection(func(req *http.Request) *http.Response {
		seen = append(seen, req.Header.Clone())
		return jsonResponse(200, `{"object":"user","id":"me"}`)
	})

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete} {
		_, err := con.Request(context.Background(), method, "users/me", nil)
		s.Require().NoError(err)
	}

	s.Require().Len(seen, 4)
	for _, h := range seen {
		s.Equal("Bearer secret_token", h.Get("Authorization"))
		s.Equal(constants.DefaultNotionVersion, h.Get("Notion-Version"))
		s.Equal("application/json", h.Get("Content-Type"))
		s.Equal(constants.UserAgent, h.Get("User-Agent"))
	}
}

func (s *HTTPTestSuite) TestRequest_url() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		s.Equal("http://test.notion/v1/databases/abc/query", req.URL.String())
		return jsonResponse(200, `{}`)
	})

	_, err := con.Request(context.Background(), http.MethodPost, "databases/abc/query", nil)
	s.Require().NoError(err)
	s.Equal("http://test.notion/v1/users", con.URL("/users"))
}

func (s *HTTPTestSuite) TestRequest_postSendsJSONBody() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		s.Equal(http.MethodPost, req.Method)
		s.Empty(req.URL.RawQuery)

		data, err := io.ReadAll(req.Body)
		s.Require().NoError(err)
		s.JSONEq(`{"filter":{"property":"Type","select":{"equals":"fruit"}},"page_size":1,"start_cursor":"C1"}`, string(data))
		return jsonResponse(200, `{"object":"list","results":[],"has_more":false}`)
	})

	params := models.Params{
		"filter":    map[string]any{"property": "Type", "select": map[string]any{"equals": "fruit"}},
		"page_size": 1,
	}.WithCursor("C1")

	resp, err := con.Request(context.Background(), http.MethodPost, "databases/abc/query", params)
	s.Require().NoError(err)

	page, err := resp.Page()
	s.Require().NoError(err)
	s.Equal("list", page.Object())
}

func (s *HTTPTestSuite) TestRequest_getSendsQuery() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		s.Equal(http.MethodGet, req.Method)
		s.Equal(http.NoBody, req.Body)
		s.Equal("page_size=50&start_cursor=abc", req.URL.RawQuery)
		return jsonResponse(200, `{}`)
	})

	_, err := con.Request(context.Background(), http.MethodGet, "users", models.Params{
		"page_size":    50,
		"start_cursor": models.Cursor("abc"),
		"ignored":      nil,
	})
	s.Require().NoError(err)
}

func (s *HTTPTestSuite) TestRequest_serverError() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(400, `{"object":"error","status":400,"code":"validation_error","message":"body failed validation","request_id":"r-1"}`)
	})

	resp, err := con.Request(context.Background(), http.MethodGet, "users", nil)
	s.Require().Error(err)
	s.Require().NotNil(resp)

	var serverErr *models.ServerError
	s.Require().True(errors.As(err, &serverErr))
	s.Equal(400, serverErr.StatusCode)
	s.Equal("validation_error", serverErr.Code)
	s.Equal("body failed validation", serverErr.Message)
	s.Equal("r-1", serverErr.RequestID)
	s.Contains(err.Error(), "validation_error")
}

func (s *HTTPTestSuite) TestRequest_serverErrorWithoutJSONBody() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(502, `<html>bad gateway</html>`)
	})

	_, err := con.Request(context.Background(), http.MethodGet, "users", nil)
	s.Require().ErrorIs(err, &models.ServerError{})

	var serverErr *models.ServerError
	s.Require().True(errors.As(err, &serverErr))
	s.Equal(502, serverErr.StatusCode)
	s.Equal("<html>bad gateway</html>", string(serverErr.Body))
	s.Equal("notion: 502 Bad Gateway", serverErr.Error())
}

func (s *HTTPTestSuite) TestRequest_transportError() {
	con, err := NewHTTPConnection(s.conf)
	s.Require().NoError(err)
	boom := errors.New("connection refused")
	con.SetHTTPClient(&http.Client{Transport: failingTransport{err: boom}})

	resp, err := con.Request(context.Background(), http.MethodGet, "users", nil)
	s.Nil(resp)
	s.Require().ErrorIs(err, &models.TransportError{})
	s.ErrorIs(err, boom)
}

func (s *HTTPTestSuite) TestRequest_canceledContext() {
	con, err := NewHTTPConnection(s.conf)
	s.Require().NoError(err)
	con.SetHTTPClient(&http.Client{Transport: contextTransport{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = con.Request(ctx, http.MethodGet, "users", nil)
	s.Require().ErrorIs(err, context.Canceled)
	s.ErrorIs(err, &models.TransportError{})
}

func (s *HTTPTestSuite) TestResponse_malformedBody() {
	con := s.newConnection(func(req *http.Request) *http.Response {
		return jsonResponse(200, `{"results": [`)
	})

	resp, err := con.Request(context.Background(), http.MethodGet, "users", nil)
	s.Require().NoError(err)

	_, err = resp.Page()
	s.ErrorIs(err, constants.ErrInvalidResponse)
}

func (s *HTTPTestSuite) TestNewHTTPConnection_validates() {
	_, err := NewHTTPConnection(NewConfig(""))
	s.ErrorIs(err, constants.ErrNoAuth)

	conf := NewConfig("t")
	conf.NotionVersion = ""
	_, err = NewHTTPConnection(conf)
	s.ErrorIs(err, constants.ErrNoVersion)

	_, err = NewHTTPConnection(nil)
	s.Error(err)
}

func TestEncodeQuery_nested(t *testing.T) {
	query, err := encodeQuery(models.Params{"filter": map[string]any{"a": true}})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := json.Marshal(map[string]any{"a": true})
	if query != "filter="+url.QueryEscape(string(want)) {
		t.Fatalf("unexpected query %q", query)
	}
}
