// Package fakenotion provides a fake Notion API server for testing purposes.
// It speaks the public REST API over HTTP using JSON, keeps its data in
// memory and paginates every listing with `start_cursor`/`page_size` the way
// the real service does.
//
// To flexibly inject failures, register a [Failure] that matches the N-th
// request to a given method and path and answers it with a Notion-shaped
// error body instead of the normal response.
//
// The routes are implemented using `gorilla/mux`.
package fakenotion

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/nyoungstudios/notion.go/pkg/constants"
	"github.com/nyoungstudios/notion.go/pkg/models"
)

const (
	// DefaultToken is the integration token the server accepts unless Token is changed
	DefaultToken = "secret_fake"

	defaultPageSize = 100
	maxPageSize     = 100
)

// Failure answers one matching request with an error.
type Failure struct {
	// Method and Path match the request, e.g. "POST" and "/v1/search"
	Method string
	Path   string
	// Nth is the 1-based index of the matching request that fails
	Nth int

	Status  int
	Code    string
	Message string

	seen int
}

// Request is a recorded incoming request.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Body is the decoded JSON body, nil when there was none
	Body map[string]any
}

type database struct {
	object map[string]any
	rows   []string
}

type block struct {
	object   map[string]any
	children []string
}

// Server is a fake Notion API. The zero value is not usable; call New.
type Server struct {
	// Token is the accepted integration token
	Token string

	mu        sync.Mutex
	databases map[string]*database
	dbOrder   []string
	pages     map[string]map[string]any
	pageOrder []string
	blocks    map[string]*block
	users     []map[string]any
	bot       map[string]any
	failures  []*Failure
	requests  []Request

	router *mux.Router
	http   *httptest.Server
}

func New() *Server {
	s := &Server{
		Token:     DefaultToken,
		databases: make(map[string]*database),
		pages:     make(map[string]map[string]any),
		blocks:    make(map[string]*block),
	}
	s.bot = map[string]any{
		"object": "user",
		"id":     models.NewID().String(),
		"type":   "bot",
		"name":   "Fake Integration",
		"bot":    map[string]any{},
	}
	s.users = append(s.users, s.bot)
	s.router = s.routes()
	return s
}

// Start serves on a random local port and returns the base URL to use as
// the client's BaseURL.
func (s *Server) Start() string {
	s.http = httptest.NewServer(s)
	return s.http.URL
}

// URL returns the base URL returned by Start.
func (s *Server) URL() string {
	if s.http == nil {
		return ""
	}
	return s.http.URL
}

func (s *Server) Close() {
	if s.http != nil {
		s.http.Close()
	}
}

// Fail registers f.
func (s *Server) Fail(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Nth <= 0 {
		f.Nth = 1
	}
	if f.Status == 0 {
		f.Status = http.StatusInternalServerError
	}
	if f.Code == "" {
		f.Code = "internal_server_error"
	}
	s.failures = append(s.failures, &f)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// Bot returns the user object of the integration itself.
func (s *Server) Bot() map[string]any {
	return s.bot
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&rec.Body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_json", "Error parsing JSON body.")
			return
		}
	}

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	failure := s.matchFailure(r.Method, r.URL.Path)
	s.mu.Unlock()

	if r.Header.Get(constants.HeaderAuthorization) != "Bearer "+s.Token {
		respondError(w, http.StatusUnauthorized, "unauthorized", "API token is invalid.")
		return
	}
	if r.Header.Get(constants.HeaderNotionVersion) == "" {
		respondError(w, http.StatusBadRequest, "missing_version", "Notion-Version header failed validation: Notion-Version header should be defined, instead was `undefined`.")
		return
	}
	if failure != nil {
		respondError(w, failure.Status, failure.Code, failure.Message)
		return
	}

	s.router.ServeHTTP(w, r.WithContext(withBody(r.Context(), rec.Body)))
}

func (s *Server) matchFailure(method, path string) *Failure {
	for _, f := range s.failures {
		if f.Method != method || f.Path != path {
			continue
		}
		f.seen++
		if f.seen == f.Nth {
			return f
		}
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	if payload != nil {
		_, _ = w.Write(response)
	}
}

// respondError sends the error object the Notion API uses for every failure.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]any{
		"object":  "error",
		"status":  status,
		"code":    code,
		"message": message,
	})
}
