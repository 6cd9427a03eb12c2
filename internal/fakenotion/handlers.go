package fakenotion

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nyoungstudios/notion.go/pkg/constants"
)

type bodyKey struct{}

func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(r *http.Request) map[string]any {
	body, _ := r.Context().Value(bodyKey{}).(map[string]any)
	if body == nil {
		return map[string]any{}
	}
	return body
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/v1").Subrouter()

	api.HandleFunc("/databases", s.handleListDatabases).Methods(http.MethodGet)
	api.HandleFunc("/databases", s.handleCreateDatabase).Methods(http.MethodPost)
	api.HandleFunc("/databases/{id}", s.handleRetrieve).Methods(http.MethodGet)
	api.HandleFunc("/databases/{id}", s.handleUpdateDatabase).Methods(http.MethodPatch)
	api.HandleFunc("/databases/{id}/query", s.handleQueryDatabase).Methods(http.MethodPost)

	api.HandleFunc("/pages", s.handleCreatePage).Methods(http.MethodPost)
	api.HandleFunc("/pages/{id}", s.handleRetrieve).Methods(http.MethodGet)
	api.HandleFunc("/pages/{id}", s.handleUpdatePage).Methods(http.MethodPatch)

	api.HandleFunc("/blocks/{id}", s.handleRetrieve).Methods(http.MethodGet)
	api.HandleFunc("/blocks/{id}", s.handleUpdateBlock).Methods(http.MethodPatch)
	api.HandleFunc("/blocks/{id}", s.handleDeleteBlock).Methods(http.MethodDelete)
	api.HandleFunc("/blocks/{id}/children", s.handleListChildren).Methods(http.MethodGet)
	api.HandleFunc("/blocks/{id}/children", s.handleAppendChildren).Methods(http.MethodPatch)

	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users/me", s.handleMe).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", s.handleRetrieveUser).Methods(http.MethodGet)

	api.HandleFunc("/search", s.handleSearch).Methods(http.MethodPost)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusBadRequest, "invalid_request_url", "Invalid request URL.")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusBadRequest, "invalid_request_url", "Invalid request URL.")
	})

	return router
}

// listing parameters come from the JSON body for POST and from the query
// string for GET
type listing struct {
	cursor   string
	pageSize int
}

func listingFrom(r *http.Request) (listing, bool) {
	l := listing{pageSize: defaultPageSize}

	if r.Method == http.MethodGet {
		q := r.URL.Query()
		l.cursor = q.Get(constants.KeyStartCursor)
		if raw := q.Get(constants.KeyPageSize); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return l, false
			}
			l.pageSize = n
		}
	} else {
		body := bodyFrom(r)
		if c, ok := body[constants.KeyStartCursor]; ok {
			cursor, isString := c.(string)
			if !isString {
				return l, false
			}
			l.cursor = cursor
		}
		if raw, ok := body[constants.KeyPageSize]; ok {
			n, isNumber := raw.(float64)
			if !isNumber {
				return l, false
			}
			l.pageSize = int(n)
		}
	}

	if l.pageSize <= 0 {
		return l, false
	}
	if l.pageSize > maxPageSize {
		l.pageSize = maxPageSize
	}
	return l, true
}

// paginate answers with one page of items. The cursor of a page is the id of
// its first item, as with the real service.
func paginate(w http.ResponseWriter, r *http.Request, listType string, items []map[string]any) {
	l, ok := listingFrom(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "body failed validation: page_size or start_cursor is invalid.")
		return
	}

	start := 0
	if l.cursor != "" {
		start = -1
		for i, item := range items {
			if item["id"] == l.cursor {
				start = i
				break
			}
		}
		if start < 0 {
			respondError(w, http.StatusBadRequest, "validation_error", "start_cursor provided is invalid: "+l.cursor)
			return
		}
	}

	end := start + l.pageSize
	if end > len(items) {
		end = len(items)
	}

	var nextCursor any
	hasMore := end < len(items)
	if hasMore {
		nextCursor = items[end]["id"]
	}

	results := items[start:end]
	if results == nil {
		results = []map[string]any{}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"object":                "list",
		constants.KeyResults:    results,
		constants.KeyNextCursor: nextCursor,
		constants.KeyHasMore:    hasMore,
		"type":                  listType,
		listType:                map[string]any{},
	})
}

func (s *Server) pathKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := mux.Vars(r)["id"]
	key, ok := normalize(raw)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "path failed validation: path.id should be a valid uuid, instead was `"+raw+"`.")
		return "", false
	}
	return key, true
}

func notFound(w http.ResponseWriter, key string) {
	respondError(w, http.StatusNotFound, "object_not_found", "Could not find object with ID: "+key+".")
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kind := strings.TrimSuffix(strings.Split(strings.TrimPrefix(r.URL.Path, "/v1/"), "/")[0], "s")
	object, ok := s.lookup(key)
	if !ok || object["object"] != kind {
		notFound(w, key)
		return
	}
	respondJSON(w, http.StatusOK, object)
}

func (s *Server) handleListDatabases(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]map[string]any, 0, len(s.dbOrder))
	for _, id := range s.dbOrder {
		items = append(items, s.databases[id].object)
	}
	paginate(w, r, "database", items)
}

func (s *Server) handleCreateDatabase(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	if _, ok := body["parent"]; !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "body failed validation: body.parent should be defined, instead was `undefined`.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	object := map[string]any{}
	for k, v := range body {
		object[k] = v
	}
	if titles, ok := object["title"].([]any); ok {
		object["title"] = withPlainText(titles)
	}
	id := s.putDatabase(object)
	respondJSON(w, http.StatusOK, s.databases[id].object)
}

func (s *Server) handleUpdateDatabase(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.databases[key]
	if !ok {
		notFound(w, key)
		return
	}
	body := bodyFrom(r)
	if titles, ok := body["title"].([]any); ok {
		db.object["title"] = withPlainText(titles)
	}
	if props, ok := body["properties"].(map[string]any); ok {
		merge(db.object, "properties", props)
	}
	respondJSON(w, http.StatusOK, db.object)
}

func (s *Server) handleQueryDatabase(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, ok := s.databases[key]
	if !ok {
		notFound(w, key)
		return
	}

	items := make([]map[string]any, 0, len(db.rows))
	for _, id := range db.rows {
		if page := s.pages[id]; page["archived"] != true {
			items = append(items, page)
		}
	}
	paginate(w, r, "page", items)
}

func (s *Server) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	parent, ok := body["parent"].(map[string]any)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "body failed validation: body.parent should be defined, instead was `undefined`.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := parent["type"]; !ok {
		if _, isDB := parent["database_id"]; isDB {
			parent["type"] = "database_id"
		} else {
			parent["type"] = "page_id"
		}
	}

	object := map[string]any{"parent": parent}
	if props, ok := body["properties"].(map[string]any); ok {
		object["properties"] = props
	}
	id := s.putPage(object)

	if children, ok := body["children"].([]any); ok {
		for _, child := range children {
			c, _ := child.(map[string]any)
			s.appendBlock(id, c)
		}
	}
	respondJSON(w, http.StatusOK, s.pages[id])
}

func (s *Server) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[key]
	if !ok {
		notFound(w, key)
		return
	}
	body := bodyFrom(r)
	if props, ok := body["properties"].(map[string]any); ok {
		merge(page, "properties", props)
	}
	if archived, ok := body["archived"].(bool); ok {
		page["archived"] = archived
	}
	respondJSON(w, http.StatusOK, page)
}

func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blocks[key]
	if !ok || b.object == nil || b.object["object"] != "block" {
		notFound(w, key)
		return
	}
	for k, v := range bodyFrom(r) {
		switch k {
		case "object", "id", "type", "has_children":
		default:
			b.object[k] = v
		}
	}
	respondJSON(w, http.StatusOK, b.object)
}

// handleDeleteBlock archives any object. Pages and databases are deleted
// through this endpoint too.
func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	object, ok := s.lookup(key)
	if !ok {
		notFound(w, key)
		return
	}
	object["archived"] = true
	respondJSON(w, http.StatusOK, object)
}

func (s *Server) children(key string) []map[string]any {
	b, ok := s.blocks[key]
	if !ok {
		return []map[string]any{}
	}
	items := make([]map[string]any, 0, len(b.children))
	for _, id := range b.children {
		if child := s.blocks[id].object; child["archived"] != true {
			items = append(items, child)
		}
	}
	return items
}

func (s *Server) handleListChildren(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); !ok {
		notFound(w, key)
		return
	}
	paginate(w, r, "block", s.children(key))
}

func (s *Server) handleAppendChildren(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	children, ok := bodyFrom(r)["children"].([]any)
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "body failed validation: body.children should be defined, instead was `undefined`.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(key); !ok {
		notFound(w, key)
		return
	}
	for _, child := range children {
		c, _ := child.(map[string]any)
		s.appendBlock(key, c)
	}

	// the response lists the parent's children from the start
	paginate(w, r.WithContext(withBody(r.Context(), nil)), "block", s.children(key))
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paginate(w, r, "user", s.users)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.bot)
}

func (s *Server) handleRetrieveUser(w http.ResponseWriter, r *http.Request) {
	key, ok := s.pathKey(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user["id"] == key {
			respondJSON(w, http.StatusOK, user)
			return
		}
	}
	notFound(w, key)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	query, _ := body["query"].(string)
	query = strings.ToLower(query)

	var only string
	if filter, ok := body["filter"].(map[string]any); ok && filter["property"] == "object" {
		only, _ = filter["value"].(string)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []map[string]any
	if only == "" || only == "database" {
		for _, id := range s.dbOrder {
			candidates = append(candidates, s.databases[id].object)
		}
	}
	if only == "" || only == "page" {
		for _, id := range s.pageOrder {
			candidates = append(candidates, s.pages[id])
		}
	}

	items := []map[string]any{}
	for _, object := range candidates {
		if object["archived"] == true {
			continue
		}
		if strings.Contains(strings.ToLower(titleOf(object)), query) {
			items = append(items, object)
		}
	}
	paginate(w, r, "page_or_database", items)
}

func withPlainText(parts []any) []any {
	for _, part := range parts {
		m, ok := part.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["type"]; !ok {
			m["type"] = "text"
		}
		if text, ok := m["text"].(map[string]any); ok {
			if _, ok := m["plain_text"]; !ok {
				m["plain_text"] = text["content"]
			}
		}
	}
	return parts
}

func merge(object map[string]any, key string, values map[string]any) {
	current, ok := object[key].(map[string]any)
	if !ok {
		current = map[string]any{}
		object[key] = current
	}
	for k, v := range values {
		current[k] = v
	}
}
