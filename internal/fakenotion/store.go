package fakenotion

import (
	"github.com/nyoungstudios/notion.go/pkg/models"
)

func richText(content string) []any {
	return []any{map[string]any{
		"type":       "text",
		"text":       map[string]any{"content": content},
		"plain_text": content,
	}}
}

// normalize returns the dashed form of id, so that lookups work with either
// form. ok is false for strings that are not identifiers.
func normalize(id string) (string, bool) {
	parsed, err := models.ParseID(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

// AddDatabase stores a database with the given title and property schema and
// returns its id.
func (s *Server) AddDatabase(title string, properties map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if properties == nil {
		properties = map[string]any{"Name": map[string]any{"title": map[string]any{}}}
	}
	return s.putDatabase(map[string]any{
		"title":      richText(title),
		"properties": properties,
		"parent":     map[string]any{"type": "workspace", "workspace": true},
	})
}

func (s *Server) putDatabase(object map[string]any) string {
	id := models.NewID().String()
	object["object"] = "database"
	object["id"] = id
	s.databases[id] = &database{object: object}
	s.dbOrder = append(s.dbOrder, id)
	return id
}

// AddRow stores a page inside database dbID and returns its id.
func (s *Server) AddRow(dbID string, properties map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.putPage(map[string]any{
		"parent":     map[string]any{"type": "database_id", "database_id": dbID},
		"properties": properties,
	})
}

// AddPage stores a page titled title under parentID, or at the workspace
// level when parentID is empty, and returns its id.
func (s *Server) AddPage(parentID, title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := map[string]any{"type": "workspace", "workspace": true}
	if parentID != "" {
		parent = map[string]any{"type": "page_id", "page_id": parentID}
	}
	return s.putPage(map[string]any{
		"parent":     parent,
		"properties": map[string]any{"title": map[string]any{"id": "title", "type": "title", "title": richText(title)}},
	})
}

func (s *Server) putPage(object map[string]any) string {
	id := models.NewID().String()
	object["object"] = "page"
	object["id"] = id
	object["archived"] = false
	if object["properties"] == nil {
		object["properties"] = map[string]any{}
	}
	s.pages[id] = object
	s.pageOrder = append(s.pageOrder, id)

	if parent, ok := object["parent"].(map[string]any); ok {
		if dbID, ok := parent["database_id"].(string); ok {
			if key, ok := normalize(dbID); ok {
				if db := s.databases[key]; db != nil {
					db.rows = append(db.rows, id)
				}
			}
		}
	}
	return id
}

// AddBlock appends a block to the children of parentID, a page or a block,
// and returns its id. A missing "type" defaults to an empty paragraph.
func (s *Server) AddBlock(parentID string, object map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, _ := normalize(parentID)
	return s.appendBlock(key, object)
}

func (s *Server) appendBlock(parentKey string, object map[string]any) string {
	id := models.NewID().String()
	if object == nil {
		object = map[string]any{}
	}
	if _, ok := object["type"]; !ok {
		object["type"] = "paragraph"
		object["paragraph"] = map[string]any{"text": []any{}}
	}
	object["object"] = "block"
	object["id"] = id
	object["has_children"] = false
	object["archived"] = false
	s.blocks[id] = &block{object: object}

	parent := s.container(parentKey)
	parent.children = append(parent.children, id)
	if p, ok := s.blocks[parentKey]; ok {
		p.object["has_children"] = true
	}
	return id
}

// container returns the children list holder for a page or block.
// Pages get one lazily.
func (s *Server) container(key string) *block {
	if b, ok := s.blocks[key]; ok {
		return b
	}
	b := &block{}
	if page, ok := s.pages[key]; ok {
		b.object = page
	}
	s.blocks[key] = b
	return b
}

// AddUser stores a person user and returns its id.
func (s *Server) AddUser(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := models.NewID().String()
	s.users = append(s.users, map[string]any{
		"object": "user",
		"id":     id,
		"type":   "person",
		"name":   name,
		"person": map[string]any{},
	})
	return id
}

// lookup finds any stored object by id.
func (s *Server) lookup(key string) (map[string]any, bool) {
	if db, ok := s.databases[key]; ok {
		return db.object, true
	}
	if page, ok := s.pages[key]; ok {
		return page, true
	}
	if b, ok := s.blocks[key]; ok && b.object != nil && b.object["object"] == "block" {
		return b.object, true
	}
	return nil, false
}

func titleOf(object map[string]any) string {
	var parts []any
	switch object["object"] {
	case "database":
		parts, _ = object["title"].([]any)
	case "page":
		props, _ := object["properties"].(map[string]any)
		for _, prop := range props {
			p, _ := prop.(map[string]any)
			if t, ok := p["title"].([]any); ok {
				parts = t
				break
			}
		}
	}

	var title string
	for _, part := range parts {
		m, _ := part.(map[string]any)
		if text, ok := m["plain_text"].(string); ok {
			title += text
			continue
		}
		if text, ok := m["text"].(map[string]any); ok {
			content, _ := text["content"].(string)
			title += content
		}
	}
	return title
}
