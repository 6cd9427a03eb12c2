package models

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"

	"github.com/nyoungstudios/notion.go/pkg/constants"
)

// Page is one decoded response body of the Notion API.
//
// The body is kept exactly as the server sent it. The accessors read only the
// keys they need, so fields this package does not know about survive
// untouched through [Page.Raw], [Page.Decode] and [Page.MarshalJSON].
//
// A listing response carries `results`, `has_more` and `next_cursor`.
// A single-entity response (a page, a block, a user) carries none of them.
type Page struct {
	raw []byte
}

// NewPage validates that data is a JSON object and wraps it.
// The slice is copied.
func NewPage(data []byte) (Page, error) {
	if !json.Valid(data) {
		return Page{}, fmt.Errorf("%w: body is not valid JSON", constants.ErrInvalidResponse)
	}

	_, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
	}
	if dataType != jsonparser.Object {
		return Page{}, fmt.Errorf("%w: expected a JSON object, got %s", constants.ErrInvalidResponse, dataType)
	}

	return Page{raw: append([]byte(nil), data...)}, nil
}

// PageFromMap encodes m and wraps the result.
func PageFromMap(m map[string]any) (Page, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return Page{}, err
	}
	return NewPage(data)
}

// Raw returns the JSON body. Callers must not modify it.
func (p Page) Raw() []byte {
	return p.raw
}

func (p Page) IsZero() bool {
	return len(p.raw) == 0
}

// Object returns the `object` discriminator, e.g. "list", "page" or "error".
func (p Page) Object() string {
	s, _ := jsonparser.GetString(p.raw, "object")
	return s
}

// ID returns the `id` field, empty for listings.
func (p Page) ID() string {
	s, _ := jsonparser.GetString(p.raw, "id")
	return s
}

// HasMore reports the `has_more` flag.
// A missing or non-boolean flag is a *ProtocolError.
func (p Page) HasMore() (bool, error) {
	v, err := jsonparser.GetBoolean(p.raw, constants.KeyHasMore)
	if err != nil {
		return false, &ProtocolError{Field: constants.KeyHasMore, Err: fieldError(err)}
	}
	return v, nil
}

// NextCursor returns the `next_cursor` token.
// ok is false when the field is absent, null or not a string.
func (p Page) NextCursor() (cursor Cursor, ok bool) {
	value, dataType, _, err := jsonparser.Get(p.raw, constants.KeyNextCursor)
	if err != nil || dataType != jsonparser.String {
		return "", false
	}

	s, err := jsonparser.ParseString(value)
	if err != nil {
		return "", false
	}
	return Cursor(s), true
}

// Results returns the elements of the `results` array in server order.
// An absent array yields no results; a `results` field that is not an array
// is a *ProtocolError.
func (p Page) Results() ([]json.RawMessage, error) {
	value, dataType, _, err := jsonparser.Get(p.raw, constants.KeyResults)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return nil, nil
	}
	if err != nil {
		return nil, &ProtocolError{Field: constants.KeyResults, Err: err}
	}
	if dataType != jsonparser.Array {
		return nil, &ProtocolError{
			Field: constants.KeyResults,
			Err:   fmt.Errorf("expected array, got %s", dataType),
		}
	}

	results := []json.RawMessage{}
	_, err = jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, _ error) {
		if itemType == jsonparser.String {
			// jsonparser strips the quotes but leaves the escapes in place
			quoted := make(json.RawMessage, 0, len(item)+2)
			quoted = append(quoted, '"')
			quoted = append(quoted, item...)
			results = append(results, append(quoted, '"'))
			return
		}
		results = append(results, append(json.RawMessage(nil), item...))
	})
	if err != nil {
		return nil, &ProtocolError{Field: constants.KeyResults, Err: err}
	}

	return results, nil
}

// Decode unmarshals the body into v.
func (p Page) Decode(v any) error {
	if err := json.Unmarshal(p.raw, v); err != nil {
		return fmt.Errorf("%w: %v", constants.ErrInvalidResponse, err)
	}
	return nil
}

// Map decodes the body into a generic mapping.
func (p Page) Map() (map[string]any, error) {
	var m map[string]any
	if err := p.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (p Page) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("null"), nil
	}
	return p.raw, nil
}

func (p *Page) UnmarshalJSON(data []byte) error {
	page, err := NewPage(data)
	if err != nil {
		return err
	}
	*p = page
	return nil
}

func (p Page) String() string {
	return string(p.raw)
}

func fieldError(err error) error {
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return constants.ErrMissingField
	}
	return fmt.Errorf("%w: %v", constants.ErrMissingField, err)
}
