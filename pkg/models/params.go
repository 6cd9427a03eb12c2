package models

import "github.com/nyoungstudios/notion.go/pkg/constants"

// Cursor is an opaque continuation token returned by the server as
// `next_cursor` and echoed back as `start_cursor`.
type Cursor string

// Params is the set of named request parameters sent with one call.
//
// Values are arbitrary JSON values and are forwarded verbatim: as the JSON
// body for POST, PATCH and DELETE, and as query values for GET.
type Params map[string]any

// Clone returns a shallow copy. Values are shared, keys are not.
func (p Params) Clone() Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// WithCursor returns a copy of p whose start_cursor is c.
// p itself is left unchanged.
func (p Params) WithCursor(c Cursor) Params {
	out := p.Clone()
	out[constants.KeyStartCursor] = string(c)
	return out
}

// Cursor returns the start_cursor carried by p, if any.
func (p Params) Cursor() (Cursor, bool) {
	switch v := p[constants.KeyStartCursor].(type) {
	case string:
		return Cursor(v), true
	case Cursor:
		return v, true
	default:
		return "", false
	}
}
