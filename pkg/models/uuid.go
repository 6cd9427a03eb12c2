package models

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
)

// ID is a Notion object identifier.
//
// Notion accepts and returns identifiers both in the dashed form
// ("c5ba4b0e-8d24-4b7b-9b5b-4d0aa3f9a0e1") and in the compact 32-hex form
// that appears in page URLs. ParseID accepts both.
type ID struct {
	uuid.UUID
}

// NewID returns a random v4 identifier.
func NewID() ID {
	return ID{uuid.Must(uuid.NewV4())}
}

func ParseID(s string) (ID, error) {
	id, err := uuid.FromString(strings.TrimSpace(s))
	if err != nil {
		return ID{}, fmt.Errorf("invalid notion id %q: %w", s, err)
	}
	return ID{id}, nil
}

// Compact returns the identifier without dashes.
func (id ID) Compact() string {
	return strings.ReplaceAll(id.String(), "-", "")
}

func (id ID) IsZero() bool {
	return id.UUID == uuid.Nil
}

// SameID reports whether a and b name the same object, ignoring the
// difference between the dashed and compact forms.
func SameID(a, b string) bool {
	ida, err := ParseID(a)
	if err != nil {
		return false
	}
	idb, err := ParseID(b)
	if err != nil {
		return false
	}
	return ida.UUID == idb.UUID
}
