package constants

import "errors"

// Errors
var (
	ErrInvalidResponse = errors.New("invalid Notion response")
	ErrMissingField    = errors.New("response is missing a required field")
)

var (
	ErrNoAuth       = errors.New("auth token not set")
	ErrNoBaseURL    = errors.New("base url not set")
	ErrNoAPIVersion = errors.New("api version not set")
	ErrNoVersion    = errors.New("notion version not set")
)
