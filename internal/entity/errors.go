package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// RemoteError is a non-success response of the remote table service.
type RemoteError struct {
	StatusCode int
	Body       []byte
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

// Payload returns the remote body as raw JSON when it is JSON and as a plain
// string otherwise, so it can be passed through to API callers verbatim.
func (e *RemoteError) Payload() any {
	if json.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}

	return string(e.Body)
}

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}
