package analysis

import (
	"encoding/json"
	"errors"
)

// ErrNotConfigured indicates no provider credential is available. The process
// keeps serving; every analysis fails with this until a key is configured.
var ErrNotConfigured = errors.New("analysis provider not configured")

// ErrProvider indicates the upstream call failed or returned content that is
// not parseable JSON.
var ErrProvider = errors.New("analysis provider error")

// SchemaError indicates the provider returned valid JSON that does not match
// the report schema. Raw carries the offending payload for the caller to
// surface.
type SchemaError struct {
	Raw    json.RawMessage
	Detail string
}

func (e *SchemaError) Error() string {
	return "report schema mismatch: " + e.Detail
}
