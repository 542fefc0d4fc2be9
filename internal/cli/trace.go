package cli

import (
	"github.com/google/uuid"
)

// TraceIDGenerator produces the id that correlates the log lines and the
// JSON response of one CLI invocation.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 trace ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// traceIDs returns the configured generator, defaulting to UUIDv7Generator.
func (o *RootOptions) traceIDs() TraceIDGenerator {
	if o.TraceIDs != nil {
		return o.TraceIDs
	}
	return UUIDv7Generator{}
}
