package testutil

// FixedTraceIDGenerator generates the same trace id every time.
//
// CLI tests use it so JSON responses carry a predictable trace_id and can
// be compared byte for byte.
//
// Thread-safety: FixedTraceIDGenerator is stateless and safe for concurrent use.
type FixedTraceIDGenerator struct {
	id string
}

// NewFixedTraceIDGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedTraceIDGenerator(id string) *FixedTraceIDGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceIDGenerator{id: id}
}

// Generate returns the fixed trace id.
func (g *FixedTraceIDGenerator) Generate() string {
	return g.id
}
