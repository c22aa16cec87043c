package testutil

// FixedIDGenerator returns the same session id every time.
//
// Golden snapshots embed the session id, so scenario runs must not depend on
// UUID generation. If id is empty, Generate returns "test-session-default".
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator that always returns id.
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed session id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
