// Package runid generates the identifier attached to every log line of one
// invocation.
package runid

import (
	"sync"

	"github.com/google/uuid"
)

// Generator produces run identifiers.
type Generator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers, so log lines
// from successive runs sort by start time.
//
// Safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
//
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined identifiers, for tests that compare
// log output.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator returns a generator yielding ids in order. Once they are
// used up the last one repeats; with no ids it always returns "run-fixed".
func NewFixedGenerator(ids ...string) *FixedGenerator {
	if len(ids) == 0 {
		ids = []string{"run-fixed"}
	}
	return &FixedGenerator{ids: ids}
}

// Generate returns the next identifier.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
