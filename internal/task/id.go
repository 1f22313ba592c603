package task

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out task identifiers.
// Ids must be unique across every task resident in a list at once.
type IDGenerator interface {
	NextID() string
}

// UUIDGenerator produces random version 4 UUIDs.
type UUIDGenerator struct{}

// NextID returns a new UUID string.
func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// SequenceGenerator produces Prefix followed by an increasing counter
// ("t1", "t2", ...). The zero value uses the prefix "t".
// It is not safe for concurrent use.
type SequenceGenerator struct {
	Prefix string
	n      int
}

// NextID returns the next id in the sequence.
func (g *SequenceGenerator) NextID() string {
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "t"
	}
	return fmt.Sprintf("%s%d", prefix, g.n)
}

// FixedGenerator returns the given ids in order, then falls back to a
// sequence. Useful when a test needs to name its ids up front.
type FixedGenerator struct {
	IDs      []string
	fallback SequenceGenerator
}

// NextID returns the next fixed id, or a sequence id once they run out.
func (g *FixedGenerator) NextID() string {
	if len(g.IDs) > 0 {
		id := g.IDs[0]
		g.IDs = g.IDs[1:]
		return id
	}
	return g.fallback.NextID()
}
