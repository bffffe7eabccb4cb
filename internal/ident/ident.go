// Package ident generates the unique identifiers that name crash report
// files. Identifiers are ULIDs: time-ordered, collision-resistant through
// embedded randomness, and safe to use as a filename component.
package ident

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces time-ordered unique identifiers. Identifiers from a
// single Generator are strictly lexicographically increasing, even within
// the same millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a generator backed by crypto/rand entropy.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next returns a fresh identifier. It fails only when the entropy source
// does, which callers treat as unrecoverable.
func (g *Generator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("generating report id: %w", err)
	}
	return id.String(), nil
}
