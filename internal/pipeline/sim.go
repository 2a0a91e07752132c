package pipeline

import (
	"compart/internal/engine"
	"compart/internal/hit"
)

// Compartmenter is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Compartmenter interface {
	Group(g hit.Group) ([]engine.Compartment, engine.Stats)
}

// Compile-time check: the concrete engine satisfies the contract.
var _ Compartmenter = (*engine.Engine)(nil)
