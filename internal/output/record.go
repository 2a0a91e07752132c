package output

import "compart/internal/engine"

// Record is one ranked compartment on its way to a writer.
type Record struct {
	Rank        int // 1-based position in the ranked list
	Compartment engine.Compartment
	Segments    []engine.Composite // nil unless joining was requested
}
