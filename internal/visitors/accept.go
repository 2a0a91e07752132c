// Package visitors turns ranked compartments into output records.
package visitors

import (
	"compart/internal/engine"
	"compart/internal/output"
)

// Accept keeps compartments that reach the score and identity thresholds
// and, when JoinGapRatio > 0, attaches their composite segments. Zero
// thresholds keep everything.
type Accept struct {
	MinScore     int
	MinIdentity  float64
	JoinGapRatio float64
}

func (v Accept) Visit(rank int, c engine.Compartment) (keep bool, out output.Record, err error) {
	if c.TotalScore < v.MinScore {
		return false, output.Record{}, nil
	}
	if v.MinIdentity > 0 && c.Identity() < v.MinIdentity {
		return false, output.Record{}, nil
	}
	out = output.Record{Rank: rank, Compartment: c}
	if v.JoinGapRatio > 0 {
		out.Segments = engine.Join(c.Hits, v.JoinGapRatio)
	}
	return true, out, nil
}
