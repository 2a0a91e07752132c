package engine

import "compart/internal/hit"

// Stats counts what one group (or one run) produced.
type Stats struct {
	Hits         int
	Raw          int // compartments out of the builder
	Compartments int // compartments after the splitter
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Hits += o.Hits
	s.Raw += o.Raw
	s.Compartments += o.Compartments
}

// Splits is the number of extra pieces the splitter created.
func (s Stats) Splits() int { return s.Compartments - s.Raw }

// Engine runs the compartment pipeline with one validated Config.
type Engine struct{ cfg Config }

// New validates c and returns an Engine. The error wraps ErrInvalidConfiguration.
func New(c Config) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: c}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Group builds, splits and scores the compartments of one group. The result
// is unranked; callers merge groups and call Rank once.
func (e *Engine) Group(g hit.Group) ([]Compartment, Stats) {
	st := Stats{Hits: len(g.Hits)}
	raw := Build(g, e.cfg)
	st.Raw = len(raw)

	var out []Compartment
	for _, members := range raw {
		pieces := [][]hit.Hit{members}
		if e.cfg.GapFilter && len(members) > 1 {
			pieces = Split(members, e.cfg.GapFilterRatio, g.Key.SameStrand())
		}
		for _, p := range pieces {
			out = append(out, NewCompartment(g.Key, p))
		}
	}
	st.Compartments = len(out)
	return out, st
}

// Compartmentalize runs the whole engine synchronously and returns ranked
// compartments. Hit ranges must satisfy From <= To; this is not checked.
func (e *Engine) Compartmentalize(hits []hit.Hit) ([]Compartment, Stats) {
	var (
		all []Compartment
		st  Stats
	)
	for _, g := range hit.GroupByPair(hits) {
		cs, gs := e.Group(g)
		all = append(all, cs...)
		st.Add(gs)
	}
	Rank(all)
	return all, st
}
