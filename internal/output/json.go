package output

import (
	"encoding/json"
	"io"

	"compart/internal/hit"
	"compart/pkg/api"
)

// ToAPICompartment converts a Record to the stable wire schema (v1).
func ToAPICompartment(r Record) api.CompartmentV1 {
	c := r.Compartment
	v := api.CompartmentV1{
		Rank:          r.Rank,
		QueryID:       c.Key.QueryID,
		SubjectID:     c.Key.SubjectID,
		SubjectStrand: c.Key.SubjectStrand.String(),
		TotalScore:    c.TotalScore,
		Identity:      c.Identity(),
		QueryStart:    c.QueryCover.From,
		QueryEnd:      c.QueryCover.To,
		SubjectStart:  c.SubjectCover.From,
		SubjectEnd:    c.SubjectCover.To,
		Hits:          make([]api.HitV1, 0, len(c.Hits)),
	}
	for _, h := range c.Hits {
		v.Hits = append(v.Hits, HitToAPI(h))
	}
	for _, s := range r.Segments {
		v.Segments = append(v.Segments, api.CompositeV1{
			QueryStart:   s.Query.From,
			QueryEnd:     s.Query.To,
			SubjectStart: s.Subject.From,
			SubjectEnd:   s.Subject.To,
			Score:        s.Score,
			Hits:         len(s.Hits),
		})
	}
	return v
}

// HitToAPI converts a member hit to the wire schema.
func HitToAPI(h hit.Hit) api.HitV1 {
	return api.HitV1{
		QueryID:         h.QueryID,
		SubjectID:       h.SubjectID,
		QueryStart:      h.Query.From,
		QueryEnd:        h.Query.To,
		SubjectStart:    h.Subject.From,
		SubjectEnd:      h.Subject.To,
		QueryStrand:     h.QueryStrand.String(),
		SubjectStrand:   h.SubjectStrand.String(),
		Length:          h.Metrics.Length,
		Score:           h.Metrics.RawScore,
		PercentIdentity: h.Metrics.PercentIdentity,
	}
}

func toAPICompartments(list []Record) []api.CompartmentV1 {
	out := make([]api.CompartmentV1, 0, len(list))
	for _, r := range list {
		out = append(out, ToAPICompartment(r))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 compartments (pretty-indented).
func WriteJSON(w io.Writer, list []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toAPICompartments(list))
}
