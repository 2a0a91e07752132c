// Package hit holds the alignment hit value type and the sequence-pair grouper.
//
// Hits are produced upstream and are never mutated here; callers are expected
// to supply From <= To on every range.
package hit

// Range is a closed interval [From, To] on one sequence.
type Range struct {
	From int
	To   int
}

// Len returns the number of positions covered by r.
func (r Range) Len() int { return r.To - r.From + 1 }

// Intersects reports whether r and o share at least one position.
func (r Range) Intersects(o Range) bool { return r.From <= o.To && o.From <= r.To }

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	if o.From < r.From {
		r.From = o.From
	}
	if o.To > r.To {
		r.To = o.To
	}
	return r
}

// Less orders ranges by From, then To.
func (r Range) Less(o Range) bool {
	if r.From != o.From {
		return r.From < o.From
	}
	return r.To < o.To
}

// Strand is the orientation of a range on its sequence.
type Strand int8

const (
	Plus  Strand = 1
	Minus Strand = -1
)

func (s Strand) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Flip returns the opposite strand.
func (s Strand) Flip() Strand {
	if s == Minus {
		return Plus
	}
	return Minus
}

// ParseStrand accepts "+", "-", "plus" and "minus"; anything else is Plus.
func ParseStrand(s string) Strand {
	switch s {
	case "-", "minus", "Minus":
		return Minus
	}
	return Plus
}

// Metrics are the score values carried with a hit.
type Metrics struct {
	Length          int     // alignment length as reported by the producer
	RawScore        float64 // e.g. BLAST bit score
	PercentIdentity float64
}

// Hit is one pairwise alignment interval pair.
//
// Index is the hit's position in the caller's input. It is the final
// tie-break key wherever two hits would otherwise compare equal.
type Hit struct {
	QueryID       string
	SubjectID     string
	Query         Range
	Subject       Range
	QueryStrand   Strand
	SubjectStrand Strand
	Metrics       Metrics
	Index         int
}

func (h Hit) QueryRange() Range   { return h.Query }
func (h Hit) SubjectRange() Range { return h.Subject }

// Length is the longer of the two axis spans.
func (h Hit) Length() int {
	q, s := h.Query.Len(), h.Subject.Len()
	if s > q {
		return s
	}
	return q
}

func (h Hit) Score() float64           { return h.Metrics.RawScore }
func (h Hit) PercentIdentity() float64 { return h.Metrics.PercentIdentity }

// NormalizedStrands flips both strands when the query is on Minus, so that
// the query strand is always Plus and the relative orientation is preserved.
func (h Hit) NormalizedStrands() (query, subject Strand) {
	q, s := h.QueryStrand, h.SubjectStrand
	if q == 0 {
		q = Plus
	}
	if s == 0 {
		s = Plus
	}
	if q == Minus {
		return q.Flip(), s.Flip()
	}
	return q, s
}
