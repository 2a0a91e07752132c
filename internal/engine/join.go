package engine

import "compart/internal/hit"

// Composite is a run of hits packaged as one discontinuous alignment.
type Composite struct {
	Hits    []hit.Hit
	Query   hit.Range
	Subject hit.Range
	Score   int
}

func newComposite(hits []hit.Hit) Composite {
	c := Composite{Hits: hits, Query: hits[0].Query, Subject: hits[0].Subject}
	for _, h := range hits {
		c.Query = c.Query.Union(h.Query)
		c.Subject = c.Subject.Union(h.Subject)
		c.Score += h.Length()
	}
	return c
}

// Join walks an ordered compartment and starts a new composite whenever the
// gap to the next hit on either axis exceeds gapRatio times the summed member
// length. No feasibility is tested; hits must already form a chain.
func Join(hits []hit.Hit, gapRatio float64) []Composite {
	if len(hits) == 0 {
		return nil
	}
	total := 0
	for _, h := range hits {
		total += h.Length()
	}
	maxGap := gapRatio * float64(total)

	var out []Composite
	start := 0
	for i := 1; i < len(hits); i++ {
		prev, next := hits[i-1], hits[i]
		if float64(queryGap(prev, next)) > maxGap || float64(subjectGap(prev, next)) > maxGap {
			out = append(out, newComposite(hits[start:i:i]))
			start = i
		}
	}
	return append(out, newComposite(hits[start:]))
}

func queryGap(prev, next hit.Hit) int { return next.Query.From - prev.Query.To }

// subjectGap follows whichever direction the subject runs between the two hits.
func subjectGap(prev, next hit.Hit) int {
	if next.Subject.From < prev.Subject.From {
		return prev.Subject.From - next.Subject.To
	}
	return next.Subject.From - prev.Subject.To
}
