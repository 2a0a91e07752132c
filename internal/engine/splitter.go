package engine

import (
	"sort"

	"compart/internal/hit"
)

// span is one hit projected onto the compartment's linear axis.
type span struct {
	start, end int
	length     int
	pos        int // index in the compartment's position order
}

// subjectReversed reports whether the subject runs backwards as the query
// advances. It is decided from the first two members; equal starts fall back
// to the group's relative strand.
func subjectReversed(members []hit.Hit, sameStrand bool) bool {
	if len(members) < 2 || members[0].Subject.From == members[1].Subject.From {
		return !sameStrand
	}
	return members[1].Subject.From < members[0].Subject.From
}

// linearize projects members onto one increasing axis and returns the spans
// in linear order.
func linearize(members []hit.Hit, reversed bool) []span {
	spans := make([]span, len(members))
	for i, h := range members {
		s := span{start: h.Subject.From, end: h.Subject.To, length: h.Length(), pos: i}
		if reversed {
			s.start, s.end = -h.Subject.To, -h.Subject.From
		}
		spans[i] = s
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end < spans[j].end
	})
	return spans
}

// forwardBreaks walks spans upwards. A span whose start lies beyond every
// visited span's end plus ratio times that span's length opens a new piece;
// the returned positions are indices into spans.
func forwardBreaks(spans []span, ratio float64) []int {
	if len(spans) < 2 {
		return nil
	}
	var out []int
	limit := float64(spans[0].end) + ratio*float64(spans[0].length)
	for i := 1; i < len(spans); i++ {
		s := spans[i]
		if float64(s.start) > limit {
			out = append(out, i)
		}
		if l := float64(s.end) + ratio*float64(s.length); l > limit {
			limit = l
		}
	}
	return out
}

// backwardBreaks is the mirror of forwardBreaks, walking spans downwards.
// Positions are reported in the same convention: the index that starts a piece.
func backwardBreaks(spans []span, ratio float64) []int {
	n := len(spans)
	if n < 2 {
		return nil
	}
	var out []int
	limit := float64(spans[n-1].start) - ratio*float64(spans[n-1].length)
	for i := n - 2; i >= 0; i-- {
		s := spans[i]
		if float64(s.end) < limit {
			out = append(out, i+1)
		}
		if l := float64(s.start) - ratio*float64(s.length); l < limit {
			limit = l
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// confirmBreaks keeps the positions present in both ascending lists.
func confirmBreaks(fwd, bwd []int) []int {
	var out []int
	for i, j := 0, 0; i < len(fwd) && j < len(bwd); {
		switch {
		case fwd[i] < bwd[j]:
			i++
		case fwd[i] > bwd[j]:
			j++
		default:
			out = append(out, fwd[i])
			i++
			j++
		}
	}
	return out
}

// Split cuts a raw compartment (position order) wherever both scans agree on
// a gap wider than ratio times the neighbouring hit length. Each piece keeps
// its members in position order. Fewer than two members are returned as-is.
func Split(members []hit.Hit, ratio float64, sameStrand bool) [][]hit.Hit {
	if len(members) < 2 {
		return [][]hit.Hit{members}
	}
	spans := linearize(members, subjectReversed(members, sameStrand))
	cuts := confirmBreaks(forwardBreaks(spans, ratio), backwardBreaks(spans, ratio))
	if len(cuts) == 0 {
		return [][]hit.Hit{members}
	}

	out := make([][]hit.Hit, 0, len(cuts)+1)
	prev := 0
	for _, c := range append(cuts, len(spans)) {
		piece := spans[prev:c]
		positions := make([]int, len(piece))
		for i, s := range piece {
			positions[i] = s.pos
		}
		sort.Ints(positions)
		hits := make([]hit.Hit, len(positions))
		for i, p := range positions {
			hits[i] = members[p]
		}
		out = append(out, hits)
		prev = c
	}
	return out
}
