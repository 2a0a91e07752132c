package engine

import "compart/internal/hit"

// fwd builds a Plus/Plus hit; len is taken from the ranges.
func fwd(qf, qt, sf, st int) hit.Hit {
	return hit.Hit{
		QueryID: "q", SubjectID: "s",
		Query: hit.Range{From: qf, To: qt}, Subject: hit.Range{From: sf, To: st},
		QueryStrand: hit.Plus, SubjectStrand: hit.Plus,
	}
}

// rev builds a Plus/Minus hit.
func rev(qf, qt, sf, st int) hit.Hit {
	h := fwd(qf, qt, sf, st)
	h.SubjectStrand = hit.Minus
	return h
}

func indexed(hs ...hit.Hit) []hit.Hit {
	hit.Reindex(hs)
	return hs
}

func groupOf(hs ...hit.Hit) hit.Group {
	hs = indexed(hs...)
	return hit.Group{Key: hit.KeyOf(hs[0]), Hits: hs}
}

func indices(hs []hit.Hit) []int {
	out := make([]int, len(hs))
	for i, h := range hs {
		out[i] = h.Index
	}
	return out
}
