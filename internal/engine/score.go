package engine

import (
	"sort"

	"compart/internal/hit"
)

// Compartment is one final, scored chain of hits.
type Compartment struct {
	Key          hit.Key
	Hits         []hit.Hit // position order
	TotalScore   int       // sum of member lengths
	QueryCover   hit.Range
	SubjectCover hit.Range
}

// NewCompartment scores members, which must be non-empty.
func NewCompartment(key hit.Key, members []hit.Hit) Compartment {
	c := Compartment{
		Key:          key,
		Hits:         members,
		QueryCover:   members[0].Query,
		SubjectCover: members[0].Subject,
	}
	for _, h := range members {
		c.TotalScore += h.Length()
		c.QueryCover = c.QueryCover.Union(h.Query)
		c.SubjectCover = c.SubjectCover.Union(h.Subject)
	}
	return c
}

// Identity is the length-weighted mean percent identity of the members.
func (c Compartment) Identity() float64 {
	var num, den float64
	for _, h := range c.Hits {
		l := float64(h.Length())
		num += h.PercentIdentity() * l
		den += l
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// LessRank orders compartments for output: higher TotalScore first, then by
// covered ranges, key and first member so that the order is total.
func LessRank(a, b Compartment) bool {
	if a.TotalScore != b.TotalScore {
		return a.TotalScore > b.TotalScore
	}
	if a.QueryCover != b.QueryCover {
		return a.QueryCover.Less(b.QueryCover)
	}
	if a.SubjectCover != b.SubjectCover {
		return a.SubjectCover.Less(b.SubjectCover)
	}
	if a.Key != b.Key {
		return a.Key.Less(b.Key)
	}
	return a.Hits[0].Index < b.Hits[0].Index
}

// Rank sorts compartments in place by LessRank. Nothing is discarded.
func Rank(cs []Compartment) {
	sort.Slice(cs, func(i, j int) bool { return LessRank(cs[i], cs[j]) })
}
