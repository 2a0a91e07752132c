package hit

// Key identifies one sequence pair in one relative orientation.
type Key struct {
	QueryID       string
	SubjectID     string
	QueryStrand   Strand
	SubjectStrand Strand
}

// KeyOf returns the group key of h using its normalized strands.
func KeyOf(h Hit) Key {
	qs, ss := h.NormalizedStrands()
	return Key{QueryID: h.QueryID, SubjectID: h.SubjectID, QueryStrand: qs, SubjectStrand: ss}
}

// SameStrand reports whether query and subject advance in the same direction.
func (k Key) SameStrand() bool { return k.QueryStrand == k.SubjectStrand }

// Less gives keys a fixed order (ids, then strands) for deterministic output.
func (k Key) Less(o Key) bool {
	if k.QueryID != o.QueryID {
		return k.QueryID < o.QueryID
	}
	if k.SubjectID != o.SubjectID {
		return k.SubjectID < o.SubjectID
	}
	if k.QueryStrand != o.QueryStrand {
		return k.QueryStrand > o.QueryStrand
	}
	return k.SubjectStrand > o.SubjectStrand
}

// Group is the set of hits sharing one Key, in input order.
type Group struct {
	Key  Key
	Hits []Hit
}

// GroupByPair partitions hits by sequence pair and normalized strand.
// Groups are returned in order of first appearance and hits keep their input
// order inside each group. Each grouped hit is a copy whose Index is its
// position in hits, so ties later resolve by input order whatever Index the
// caller left. Degenerate ranges are accepted as-is.
func GroupByPair(hits []Hit) []Group {
	if len(hits) == 0 {
		return nil
	}
	idx := make(map[Key]int, 16)
	var groups []Group
	for pos, h := range hits {
		h.Index = pos
		k := KeyOf(h)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Hits = append(groups[i].Hits, h)
	}
	return groups
}

// Reindex sets Index to the slice position of each hit. Readers call it once
// on the concatenated input so that Index is unique across files.
func Reindex(hits []Hit) {
	for i := range hits {
		hits[i].Index = i
	}
}
