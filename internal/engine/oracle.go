package engine

import "compart/internal/hit"

// IntersectsQuery reports whether a and b overlap on the query axis.
func IntersectsQuery(a, b hit.Hit) bool { return a.Query.Intersects(b.Query) }

// IntersectsSubject reports whether a and b overlap on the subject axis.
func IntersectsSubject(a, b hit.Hit) bool { return a.Subject.Intersects(b.Subject) }

// IsConsistent reports whether a and b can be chained given the group's
// relative orientation. With same strands both axes must move the same way;
// with opposite strands the subject must move against the query.
func IsConsistent(a, b hit.Hit, sameStrand bool) bool {
	qa, qb := a.Query.From, b.Query.From
	sa, sb := a.Subject.From, b.Subject.From
	if sameStrand {
		return (qa <= qb && sa <= sb) || (qb <= qa && sb <= sa)
	}
	return (qa <= qb && sb <= sa) || (qb <= qa && sa <= sb)
}

// GapDistance sums, over both axes, the distance between the two ranges when
// they do not overlap. It only ranks candidate placements.
func GapDistance(a, b hit.Hit) int {
	return axisGap(a.Query, b.Query) + axisGap(a.Subject, b.Subject)
}

func axisGap(a, b hit.Range) int {
	if a.Intersects(b) {
		return 0
	}
	if a.From > b.From {
		a, b = b, a
	}
	return b.From - a.To
}

// chainConsistent checks that pred -> h -> succ advance monotonically on the
// subject axis in the direction implied by the strands. Query order is already
// fixed by the compartment's position key.
func chainConsistent(pred, h, succ hit.Hit, sameStrand bool) bool {
	p, m, s := pred.Subject.From, h.Subject.From, succ.Subject.From
	if sameStrand {
		return p <= m && m <= s
	}
	return p >= m && m >= s
}
