package engine

import (
	"sort"

	"compart/internal/hit"
)

// lessCoords is the fixed secondary order used whenever the primary key ties:
// query range, subject range, then input index.
func lessCoords(a, b hit.Hit) bool {
	if a.Query != b.Query {
		return a.Query.Less(b.Query)
	}
	if a.Subject != b.Subject {
		return a.Subject.Less(b.Subject)
	}
	return a.Index < b.Index
}

// lessPosition orders hits inside one compartment.
func lessPosition(a, b hit.Hit) bool {
	if a.Query.From != b.Query.From {
		return a.Query.From < b.Query.From
	}
	if a.Subject.From != b.Subject.From {
		return a.Subject.From < b.Subject.From
	}
	if a.Query.To != b.Query.To {
		return a.Query.To < b.Query.To
	}
	if a.Subject.To != b.Subject.To {
		return a.Subject.To < b.Subject.To
	}
	return a.Index < b.Index
}

func bySize(a, b hit.Hit) bool {
	if la, lb := a.Length(), b.Length(); la != lb {
		return la > lb
	}
	return lessCoords(a, b)
}

func byScore(a, b hit.Hit) bool {
	if sa, sb := a.Score(), b.Score(); sa != sb {
		return sa > sb
	}
	return lessCoords(a, b)
}

func byIdentity(a, b hit.Hit) bool {
	if pa, pb := a.PercentIdentity(), b.PercentIdentity(); pa != pb {
		return pa > pb
	}
	return lessCoords(a, b)
}

// Less returns the total order the builder uses to visit hits.
func (k SortKey) Less() func(a, b hit.Hit) bool {
	switch k {
	case SortByScore:
		return byScore
	case SortByIdentity:
		return byIdentity
	default:
		return bySize
	}
}

// sortedCopy returns hits ordered by k, leaving the input untouched.
func sortedCopy(hits []hit.Hit, k SortKey) []hit.Hit {
	out := append([]hit.Hit(nil), hits...)
	less := k.Less()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
