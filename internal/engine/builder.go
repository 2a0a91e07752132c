package engine

import (
	"github.com/google/btree"

	"compart/internal/hit"
)

const treeDegree = 8

// openCompartment is one chain under construction, kept in position order.
type openCompartment struct {
	members *btree.BTreeG[hit.Hit]
}

func newOpenCompartment(h hit.Hit) *openCompartment {
	c := &openCompartment{members: btree.NewG[hit.Hit](treeDegree, lessPosition)}
	c.members.ReplaceOrInsert(h)
	return c
}

// neighbors returns the members immediately before and after h's position.
func (c *openCompartment) neighbors(h hit.Hit) (pred, succ hit.Hit, hasPred, hasSucc bool) {
	c.members.DescendLessOrEqual(h, func(x hit.Hit) bool {
		pred, hasPred = x, true
		return false
	})
	c.members.AscendGreaterOrEqual(h, func(x hit.Hit) bool {
		succ, hasSucc = x, true
		return false
	})
	return
}

func (c *openCompartment) hits() []hit.Hit {
	out := make([]hit.Hit, 0, c.members.Len())
	c.members.Ascend(func(x hit.Hit) bool {
		out = append(out, x)
		return true
	})
	return out
}

type builder struct {
	cfg  Config
	same bool
	open []*openCompartment
}

// Build chains one group's hits into raw compartments. Every hit lands in
// exactly one compartment; compartments come back in the order they were
// opened, each in position order.
func Build(g hit.Group, cfg Config) [][]hit.Hit {
	if len(g.Hits) == 0 {
		return nil
	}
	b := &builder{cfg: cfg, same: g.Key.SameStrand()}
	for _, h := range sortedCopy(g.Hits, cfg.SortKey) {
		if i := b.place(h); i >= 0 {
			b.open[i].members.ReplaceOrInsert(h)
		} else {
			b.open = append(b.open, newOpenCompartment(h))
		}
	}
	out := make([][]hit.Hit, len(b.open))
	for i, c := range b.open {
		out[i] = c.hits()
	}
	return out
}

// place returns the index of the eligible open compartment with the smallest
// gap distance to h, or -1. Ties go to the compartment opened first.
func (b *builder) place(h hit.Hit) int {
	best, bestDist := -1, 0
	for i, c := range b.open {
		pred, succ, hasPred, hasSucc := c.neighbors(h)
		var d int
		switch {
		case hasPred && hasSucc:
			if !b.accepts(pred, h) || !b.accepts(h, succ) {
				continue
			}
			if b.enforceChain(pred, h, succ) && !chainConsistent(pred, h, succ, b.same) {
				continue
			}
			d = min(GapDistance(pred, h), GapDistance(h, succ))
		case hasPred:
			if !b.accepts(pred, h) {
				continue
			}
			d = GapDistance(pred, h)
		case hasSucc:
			if !b.accepts(h, succ) {
				continue
			}
			d = GapDistance(h, succ)
		default:
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// accepts reports whether a and b may be adjacent in one compartment.
func (b *builder) accepts(x, y hit.Hit) bool {
	iq, is := IntersectsQuery(x, y), IntersectsSubject(x, y)
	consistent := IsConsistent(x, y, b.same)
	if !iq && !is {
		return consistent
	}
	if iq && !b.cfg.Overlap.AllowsQuery() {
		return false
	}
	if is && !b.cfg.Overlap.AllowsSubject() {
		return false
	}
	return consistent || !b.cfg.RequireConsistency
}

// enforceChain is false only when an allowed intersection explicitly waives
// consistency on one of the two sides.
func (b *builder) enforceChain(pred, h, succ hit.Hit) bool {
	if b.cfg.RequireConsistency {
		return true
	}
	return !intersects(pred, h) && !intersects(h, succ)
}

func intersects(a, b hit.Hit) bool {
	return IntersectsQuery(a, b) || IntersectsSubject(a, b)
}
