package visitors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"compart/internal/engine"
	"compart/internal/hit"
)

func member(qf, qt, sf, st int, pident float64) hit.Hit {
	return hit.Hit{
		QueryID: "q", SubjectID: "s",
		Query: hit.Range{From: qf, To: qt}, Subject: hit.Range{From: sf, To: st},
		QueryStrand: hit.Plus, SubjectStrand: hit.Plus,
		Metrics: hit.Metrics{Length: qt - qf + 1, PercentIdentity: pident},
	}
}

func compartment() engine.Compartment {
	hs := []hit.Hit{
		member(1, 100, 1, 100, 90),
		member(111, 210, 111, 210, 100),
		member(1001, 1100, 1001, 1100, 80),
	}
	return engine.NewCompartment(hit.KeyOf(hs[0]), hs)
}

func TestAcceptPassesByDefault(t *testing.T) {
	keep, rec, err := Accept{}.Visit(3, compartment())
	assert.NoError(t, err)
	assert.True(t, keep)
	assert.Equal(t, 3, rec.Rank)
	assert.Nil(t, rec.Segments)
}

func TestAcceptThresholds(t *testing.T) {
	c := compartment() // score 300, identity 90
	keep, _, _ := Accept{MinScore: 301}.Visit(1, c)
	assert.False(t, keep)
	keep, _, _ = Accept{MinScore: 300}.Visit(1, c)
	assert.True(t, keep)
	keep, _, _ = Accept{MinIdentity: 90.5}.Visit(1, c)
	assert.False(t, keep)
	keep, _, _ = Accept{MinIdentity: 89.5}.Visit(1, c)
	assert.True(t, keep)
}

func TestAcceptJoinsSegments(t *testing.T) {
	_, rec, err := Accept{JoinGapRatio: 0.1}.Visit(1, compartment())
	assert.NoError(t, err)
	if assert.Len(t, rec.Segments, 2) {
		assert.Equal(t, hit.Range{From: 1, To: 210}, rec.Segments[0].Query)
		assert.Equal(t, hit.Range{From: 1001, To: 1100}, rec.Segments[1].Query)
	}
}
