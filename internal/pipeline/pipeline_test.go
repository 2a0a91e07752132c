package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compart/internal/engine"
	"compart/internal/hit"
	"compart/internal/metrics"
)

func makeHits(pairs, perPair int) []hit.Hit {
	var hs []hit.Hit
	for p := 0; p < pairs; p++ {
		for i := 0; i < perPair; i++ {
			off := i * 150
			if i%3 == 2 {
				off += 10000 // forces a split
			}
			hs = append(hs, hit.Hit{
				QueryID:       fmt.Sprintf("q%d", p%4),
				SubjectID:     fmt.Sprintf("s%d", p),
				Query:         hit.Range{From: i * 150, To: i*150 + 99},
				Subject:       hit.Range{From: off, To: off + 99 + p},
				QueryStrand:   hit.Plus,
				SubjectStrand: hit.Plus,
			})
		}
	}
	hit.Reindex(hs)
	return hs
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(engine.DefaultConfig())
	require.NoError(t, err)
	return e
}

func TestParallelMatchesSerial(t *testing.T) {
	hs := makeHits(12, 9)
	eng := newEngine(t)

	serial, sst, err := Compartmentalize(context.Background(), Config{Threads: 1}, hs, eng)
	require.NoError(t, err)
	parallel, pst, err := Compartmentalize(context.Background(), Config{Threads: 8}, hs, eng)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, sst, pst)

	direct, _ := eng.Compartmentalize(hs)
	assert.Equal(t, direct, serial)
}

func TestUnindexedInputMatchesNumbered(t *testing.T) {
	numbered := makeHits(6, 9)
	bare := append([]hit.Hit(nil), numbered...)
	for i := range bare {
		bare[i].Index = 0
	}
	eng := newEngine(t)

	want, _, err := Compartmentalize(context.Background(), Config{Threads: 4}, numbered, eng)
	require.NoError(t, err)
	got, _, err := Compartmentalize(context.Background(), Config{Threads: 4}, bare, eng)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMetricsRecorded(t *testing.T) {
	m := metrics.New()
	_, st, err := Compartmentalize(context.Background(), Config{Threads: 3, Metrics: m}, makeHits(5, 6), newEngine(t))
	require.NoError(t, err)
	assert.Equal(t, 5.0, testutil.ToFloat64(m.Groups))
	assert.Equal(t, float64(st.Compartments), testutil.ToFloat64(m.Compartments))
	assert.Positive(t, st.Splits())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Compartmentalize(ctx, Config{Threads: 2}, makeHits(3, 3), newEngine(t))
	assert.ErrorIs(t, err, context.Canceled)
}

// countingEng records how many groups it was asked to process.
type countingEng struct{ n atomic.Int32 }

func (c *countingEng) Group(g hit.Group) ([]engine.Compartment, engine.Stats) {
	c.n.Add(1)
	return []engine.Compartment{engine.NewCompartment(g.Key, g.Hits[:1])}, engine.Stats{Hits: len(g.Hits), Raw: 1, Compartments: 1}
}

func TestForEachCompartmentUsesCompartmenter(t *testing.T) {
	fake := &countingEng{}
	var seen int
	st, err := ForEachCompartment(context.Background(), Config{Threads: 2}, makeHits(4, 2), fake, func(engine.Compartment) error {
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(4), fake.n.Load())
	assert.Equal(t, 4, seen)
	assert.Equal(t, 8, st.Hits)
}

func TestForEachCompartmentStopsOnVisitError(t *testing.T) {
	boom := fmt.Errorf("boom")
	var seen int
	_, err := ForEachCompartment(context.Background(), Config{}, makeHits(3, 1), newEngine(t), func(engine.Compartment) error {
		seen++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}

func TestEmptyInput(t *testing.T) {
	cs, st, err := Compartmentalize(context.Background(), Config{Threads: 4}, nil, newEngine(t))
	require.NoError(t, err)
	assert.Empty(t, cs)
	assert.Zero(t, st.Hits)
}
