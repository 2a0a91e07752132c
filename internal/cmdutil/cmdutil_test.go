package cmdutil

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compart/internal/engine"
	"compart/internal/hit"
	"compart/internal/pipeline"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "debug", false)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.WithField("action", "read").Info("hello")
	assert.Contains(t, buf.String(), "action=read")

	l, err = NewLogger(&buf, "debug", true)
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, l.GetLevel())

	_, err = NewLogger(&buf, "chatty", false)
	assert.Error(t, err)
}

func TestRunStreamRanksAndFilters(t *testing.T) {
	hits := []hit.Hit{
		{QueryID: "q", SubjectID: "a", Query: hit.Range{From: 1, To: 100}, Subject: hit.Range{From: 1, To: 100},
			QueryStrand: hit.Plus, SubjectStrand: hit.Plus, Metrics: hit.Metrics{Length: 100}},
		{QueryID: "q", SubjectID: "b", Query: hit.Range{From: 1, To: 50}, Subject: hit.Range{From: 1, To: 50},
			QueryStrand: hit.Plus, SubjectStrand: hit.Plus, Metrics: hit.Metrics{Length: 50}},
	}
	hit.Reindex(hits)
	eng, err := engine.New(engine.DefaultConfig())
	require.NoError(t, err)

	var got []string
	var ranks []int
	n, st, err := RunStream[string](context.Background(), pipeline.Config{Threads: 2}, hits, eng,
		func(rank int, c engine.Compartment) (bool, string, error) {
			ranks = append(ranks, rank)
			return c.TotalScore >= 100, c.Key.SubjectID, nil
		},
		func(s string) error { got = append(got, s); return nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a"}, got)
	assert.Equal(t, []int{1, 2}, ranks)
	assert.Equal(t, 2, st.Compartments)
}
