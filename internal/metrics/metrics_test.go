package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compart/internal/engine"
)

func TestObserveGroup(t *testing.T) {
	r := New()
	r.ObserveGroup(engine.Stats{Hits: 5, Raw: 2, Compartments: 3}, time.Millisecond)
	r.ObserveGroup(engine.Stats{Hits: 1, Raw: 1, Compartments: 1}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Groups))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.RawCompartments))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.Compartments))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Splits))
}

func TestNilRunIsNoop(t *testing.T) {
	var r *Run
	r.ObserveHits("tab", 3)
	r.ObserveGroup(engine.Stats{}, 0)
	r.ObserveAccepted()
	assert.NoError(t, r.WriteTextfile("unused"))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.ObserveHits("tab", 7)
	fn := filepath.Join(t.TempDir(), "compart.prom")
	require.NoError(t, r.WriteTextfile(fn))

	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Contains(t, string(b), `compart_input_hits_total{format="tab"} 7`)
}
