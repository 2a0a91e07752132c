// internal/integration/integration_test.go
package integration

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compart/internal/app"
	"compart/pkg/api"
)

// Three co-linear q1/chr1 hits with a large subject gap before the third,
// plus one q1/chr2 hit on the reverse subject strand.
const blastTab = `# BLASTN 2.14.0+
# Fields: qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore
q1	chr1	99.0	100	1	0	1	100	1001	1100	1e-50	180
q1	chr1	95.0	100	5	0	151	250	1151	1250	1e-40	160
q1	chr1	90.0	100	10	0	301	400	5301	5400	1e-30	150

q1	chr2	88.0	80	10	0	1	80	580	501	1e-20	100
`

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(data), 0o644))
	return fn
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestEndToEndText(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	code, out, stderr := run(t, "-q", fn)
	require.Equal(t, 0, code, stderr)

	rows := lines(out)
	require.Len(t, rows, 4)
	assert.True(t, strings.HasPrefix(rows[0], "rank\t"))
	assert.Equal(t, "1\tq1\tchr1\t+\t200\t97.00\t1\t250\t1001\t1250\t2\t-", rows[1])
	assert.Equal(t, "2\tq1\tchr1\t+\t100\t90.00\t301\t400\t5301\t5400\t1\t-", rows[2])
	assert.Equal(t, "3\tq1\tchr2\t-\t80\t88.00\t1\t80\t501\t580\t1\t-", rows[3])
}

func TestNoGapFilterKeepsChain(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	code, out, stderr := run(t, "-q", "--no-header", "--no-gap-filter", fn)
	require.Equal(t, 0, code, stderr)
	rows := lines(out)
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "1\tq1\tchr1\t+\t300\t"))
}

func TestParallelMatchesSerial(t *testing.T) {
	var b strings.Builder
	for s := 0; s < 12; s++ {
		for i := 0; i < 20; i++ {
			q := 1 + i*150
			fmt.Fprintf(&b, "q%d\tchr%d\t%d.0\t100\t0\t0\t%d\t%d\t%d\t%d\t0\t%d\n",
				s%3, s, 80+i%20, q, q+99, q+(i%4)*500, q+(i%4)*500+99, 100+i)
		}
	}
	fn := write(t, "many.tsv", b.String())

	runThreads := func(threads int) string {
		code, out, stderr := run(t, "-q", "-o", "json", "-t", fmt.Sprint(threads), fn)
		require.Equal(t, 0, code, stderr)
		return out
	}
	serial := runThreads(1)
	for _, n := range []int{2, 4, 8} {
		assert.Equal(t, serial, runThreads(n), "threads=%d", n)
	}
}

func TestJSONLWithSegments(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	code, out, stderr := run(t, "-q", "-o", "jsonl", "--join-gap-ratio", "0.5", fn)
	require.Equal(t, 0, code, stderr)

	var got []api.CompartmentV1
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var v api.CompartmentV1
		require.NoError(t, json.Unmarshal(sc.Bytes(), &v))
		got = append(got, v)
	}
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Rank)
	assert.Len(t, got[0].Hits, 2)
	require.Len(t, got[0].Segments, 1)
	assert.Equal(t, api.CompositeV1{QueryStart: 1, QueryEnd: 250, SubjectStart: 1001, SubjectEnd: 1250, Score: 200, Hits: 2}, got[0].Segments[0])
}

func TestJSONLInput(t *testing.T) {
	fn := write(t, "hits.jsonl", `{"query_id":"q","subject_id":"s","query_start":1,"query_end":50,"subject_start":11,"subject_end":60,"length":50,"pident":100}
{"query_id":"q","subject_id":"s","query_start":61,"query_end":110,"subject_start":71,"subject_end":120,"length":50,"pident":90}
`)
	code, out, stderr := run(t, "-q", "--no-header", fn)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "1\tq\ts\t+\t100\t95.00\t1\t110\t11\t120\t2\t-\n", out)
}

func TestAcceptanceAndNoMatchExitCode(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)

	code, out, _ := run(t, "-q", "--no-header", "--min-identity", "89", fn)
	assert.Equal(t, 0, code)
	assert.Len(t, lines(out), 2, "the chr2 compartment is below 89%")

	code, _, _ = run(t, "-q", "--min-score", "1000", fn)
	assert.Equal(t, 1, code)

	code, _, _ = run(t, "-q", "--min-score", "1000", "--no-match-exit-code", "0", fn)
	assert.Equal(t, 0, code)
}

func TestConfigFile(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	cfg := write(t, "run.yaml", "gap_filter: false\noutput: jsonl\n")
	code, out, stderr := run(t, "-q", "--config", cfg, fn)
	require.Equal(t, 0, code, stderr)
	assert.Len(t, lines(out), 2)
	assert.True(t, strings.HasPrefix(out, "{"))
}

func TestMetricsFile(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	prom := filepath.Join(t.TempDir(), "compart.prom")
	code, _, stderr := run(t, "-q", "--metrics-file", prom, fn)
	require.Equal(t, 0, code, stderr)

	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	text := string(b)
	assert.Contains(t, text, `compart_input_hits_total{format="tab"} 4`)
	assert.Contains(t, text, "compart_engine_groups_total 2")
	assert.Contains(t, text, "compart_engine_splits_total 1")
	assert.Contains(t, text, "compart_output_compartments_written_total 3")
}

func TestLogsCarryRunID(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	code, _, stderr := run(t, "--log-level", "info", fn)
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "run_id=")
	assert.Contains(t, stderr, "action=done")
}

func TestExitCodes(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	bad := write(t, "bad.tsv", "q1\tchr1\t99.0\t100\t1\t0\tone\t100\t1001\t1100\n")

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"usage", []string{"--sort-by"}, 2},
		{"unknown sort key", []string{"--sort-by", "length", fn}, 2},
		{"negative ratio", []string{"--gap-filter-ratio", "-1", fn}, 2},
		{"missing file", []string{filepath.Join(t.TempDir(), "absent.tsv")}, 3},
		{"malformed line", []string{bad}, 3},
		{"help", []string{"-h"}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, _ := run(t, append([]string{"-q"}, tc.args...)...)
			assert.Equal(t, tc.want, code)
		})
	}
}

func TestNoArgsPrintsUsage(t *testing.T) {
	code, out, _ := run(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage of compart")
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(out, "compart version "))
}

func TestCancelledExit130(t *testing.T) {
	fn := write(t, "hits.tsv", blastTab)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := app.RunContext(ctx, []string{"-q", fn}, &out, &errBuf)
	assert.Equal(t, 130, code)
}
