// Package hitfile reads alignment hits from BLAST tabular (-outfmt 6) or
// JSONL files. Coordinates are kept as written; reversed start/end pairs set
// the Minus strand.
package hitfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"compart/internal/hit"
	"compart/pkg/api"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatTab   Format = "tab"
	FormatJSONL Format = "jsonl"
)

// ParseFormat accepts auto, tab (alias blast, outfmt6) and jsonl.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "tab", "blast", "outfmt6":
		return FormatTab, nil
	case "jsonl":
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("invalid hit format %q (want auto|tab|jsonl)", s)
}

// minTabFields covers qseqid..send; evalue and bitscore are optional.
const minTabFields = 10

// ReadCtx scans hits from r and calls emit for each one. With FormatAuto the
// format is picked from the first content line ('{' means JSONL). The format
// actually used is returned. name is only used in error messages.
func ReadCtx(ctx context.Context, r io.Reader, name string, f Format, emit func(hit.Hit) error) (Format, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	ln := 0
	for sc.Scan() {
		ln++
		if ln%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return f, err
			}
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if f == FormatAuto {
			f = FormatTab
			if line[0] == '{' {
				f = FormatJSONL
			}
		}
		var (
			h   hit.Hit
			err error
		)
		if f == FormatJSONL {
			h, err = parseJSONL(line)
		} else {
			h, err = parseTab(string(line))
		}
		if err != nil {
			return f, errors.Wrapf(err, "%s:%d", name, ln)
		}
		if err := emit(h); err != nil {
			return f, err
		}
	}
	if err := sc.Err(); err != nil {
		return f, errors.Wrapf(err, "%s: scan", name)
	}
	return f, ctx.Err()
}

// ReadPathCtx opens path ("-" is stdin, gzip is detected) and reads it.
func ReadPathCtx(ctx context.Context, path string, f Format, emit func(hit.Hit) error) (Format, error) {
	rc, err := openReader(path)
	if err != nil {
		return f, err
	}
	defer rc.Close()
	return ReadCtx(ctx, rc, path, f, emit)
}

// ReadFiles reads every path in order and returns the concatenated hits with
// Index set to their position. onFile, if non-nil, is told the format and
// hit count of each file.
func ReadFiles(ctx context.Context, paths []string, f Format, onFile func(path string, used Format, n int)) ([]hit.Hit, error) {
	var all []hit.Hit
	for _, p := range paths {
		before := len(all)
		used, err := ReadPathCtx(ctx, p, f, func(h hit.Hit) error {
			all = append(all, h)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if onFile != nil {
			onFile(p, used, len(all)-before)
		}
	}
	hit.Reindex(all)
	return all, nil
}

// orient returns the closed range and its strand for a start/end pair.
func orient(start, end int) (hit.Range, hit.Strand) {
	if start > end {
		return hit.Range{From: end, To: start}, hit.Minus
	}
	return hit.Range{From: start, To: end}, hit.Plus
}

func parseTab(line string) (hit.Hit, error) {
	f := strings.Fields(line)
	if len(f) < minTabFields {
		return hit.Hit{}, errors.Errorf("want at least %d columns, got %d", minTabFields, len(f))
	}
	ints := make([]int, 4)
	for i, col := range []int{6, 7, 8, 9} {
		v, err := strconv.Atoi(f[col])
		if err != nil {
			return hit.Hit{}, errors.Wrapf(err, "column %d", col+1)
		}
		ints[i] = v
	}
	pident, err := strconv.ParseFloat(f[2], 64)
	if err != nil {
		return hit.Hit{}, errors.Wrap(err, "pident")
	}
	length, err := strconv.Atoi(f[3])
	if err != nil {
		return hit.Hit{}, errors.Wrap(err, "length")
	}
	var score float64
	if len(f) >= 12 {
		if score, err = strconv.ParseFloat(f[11], 64); err != nil {
			return hit.Hit{}, errors.Wrap(err, "bitscore")
		}
	}

	q, qs := orient(ints[0], ints[1])
	s, ss := orient(ints[2], ints[3])
	return hit.Hit{
		QueryID:       f[0],
		SubjectID:     f[1],
		Query:         q,
		Subject:       s,
		QueryStrand:   qs,
		SubjectStrand: ss,
		Metrics:       hit.Metrics{Length: length, RawScore: score, PercentIdentity: pident},
	}, nil
}

func parseJSONL(line []byte) (hit.Hit, error) {
	var v api.HitV1
	if err := json.Unmarshal(line, &v); err != nil {
		return hit.Hit{}, errors.Wrap(err, "decode hit")
	}
	if v.QueryID == "" || v.SubjectID == "" {
		return hit.Hit{}, errors.New("query_id and subject_id are required")
	}
	return FromAPI(v), nil
}

// FromAPI converts the wire schema to a Hit. An explicit strand wins over
// the orientation implied by start/end.
func FromAPI(v api.HitV1) hit.Hit {
	q, qs := orient(v.QueryStart, v.QueryEnd)
	s, ss := orient(v.SubjectStart, v.SubjectEnd)
	if v.QueryStrand != "" {
		qs = hit.ParseStrand(v.QueryStrand)
	}
	if v.SubjectStrand != "" {
		ss = hit.ParseStrand(v.SubjectStrand)
	}
	return hit.Hit{
		QueryID:       v.QueryID,
		SubjectID:     v.SubjectID,
		Query:         q,
		Subject:       s,
		QueryStrand:   qs,
		SubjectStrand: ss,
		Metrics:       hit.Metrics{Length: v.Length, RawScore: v.Score, PercentIdentity: v.PercentIdentity},
	}
}
