package output

import (
	"fmt"
	"strconv"
	"strings"

	"compart/internal/engine"
)

// SegmentsCSV renders composites as "qs-qe:ss-se" joined by commas, or "-".
func SegmentsCSV(segs []engine.Composite) string {
	if len(segs) == 0 {
		return "-"
	}
	ss := make([]string, len(segs))
	for i, s := range segs {
		ss[i] = strconv.Itoa(s.Query.From) + "-" + strconv.Itoa(s.Query.To) + ":" +
			strconv.Itoa(s.Subject.From) + "-" + strconv.Itoa(s.Subject.To)
	}
	return strings.Join(ss, ",")
}

// FormatRowTSV returns the TSV columns of one record (no trailing newline).
func FormatRowTSV(r Record) string {
	c := r.Compartment
	return fmt.Sprintf("%d\t%s\t%s\t%s\t%d\t%.2f\t%d\t%d\t%d\t%d\t%d\t%s",
		r.Rank, c.Key.QueryID, c.Key.SubjectID, c.Key.SubjectStrand,
		c.TotalScore, c.Identity(),
		c.QueryCover.From, c.QueryCover.To,
		c.SubjectCover.From, c.SubjectCover.To,
		len(c.Hits), SegmentsCSV(r.Segments),
	)
}
