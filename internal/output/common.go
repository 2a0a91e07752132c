package output

// Output format names accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "rank\tquery_id\tsubject_id\tstrand\ttotal_score\tidentity\tquery_start\tquery_end\tsubject_start\tsubject_end\thits\tsegments"
