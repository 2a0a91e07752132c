// pkg/api/hits_v1.go
package api

// HitV1 is the stable JSON/JSONL schema for one input or member hit.
// Coordinates are closed and kept as the producer wrote them (BLAST: 1-based).
// Keep fields, names, and types stable.
// Add new fields only with ",omitempty".
type HitV1 struct {
	QueryID         string  `json:"query_id"`
	SubjectID       string  `json:"subject_id"`
	QueryStart      int     `json:"query_start"`
	QueryEnd        int     `json:"query_end"`
	SubjectStart    int     `json:"subject_start"`
	SubjectEnd      int     `json:"subject_end"`
	QueryStrand     string  `json:"query_strand"`   // "+" | "-"
	SubjectStrand   string  `json:"subject_strand"` // "+" | "-"
	Length          int     `json:"length,omitempty"`
	Score           float64 `json:"score,omitempty"`
	PercentIdentity float64 `json:"pident,omitempty"`
}
