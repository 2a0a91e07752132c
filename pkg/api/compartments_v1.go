// pkg/api/compartments_v1.go
package api

// CompartmentV1 is the stable schema for one ranked compartment.
type CompartmentV1 struct {
	Rank          int     `json:"rank"`
	QueryID       string  `json:"query_id"`
	SubjectID     string  `json:"subject_id"`
	SubjectStrand string  `json:"subject_strand"` // relative to a "+" query
	TotalScore    int     `json:"total_score"`
	Identity      float64 `json:"identity"`
	QueryStart    int     `json:"query_start"`
	QueryEnd      int     `json:"query_end"`
	SubjectStart  int     `json:"subject_start"`
	SubjectEnd    int     `json:"subject_end"`
	Hits          []HitV1 `json:"hits"`

	// Present only when gap-delimited joining was requested.
	Segments []CompositeV1 `json:"segments,omitempty"`
}

// CompositeV1 is one gap-delimited run of member hits.
type CompositeV1 struct {
	QueryStart   int `json:"query_start"`
	QueryEnd     int `json:"query_end"`
	SubjectStart int `json:"subject_start"`
	SubjectEnd   int `json:"subject_end"`
	Score        int `json:"score"`
	Hits         int `json:"hits"`
}
