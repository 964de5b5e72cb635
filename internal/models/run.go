package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryStats aggregates the records that share a qualitative bucket.
type CategoryStats struct {
	Bucket              Bucket  `json:"bucket"`
	Count               int     `json:"count"`
	AvgSearchVolume     float64 `json:"avg_search_volume"`
	AvgClicks           float64 `json:"avg_clicks"`
	AvgCTRPC            float64 `json:"avg_ctr_pc"`
	AvgCTRMobile        float64 `json:"avg_ctr_mobile"`
	AvgAdCount          float64 `json:"avg_ad_count"`
	DominantCompetition string  `json:"dominant_competition"`
}

// DetailCount is the number of records carrying a detail label inside a bucket.
type DetailCount struct {
	Detail string `json:"detail_label"`
	Count  int    `json:"count"`
}

// RowIssue describes a row that was skipped or coerced during ingestion.
type RowIssue struct {
	Source string `json:"source"`
	Row    int    `json:"row"`
	Error  string `json:"error"`
}

// Run sources
const (
	SourceUpload = "upload"
	SourceSample = "sample"
	SourceAPI    = "api"
	SourceCLI    = "cli"
)

// Run is the result of one classification batch. It lives only as long as
// the run store keeps it.
type Run struct {
	ID        uuid.UUID                `json:"id"`
	Source    string                   `json:"source"`
	Files     []string                 `json:"files"`
	CreatedAt time.Time                `json:"created_at"`
	Records   []ClassifiedRecord       `json:"records"`
	Stats     map[Bucket]CategoryStats `json:"stats"`
	Issues    []RowIssue               `json:"issues,omitempty"`
}

// RunSummary is the API view of a run without its records.
type RunSummary struct {
	ID        uuid.UUID       `json:"id"`
	Source    string          `json:"source"`
	Files     []string        `json:"files"`
	CreatedAt time.Time       `json:"created_at"`
	Total     int             `json:"total"`
	Stats     []CategoryStats `json:"stats"`
	Issues    int             `json:"issues"`
}

// Summary returns the run without records, with stats in bucket importance order.
func (r *Run) Summary() RunSummary {
	s := RunSummary{
		ID:        r.ID,
		Source:    r.Source,
		Files:     r.Files,
		CreatedAt: r.CreatedAt,
		Total:     len(r.Records),
		Issues:    len(r.Issues),
		Stats:     make([]CategoryStats, 0, len(r.Stats)),
	}
	for _, b := range BucketOrder {
		if st, ok := r.Stats[b]; ok {
			s.Stats = append(s.Stats, st)
		}
	}
	return s
}
