package models

// CompetitionPlaceholder stands in for a missing competition level.
const CompetitionPlaceholder = "-"

// KeywordRecord is one row of keyword-tool export data after numeric cleanup.
type KeywordRecord struct {
	RawKeyword        string  `json:"raw_keyword"`
	Keyword           string  `json:"normalized_keyword"`
	SearchVolumePC    float64 `json:"search_volume_pc"`
	SearchVolumeMob   float64 `json:"search_volume_mobile"`
	ClicksPC          float64 `json:"clicks_pc"`
	ClicksMobile      float64 `json:"clicks_mobile"`
	CTRPC             float64 `json:"ctr_pc"`
	CTRMobile         float64 `json:"ctr_mobile"`
	AdCount           float64 `json:"ad_count"`
	CompetitionLevel  string  `json:"competition_level,omitempty"`
	TotalSearchVolume float64 `json:"total_search_volume"`
	TotalClicks       float64 `json:"total_clicks"`

	// Source and Row point back at the uploaded file for error reporting.
	Source string `json:"source,omitempty"`
	Row    int    `json:"row,omitempty"`
}

// ComputeTotals fills the two derived totals from the PC and mobile metrics.
func (r *KeywordRecord) ComputeTotals() {
	r.TotalSearchVolume = r.SearchVolumePC + r.SearchVolumeMob
	r.TotalClicks = r.ClicksPC + r.ClicksMobile
}

// Competition returns the competition label or the placeholder when absent.
func (r *KeywordRecord) Competition() string {
	if r.CompetitionLevel == "" {
		return CompetitionPlaceholder
	}
	return r.CompetitionLevel
}

// ClassifiedRecord is a keyword record annotated by the classification pipeline.
type ClassifiedRecord struct {
	KeywordRecord
	ClassificationResult
}

// IsSuitable returns true if the pipeline marked the record suitable.
func (r *ClassifiedRecord) IsSuitable() bool {
	return r.Class == ClassSuitable
}

// IsUnsuitable returns true if the pipeline marked the record unsuitable.
func (r *ClassifiedRecord) IsUnsuitable() bool {
	return r.Class == ClassUnsuitable
}
