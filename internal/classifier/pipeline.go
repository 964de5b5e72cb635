package classifier

import (
	"keywordmatrix/internal/models"
)

// Pass names
const (
	PassUnsuitable   = "unsuitable"
	PassSuitable     = "suitable"
	PassExpandable   = "expandable"
	PassUnsuitableRe = "unsuitable_resweep"
)

// pass is one sweep of the record set against one rule set. Eligibility is
// decided from the class a record has when the pass starts.
type pass struct {
	name     string
	rules    RuleSet
	class    models.PrimaryClass
	eligible func(models.PrimaryClass) bool
}

func anyClass(models.PrimaryClass) bool { return true }

func onlyUnclassified(c models.PrimaryClass) bool { return c == models.ClassUnclassified }

func notUnsuitable(c models.PrimaryClass) bool { return c != models.ClassUnsuitable }

func (r *Registry) passes() []pass {
	return []pass{
		{PassUnsuitable, r.Unsuitable, models.ClassUnsuitable, anyClass},
		{PassSuitable, r.Suitable, models.ClassSuitable, onlyUnclassified},
		{PassExpandable, r.Expandable, models.ClassExpandable, onlyUnclassified},
		{PassUnsuitableRe, r.Unsuitable, models.ClassUnsuitable, notUnsuitable},
	}
}

func (p pass) apply(res *models.ClassificationResult, keyword string) {
	if !p.eligible(res.Class) {
		return
	}
	if category, ok := p.rules.LastMatch(keyword); ok {
		res.Class = p.class
		res.Detail = category
	}
}

// Classify runs the four passes over records and returns a new annotated
// slice in the same order. The input is not modified. A nil registry uses
// the built-in rules.
func Classify(reg *Registry, records []models.KeywordRecord) []models.ClassifiedRecord {
	if reg == nil {
		reg = DefaultRegistry()
	}

	out := make([]models.ClassifiedRecord, len(records))
	for i, rec := range records {
		if rec.Keyword == "" {
			rec.Keyword = Normalize(rec.RawKeyword)
		}
		out[i] = models.ClassifiedRecord{
			KeywordRecord:        rec,
			ClassificationResult: models.Unclassified(),
		}
	}

	for _, p := range reg.passes() {
		for i := range out {
			p.apply(&out[i].ClassificationResult, out[i].Keyword)
		}
	}

	for i := range out {
		out[i].Bucket = reg.Buckets.Bucket(out[i].Detail)
	}

	return out
}

// ClassifyKeyword classifies a single raw keyword.
func ClassifyKeyword(reg *Registry, raw string) models.ClassificationResult {
	recs := Classify(reg, []models.KeywordRecord{{RawKeyword: raw}})
	return recs[0].ClassificationResult
}

// PassTrace records what one pass saw for a single keyword.
type PassTrace struct {
	Pass     string              `json:"pass"`
	Eligible bool                `json:"eligible"`
	Matches  []string            `json:"matches,omitempty"`
	Class    models.PrimaryClass `json:"class"`
	Detail   string              `json:"detail_label"`
}

// Explanation is the pass-by-pass trace of a keyword through the pipeline.
type Explanation struct {
	RawKeyword string                      `json:"raw_keyword"`
	Keyword    string                      `json:"normalized_keyword"`
	Passes     []PassTrace                 `json:"passes"`
	Result     models.ClassificationResult `json:"result"`
}

// Explain runs the pipeline for one keyword and records every pass.
func Explain(reg *Registry, raw string) Explanation {
	if reg == nil {
		reg = DefaultRegistry()
	}

	keyword := Normalize(raw)
	res := models.Unclassified()
	exp := Explanation{RawKeyword: raw, Keyword: keyword}

	for _, p := range reg.passes() {
		trace := PassTrace{Pass: p.name, Eligible: p.eligible(res.Class)}
		if trace.Eligible {
			trace.Matches = p.rules.Matches(keyword)
		}
		p.apply(&res, keyword)
		trace.Class = res.Class
		trace.Detail = res.Detail
		exp.Passes = append(exp.Passes, trace)
	}

	res.Bucket = reg.Buckets.Bucket(res.Detail)
	exp.Result = res
	return exp
}
