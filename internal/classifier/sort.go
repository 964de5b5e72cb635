package classifier

import (
	"cmp"
	"slices"

	"keywordmatrix/internal/models"
)

// SortKey selects the metric a table is ordered by.
type SortKey string

// Sort keys
const (
	SortSearchVolume SortKey = "total_search_volume"
	SortCTR          SortKey = "ctr_pc"
	SortClicks       SortKey = "total_clicks"
	SortAdCount      SortKey = "ad_count"
)

// SortKeys lists the keys in the order the dashboard offers them.
var SortKeys = []SortKey{SortSearchVolume, SortCTR, SortClicks, SortAdCount}

var sortLabels = map[SortKey]string{
	SortSearchVolume: "총 검색수 (기본)",
	SortCTR:          "월평균 클릭률",
	SortClicks:       "총 클릭수",
	SortAdCount:      "월평균노출 광고수",
}

// Label returns the Korean option label.
func (k SortKey) Label() string {
	return sortLabels[k]
}

// ParseSortKey accepts a key or its Korean label. Empty input selects the
// default key.
func ParseSortKey(s string) (SortKey, bool) {
	if s == "" {
		return SortSearchVolume, true
	}
	for _, k := range SortKeys {
		if string(k) == s || sortLabels[k] == s {
			return k, true
		}
	}
	return "", false
}

func (k SortKey) value(r *models.ClassifiedRecord) float64 {
	switch k {
	case SortCTR:
		return r.CTRPC
	case SortClicks:
		return r.TotalClicks
	case SortAdCount:
		return r.AdCount
	default:
		return r.TotalSearchVolume
	}
}

// TopN returns a copy of records sorted descending by key and truncated to n.
// Ties keep their input order. n <= 0 returns every record.
func TopN(records []models.ClassifiedRecord, key SortKey, n int) []models.ClassifiedRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b models.ClassifiedRecord) int {
		return cmp.Compare(key.value(&b), key.value(&a))
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Filter returns the records that satisfy keep, in order.
func Filter(records []models.ClassifiedRecord, keep func(*models.ClassifiedRecord) bool) []models.ClassifiedRecord {
	var out []models.ClassifiedRecord
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// InBucket selects records of one bucket.
func InBucket(b models.Bucket) func(*models.ClassifiedRecord) bool {
	return func(r *models.ClassifiedRecord) bool { return r.Bucket == b }
}

func bucketRank(b models.Bucket) int {
	if i := slices.Index(models.BucketOrder, b); i >= 0 {
		return i
	}
	return len(models.BucketOrder)
}

// ExportOrder returns a copy of records ordered by primary class precedence
// (suitable, expandable, unsuitable, unclassified), then bucket importance,
// detail label and normalized keyword.
func ExportOrder(records []models.ClassifiedRecord) []models.ClassifiedRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b models.ClassifiedRecord) int {
		return cmp.Or(
			cmp.Compare(a.Class.Rank(), b.Class.Rank()),
			cmp.Compare(bucketRank(a.Bucket), bucketRank(b.Bucket)),
			cmp.Compare(a.Detail, b.Detail),
			cmp.Compare(a.Keyword, b.Keyword),
		)
	})
	return out
}
