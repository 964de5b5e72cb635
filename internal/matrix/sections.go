package matrix

import (
	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/models"
)

// Table is a titled, sorted, truncated list of records.
type Table struct {
	Title string
	Rows  []models.ClassifiedRecord
}

// Section is the dashboard block of one bucket.
type Section struct {
	Bucket models.Bucket
	Title  string
	Stats  models.CategoryStats
	Tables []Table
}

// competitiveSplit is the sub-table order of the target competitive bucket.
var competitiveSplit = []struct {
	class models.PrimaryClass
	keep  func(*models.ClassifiedRecord) bool
}{
	{models.ClassSuitable, (*models.ClassifiedRecord).IsSuitable},
	{models.ClassUnsuitable, (*models.ClassifiedRecord).IsUnsuitable},
}

// Sections builds one section per non-empty bucket, in importance order.
// Each table holds at most n rows sorted by key. The target competitive
// bucket mixes suitable keywords and competitor brands, so it gets one
// table per primary class instead of a single table.
func Sections(records []models.ClassifiedRecord, stats map[models.Bucket]models.CategoryStats, key classifier.SortKey, n int) []Section {
	var out []Section
	for _, b := range models.BucketOrder {
		inBucket := classifier.Filter(records, classifier.InBucket(b))
		if len(inBucket) == 0 {
			continue
		}

		st, ok := stats[b]
		if !ok {
			st = classifier.Aggregate(inBucket)[b]
		}

		sec := Section{Bucket: b, Title: b.DisplayLabel(), Stats: st}
		if b == models.BucketTargetCompetitive {
			for _, split := range competitiveSplit {
				rows := classifier.Filter(inBucket, split.keep)
				if len(rows) == 0 {
					continue
				}
				sec.Tables = append(sec.Tables, Table{
					Title: split.class.Label() + " 키워드",
					Rows:  classifier.TopN(rows, key, n),
				})
			}
		} else {
			sec.Tables = []Table{{Rows: classifier.TopN(inBucket, key, n)}}
		}
		out = append(out, sec)
	}
	return out
}
