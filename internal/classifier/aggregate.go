package classifier

import (
	"cmp"
	"math"
	"slices"

	"keywordmatrix/internal/models"
)

// Aggregate groups records by qualitative bucket and computes per-bucket
// counts and means rounded to two decimals. Buckets without records are
// omitted; empty input yields an empty map.
func Aggregate(records []models.ClassifiedRecord) map[models.Bucket]models.CategoryStats {
	type acc struct {
		n                                       int
		volume, clicks, ctrPC, ctrMobile, adCnt float64
		competition                             map[string]int
		firstSeen                               []string
	}

	groups := make(map[models.Bucket]*acc)
	for i := range records {
		r := &records[i]
		a, ok := groups[r.Bucket]
		if !ok {
			a = &acc{competition: make(map[string]int)}
			groups[r.Bucket] = a
		}
		a.n++
		a.volume += r.TotalSearchVolume
		a.clicks += r.TotalClicks
		a.ctrPC += r.CTRPC
		a.ctrMobile += r.CTRMobile
		a.adCnt += r.AdCount
		if r.CompetitionLevel != "" {
			if a.competition[r.CompetitionLevel] == 0 {
				a.firstSeen = append(a.firstSeen, r.CompetitionLevel)
			}
			a.competition[r.CompetitionLevel]++
		}
	}

	out := make(map[models.Bucket]models.CategoryStats, len(groups))
	for b, a := range groups {
		if a.n == 0 {
			continue
		}
		n := float64(a.n)
		out[b] = models.CategoryStats{
			Bucket:              b,
			Count:               a.n,
			AvgSearchVolume:     Round2(a.volume / n),
			AvgClicks:           Round2(a.clicks / n),
			AvgCTRPC:            Round2(a.ctrPC / n),
			AvgCTRMobile:        Round2(a.ctrMobile / n),
			AvgAdCount:          Round2(a.adCnt / n),
			DominantCompetition: dominant(a.competition, a.firstSeen),
		}
	}
	return out
}

// dominant returns the most frequent label; ties go to the label seen first.
func dominant(counts map[string]int, order []string) string {
	best, bestN := models.CompetitionPlaceholder, 0
	for _, l := range order {
		if counts[l] > bestN {
			best, bestN = l, counts[l]
		}
	}
	return best
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DetailCounts counts records per detail label inside one bucket, ordered by label.
func DetailCounts(records []models.ClassifiedRecord, bucket models.Bucket) []models.DetailCount {
	counts := make(map[string]int)
	for i := range records {
		if records[i].Bucket == bucket {
			counts[records[i].Detail]++
		}
	}

	out := make([]models.DetailCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, models.DetailCount{Detail: d, Count: n})
	}
	slices.SortFunc(out, func(a, b models.DetailCount) int {
		return cmp.Compare(a.Detail, b.Detail)
	})
	return out
}

// CountByClass counts records per primary class.
func CountByClass(records []models.ClassifiedRecord) map[models.PrimaryClass]int {
	out := make(map[models.PrimaryClass]int)
	for i := range records {
		out[records[i].Class]++
	}
	return out
}
