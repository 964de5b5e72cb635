package classifier

import (
	"testing"

	"keywordmatrix/internal/models"
)

func rec(keyword string, class models.PrimaryClass, detail string, bucket models.Bucket, volume float64) models.ClassifiedRecord {
	return models.ClassifiedRecord{
		KeywordRecord: models.KeywordRecord{RawKeyword: keyword, Keyword: keyword, TotalSearchVolume: volume},
		ClassificationResult: models.ClassificationResult{
			Class:  class,
			Detail: detail,
			Bucket: bucket,
		},
	}
}

func TestAggregate(t *testing.T) {
	records := []models.ClassifiedRecord{
		rec("a", models.ClassSuitable, CatPremiumDistrict, models.BucketStrategicSweetSpot, 100),
		rec("b", models.ClassSuitable, CatPremiumDistrict, models.BucketStrategicSweetSpot, 200),
		rec("c", models.ClassSuitable, CatInternational, models.BucketStrategicSweetSpot, 300),
		rec("d", models.ClassUnclassified, models.DetailUnclassified, models.BucketUnclassified, 1),
	}
	records[0].TotalClicks, records[1].TotalClicks, records[2].TotalClicks = 1, 1, 2
	records[0].CompetitionLevel = "낮음"
	records[1].CompetitionLevel = "높음"
	records[2].CompetitionLevel = "높음"

	got := Aggregate(records)
	if len(got) != 2 {
		t.Fatalf("Aggregate() returned %d buckets, want 2", len(got))
	}

	st := got[models.BucketStrategicSweetSpot]
	if st.Count != 3 || st.AvgSearchVolume != 200 {
		t.Errorf("sweet spot stats = %+v, want count 3 and mean 200", st)
	}
	if st.AvgClicks != 1.33 {
		t.Errorf("AvgClicks = %v, want 1.33", st.AvgClicks)
	}
	if st.DominantCompetition != "높음" {
		t.Errorf("DominantCompetition = %q, want 높음", st.DominantCompetition)
	}
	if got[models.BucketUnclassified].DominantCompetition != models.CompetitionPlaceholder {
		t.Errorf("missing competition should use the placeholder")
	}
	if _, ok := got[models.BucketJunkKeywords]; ok {
		t.Errorf("empty buckets must be omitted")
	}
}

func TestAggregate_Empty(t *testing.T) {
	if got := Aggregate(nil); len(got) != 0 {
		t.Errorf("Aggregate(nil) = %v, want empty", got)
	}
}

func TestDominant_TieGoesToFirstSeen(t *testing.T) {
	counts := map[string]int{"중간": 2, "높음": 2}
	if got := dominant(counts, []string{"중간", "높음"}); got != "중간" {
		t.Errorf("dominant() = %q, want 중간", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{2.0 / 3.0, 0.67},
		{-1.005, -1},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDetailCountsAndCountByClass(t *testing.T) {
	records := []models.ClassifiedRecord{
		rec("a", models.ClassSuitable, CatEarlyChildhood, models.BucketTargetCompetitive, 0),
		rec("b", models.ClassUnsuitable, CatCompetitorBrand, models.BucketTargetCompetitive, 0),
		rec("c", models.ClassSuitable, CatEarlyChildhood, models.BucketTargetCompetitive, 0),
		rec("d", models.ClassExpandable, CatGeneralEnglish, models.BucketExpandableKeywords, 0),
	}

	details := DetailCounts(records, models.BucketTargetCompetitive)
	want := map[string]int{CatEarlyChildhood: 2, CatCompetitorBrand: 1}
	if len(details) != len(want) {
		t.Fatalf("DetailCounts() = %v", details)
	}
	for _, d := range details {
		if want[d.Detail] != d.Count {
			t.Errorf("DetailCounts()[%s] = %d, want %d", d.Detail, d.Count, want[d.Detail])
		}
	}
	if details[0].Detail > details[1].Detail {
		t.Errorf("DetailCounts() should be sorted by label: %v", details)
	}

	classes := CountByClass(records)
	if classes[models.ClassSuitable] != 2 || classes[models.ClassUnsuitable] != 1 || classes[models.ClassExpandable] != 1 {
		t.Errorf("CountByClass() = %v", classes)
	}
}
