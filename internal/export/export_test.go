package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"keywordmatrix/internal/models"
)

func record(keyword string, class models.PrimaryClass, detail string, bucket models.Bucket, volume float64) models.ClassifiedRecord {
	return models.ClassifiedRecord{
		KeywordRecord: models.KeywordRecord{
			RawKeyword:        keyword,
			Keyword:           keyword,
			SearchVolumePC:    volume,
			TotalSearchVolume: volume,
			CTRPC:             1.25,
			CompetitionLevel:  "높음",
		},
		ClassificationResult: models.ClassificationResult{Class: class, Detail: detail, Bucket: bucket},
	}
}

func fixture() ([]models.ClassifiedRecord, map[models.Bucket]models.CategoryStats) {
	records := []models.ClassifiedRecord{
		record("날씨", models.ClassUnclassified, models.DetailUnclassified, models.BucketUnclassified, 200),
		record("토익 인강", models.ClassUnsuitable, "성인 영어", models.BucketOffTargetCompetitive, 5000),
		record("유아 영어", models.ClassSuitable, "유아 영어", models.BucketSpecializedNiche, 305),
		record("강남 초등 영어", models.ClassSuitable, "프리미엄 학군지", models.BucketStrategicSweetSpot, 2000),
	}
	stats := map[models.Bucket]models.CategoryStats{
		models.BucketStrategicSweetSpot: {Bucket: models.BucketStrategicSweetSpot, Count: 1, AvgSearchVolume: 2000, DominantCompetition: "높음"},
		models.BucketUnclassified:       {Bucket: models.BucketUnclassified, Count: 1, AvgSearchVolume: 200, DominantCompetition: "높음"},
	}
	return records, stats
}

func TestWriteCSV(t *testing.T) {
	records, _ := fixture()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Fatalf("WriteCSV() output should start with a byte order mark")
	}

	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(records)+1)
	}
	if strings.Join(rows[0], ",") != strings.Join(Header, ",") {
		t.Errorf("header = %v, want %v", rows[0], Header)
	}

	wantOrder := []string{"강남 초등 영어", "유아 영어", "토익 인강", "날씨"}
	for i, kw := range wantOrder {
		if rows[i+1][0] != kw {
			t.Errorf("row %d keyword = %q, want %q", i+1, rows[i+1][0], kw)
		}
	}

	first := rows[1]
	if first[1] != "2000" || first[5] != "1.25" || first[7] != "높음" {
		t.Errorf("first row numbers = %v", first)
	}
	if first[len(first)-3] != "적합" || first[len(first)-2] != "프리미엄 학군지" || first[len(first)-1] != "전략적 Sweet Spot" {
		t.Errorf("first row classification = %v", first[len(first)-3:])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(buf.String(), "\ufeff"))).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}

func TestWriteXLSX(t *testing.T) {
	records, stats := fixture()

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, records, stats); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "분류결과" || sheets[1] != "요약" {
		t.Fatalf("sheets = %v, want [분류결과 요약]", sheets)
	}

	rows, err := f.GetRows("분류결과")
	if err != nil {
		t.Fatalf("read records sheet: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("record rows = %d, want %d", len(rows), len(records)+1)
	}
	if rows[1][0] != "강남 초등 영어" || rows[4][0] != "날씨" {
		t.Errorf("record order = %q ... %q", rows[1][0], rows[4][0])
	}

	summary, err := f.GetRows("요약")
	if err != nil {
		t.Fatalf("read summary sheet: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("summary rows = %d, want 3", len(summary))
	}
	if summary[1][0] != "전략적 Sweet Spot" || summary[2][0] != "미분류" {
		t.Errorf("summary order = %q, %q", summary[1][0], summary[2][0])
	}
	if summary[1][1] != "1" {
		t.Errorf("summary count = %q, want 1", summary[1][1])
	}
}
