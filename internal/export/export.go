// Package export writes classified keyword runs as CSV or Excel workbooks.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/ingest"
	"keywordmatrix/internal/models"
)

// Download file names
const (
	CSVFileName  = "키워드_질적분류_결과.csv"
	XLSXFileName = "키워드_질적분류_결과.xlsx"

	CSVContentType  = "text/csv; charset=utf-8"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetRecords = "분류결과"
	sheetSummary = "요약"
)

// Result columns appended after the source columns.
const (
	ColTotalSearch = "총 검색수"
	ColTotalClicks = "총 클릭수"
	ColClass       = "키워드_분류"
	ColDetail      = "키워드_상세분류"
	ColBucket      = "키워드_분류_질적"
)

// Header is the column order of the record table.
var Header = append(append([]string{}, ingest.Columns...),
	ColTotalSearch, ColTotalClicks, ColClass, ColDetail, ColBucket)

var summaryHeader = []string{
	ColBucket, "키워드_개수", "평균_검색수", "평균_클릭수", "평균_클릭률_PC", "평균_클릭률_모바일", "평균_노출광고수", "주요_경쟁정도",
}

func recordRow(r *models.ClassifiedRecord) []string {
	return []string{
		r.Keyword,
		formatNumber(r.SearchVolumePC),
		formatNumber(r.SearchVolumeMob),
		formatNumber(r.ClicksPC),
		formatNumber(r.ClicksMobile),
		formatNumber(r.CTRPC),
		formatNumber(r.CTRMobile),
		r.CompetitionLevel,
		formatNumber(r.AdCount),
		formatNumber(r.TotalSearchVolume),
		formatNumber(r.TotalClicks),
		r.Class.Label(),
		r.Detail,
		r.Bucket.Label(),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes every record in export order as UTF-8 CSV with a byte
// order mark so spreadsheet applications detect the encoding.
func WriteCSV(w io.Writer, records []models.ClassifiedRecord) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	ordered := classifier.ExportOrder(records)
	for i := range ordered {
		if err := cw.Write(recordRow(&ordered[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with the record table and a per-bucket summary sheet.
func WriteXLSX(w io.Writer, records []models.ClassifiedRecord, stats map[models.Bucket]models.CategoryStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRecords); err != nil {
		return err
	}
	if err := writeRow(f, sheetRecords, 1, toAny(Header)); err != nil {
		return err
	}

	ordered := classifier.ExportOrder(records)
	for i := range ordered {
		r := &ordered[i]
		row := []any{
			r.Keyword, r.SearchVolumePC, r.SearchVolumeMob, r.ClicksPC, r.ClicksMobile,
			r.CTRPC, r.CTRMobile, r.CompetitionLevel, r.AdCount,
			r.TotalSearchVolume, r.TotalClicks, r.Class.Label(), r.Detail, r.Bucket.Label(),
		}
		if err := writeRow(f, sheetRecords, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	if err := writeRow(f, sheetSummary, 1, toAny(summaryHeader)); err != nil {
		return err
	}
	line := 2
	for _, b := range models.BucketOrder {
		st, ok := stats[b]
		if !ok {
			continue
		}
		row := []any{
			b.Label(), st.Count, st.AvgSearchVolume, st.AvgClicks,
			st.AvgCTRPC, st.AvgCTRMobile, st.AvgAdCount, st.DominantCompetition,
		}
		if err := writeRow(f, sheetSummary, line, row); err != nil {
			return err
		}
		line++
	}

	if err := f.SetPanes(sheetRecords, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
