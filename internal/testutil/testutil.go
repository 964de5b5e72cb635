// Package testutil provides test utilities and helpers.
package testutil

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Header is the keyword tool export header used by fixtures.
var Header = []string{
	"연관키워드",
	"월간검색수(PC)",
	"월간검색수(모바일)",
	"월평균클릭수(PC)",
	"월평균클릭수(모바일)",
	"월평균클릭률(PC)",
	"월평균클릭률(모바일)",
	"경쟁정도",
	"월평균노출 광고수",
}

// Row builds a fixture row in Header order.
func Row(keyword, pc, mobile, clicksPC, clicksMobile, ctrPC, ctrMobile, competition, ads string) []string {
	return []string{keyword, pc, mobile, clicksPC, clicksMobile, ctrPC, ctrMobile, competition, ads}
}

// SampleRows returns a small mixed fixture covering several buckets.
func SampleRows() [][]string {
	return [][]string{
		Row("강남 초등 영어", "1,000", "1,000", "10", "20", "1.5%", "2.5%", "높음", "15"),
		Row("강남역 비즈니스영어", "500", "700", "5", "7", "1%", "1%", "중간", "10"),
		Row("유아 영어", "< 10", "300", "0", "3", "0%", "1%", "낮음", "2"),
		Row("토익 인강", "2,000", "3,000", "30", "40", "1%", "1%", "높음", "15"),
		Row("날씨", "100", "100", "1", "1", "1%", "1%", "낮음", "0"),
	}
}

// XLSX builds a workbook with header and rows on its first sheet.
func XLSX(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// CSV builds a CSV document, optionally with a UTF-8 byte order mark.
func CSV(t *testing.T, header []string, rows [][]string, bom bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	if bom {
		buf.WriteString("\ufeff")
	}
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return buf.Bytes()
}
