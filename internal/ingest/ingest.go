// Package ingest reads keyword-tool spreadsheet exports into keyword records.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/models"
)

// Column headers of the Naver keyword tool export.
const (
	ColKeyword         = "연관키워드"
	ColSearchPC        = "월간검색수(PC)"
	ColSearchMobile    = "월간검색수(모바일)"
	ColClicksPC        = "월평균클릭수(PC)"
	ColClicksMobile    = "월평균클릭수(모바일)"
	ColCTRPC           = "월평균클릭률(PC)"
	ColCTRMobile       = "월평균클릭률(모바일)"
	ColCompetition     = "경쟁정도"
	ColAdCount         = "월평균노출 광고수"
	headerRowIndex     = 1 // Spreadsheet rows are 1-based, header is row 1
	utf8BOM            = "\ufeff"
	maxIssuesPerSource = 100
)

// Columns lists every recognised header in export order.
var Columns = []string{
	ColKeyword, ColSearchPC, ColSearchMobile, ColClicksPC, ColClicksMobile,
	ColCTRPC, ColCTRMobile, ColCompetition, ColAdCount,
}

var (
	ErrNoKeywordColumn = errors.New("missing required column " + ColKeyword)
	ErrUnsupportedFile = errors.New("unsupported file type, expected .xlsx or .csv")
	ErrEmptyFile       = errors.New("file has no header row")
)

// Error is an ingestion failure for one uploaded file.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Batch is the parsed content of one file.
type Batch struct {
	Source  string
	Records []models.KeywordRecord
	Issues  []models.RowIssue
}

// SupportedFile reports whether name has an extension ParseFile understands.
func SupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// ParseFile parses a .xlsx or .csv export. Row-level problems become issues;
// only file-level problems fail.
func ParseFile(name string, r io.Reader) (*Batch, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		rows, err = openExcelRows(r)
	case ".csv":
		rows, err = openCSVRows(r)
	default:
		return nil, &Error{Source: name, Err: ErrUnsupportedFile}
	}
	if err != nil {
		return nil, &Error{Source: name, Err: err}
	}

	batch, err := parseRows(name, rows)
	if err != nil {
		return nil, &Error{Source: name, Err: err}
	}
	return batch, nil
}

// openExcelRows returns all rows of the first sheet.
func openExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return [][]string{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

func openCSVRows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// columnMap maps a header to its 0-based column, -1 when absent.
type columnMap map[string]int

func mapColumns(header []string) columnMap {
	m := make(columnMap, len(Columns))
	for _, c := range Columns {
		m[c] = -1
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		if _, known := m[h]; known && m[h] < 0 {
			m[h] = i
		}
	}
	return m
}

func (m columnMap) get(row []string, col string) string {
	if i := m[col]; i >= 0 && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func parseRows(source string, rows [][]string) (*Batch, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	cols := mapColumns(rows[0])
	if cols[ColKeyword] < 0 {
		return nil, ErrNoKeywordColumn
	}

	batch := &Batch{Source: source}
	for i, row := range rows[1:] {
		rowNum := i + headerRowIndex + 1

		raw := cols.get(row, ColKeyword)
		if raw == "" {
			if !blankRow(row) {
				batch.addIssue(rowNum, "empty keyword")
			}
			continue
		}

		rec := models.KeywordRecord{
			RawKeyword:       raw,
			Keyword:          classifier.Normalize(raw),
			SearchVolumePC:   CleanCount(cols.get(row, ColSearchPC)),
			SearchVolumeMob:  CleanCount(cols.get(row, ColSearchMobile)),
			ClicksPC:         CleanCount(cols.get(row, ColClicksPC)),
			ClicksMobile:     CleanCount(cols.get(row, ColClicksMobile)),
			CTRPC:            CleanPercent(cols.get(row, ColCTRPC)),
			CTRMobile:        CleanPercent(cols.get(row, ColCTRMobile)),
			AdCount:          CleanCount(cols.get(row, ColAdCount)),
			CompetitionLevel: cols.get(row, ColCompetition),
			Source:           source,
			Row:              rowNum,
		}
		rec.ComputeTotals()

		if rec.Keyword == "" {
			batch.addIssue(rowNum, fmt.Sprintf("keyword %q is empty after normalization", raw))
			continue
		}
		batch.Records = append(batch.Records, rec)
	}

	return batch, nil
}

func (b *Batch) addIssue(row int, msg string) {
	if len(b.Issues) >= maxIssuesPerSource {
		return
	}
	b.Issues = append(b.Issues, models.RowIssue{Source: b.Source, Row: row, Error: msg})
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Combine concatenates batches in upload order and drops later duplicates
// of a normalized keyword.
func Combine(batches ...*Batch) ([]models.KeywordRecord, []models.RowIssue) {
	var (
		records []models.KeywordRecord
		issues  []models.RowIssue
	)
	for _, b := range batches {
		if b == nil {
			continue
		}
		records = append(records, b.Records...)
		issues = append(issues, b.Issues...)
	}
	return classifier.Dedup(records), issues
}
