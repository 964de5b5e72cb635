package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"keywordmatrix/internal/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_ClassifyFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "keywords.xlsx")
	if err := os.WriteFile(input, testutil.XLSX(t, testutil.Header, testutil.SampleRows()), 0o600); err != nil {
		t.Fatal(err)
	}
	xlsxOut := filepath.Join(dir, "result.xlsx")
	csvOut := filepath.Join(dir, "result.csv")

	stdout, _, err := execute(t, "--out", xlsxOut, "--csv", csvOut, input)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(stdout, "5 keywords classified") {
		t.Errorf("summary = %q", stdout)
	}

	data, err := os.ReadFile(csvOut)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff")))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 6 {
		t.Errorf("csv rows = %d, want 6", len(rows))
	}

	f, err := excelize.OpenFile(xlsxOut)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 2 {
		t.Errorf("sheets = %v, want 2", sheets)
	}
}

func TestRootCommand_Explain(t *testing.T) {
	stdout, _, err := execute(t, "--explain", "강남역 비즈니스영어")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "부적합") {
		t.Errorf("explanation = %q, want unsuitable result", stdout)
	}
}

func TestRootCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{filepath.Join(t.TempDir(), "missing.xlsx")}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Errorf("Execute(%v) should fail", tt.args)
			}
		})
	}

	stdout, _, err := execute(t)
	if err != nil || !strings.Contains(stdout, "Usage:") {
		t.Errorf("no arguments should print help, got %q, %v", stdout, err)
	}
}
