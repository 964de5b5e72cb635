package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"keywordmatrix/internal/ingest"
)

// Limits on user supplied input.
const (
	MaxFileNameLength = 255
	MaxKeywordLength  = 200
	MaxRecords        = 50000
	MaxTopN           = 500
)

// ValidateUploadName checks an uploaded file name: not empty, no directory
// components and a spreadsheet extension.
func ValidateUploadName(name string) (bool, string) {
	if strings.TrimSpace(name) == "" {
		return false, "File name is required"
	}
	if len(name) > MaxFileNameLength {
		return false, "File name is too long"
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false, "File name must not contain a path"
	}
	if !ingest.SupportedFile(name) {
		return false, "Only .xlsx and .csv files are supported"
	}
	return true, ""
}

// ValidateKeyword checks a keyword posted to the API.
func ValidateKeyword(keyword string) (bool, string) {
	if strings.TrimSpace(keyword) == "" {
		return false, "Keyword is required"
	}
	if !utf8.ValidString(keyword) {
		return false, "Keyword must be valid UTF-8"
	}
	if utf8.RuneCountInString(keyword) > MaxKeywordLength {
		return false, "Keyword is too long"
	}
	return true, ""
}

// ParseTopN parses a row limit. Empty input returns fallback.
func ParseTopN(s string, fallback int) (int, bool) {
	if s == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxTopN {
		return 0, false
	}
	return n, true
}

// ParseRunID parses a run identifier.
func ParseRunID(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
