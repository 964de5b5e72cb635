// Package classifier assigns search keywords to the keyword taxonomy and
// aggregates per-bucket statistics. Every exported function is a pure
// function of its arguments; nothing here holds package-level mutable state.
package classifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"keywordmatrix/internal/models"
)

// Normalize lower-cases a raw keyword, drops every rune that is neither a
// word character nor whitespace, collapses whitespace runs to one space and
// trims the result. Word characters are Unicode letters, numbers and '_',
// so Hangul survives intact.
func Normalize(raw string) string {
	s := strings.ToLower(norm.NFC.String(raw))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case isWordRune(r):
			b.WriteRune(r)
		case isSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C..U+001F, which spreadsheet exports use as field separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Dedup keeps the first record for every normalized keyword, in input order.
// Records whose normalized keyword is empty are filled in from RawKeyword first.
func Dedup(records []models.KeywordRecord) []models.KeywordRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.KeywordRecord, 0, len(records))
	for _, r := range records {
		if r.Keyword == "" {
			r.Keyword = Normalize(r.RawKeyword)
		}
		if _, dup := seen[r.Keyword]; dup {
			continue
		}
		seen[r.Keyword] = struct{}{}
		out = append(out, r)
	}
	return out
}
