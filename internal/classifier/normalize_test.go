package classifier

import (
	"testing"

	"keywordmatrix/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"punctuation and case", "ABC,  Kids!!", "abc kids"},
		{"surrounding and inner spaces", "  강남   초등 영어 ", "강남 초등 영어"},
		{"tabs and newlines", "유아\t영어\n교재", "유아 영어 교재"},
		{"underscore kept", "kids_english", "kids_english"},
		{"digits kept", "초1 영어", "초1 영어"},
		{"symbols only", "!!!", ""},
		{"empty", "", ""},
		{"decomposed hangul", "\u1100\u1161 영어", "가 영어"},
		{"unit separator", "a\x1fb", "a b"},
		{"file to record separators", "유아\x1c\x1d\x1e영어", "유아 영어"},
		{"no-break space", "유아\u00a0영어", "유아 영어"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"ABC,  Kids!!", "강남역 비즈니스영어", "  목동 (유아) 영어 "} {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", raw, twice, once)
		}
	}
}

func TestDedup(t *testing.T) {
	records := []models.KeywordRecord{
		{RawKeyword: "유아 영어", SearchVolumePC: 1},
		{RawKeyword: "유아  영어!", SearchVolumePC: 2},
		{RawKeyword: "초등 영어", Keyword: "초등 영어"},
		{RawKeyword: "유아 영어", SearchVolumePC: 3},
	}

	got := Dedup(records)
	if len(got) != 2 {
		t.Fatalf("Dedup() returned %d records, want 2", len(got))
	}
	if got[0].Keyword != "유아 영어" || got[0].SearchVolumePC != 1 {
		t.Errorf("Dedup()[0] = %+v, want the first occurrence", got[0])
	}
	if got[1].Keyword != "초등 영어" {
		t.Errorf("Dedup()[1].Keyword = %q", got[1].Keyword)
	}
	if records[0].Keyword != "" {
		t.Errorf("Dedup() modified its input")
	}
}
