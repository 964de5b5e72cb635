package ingest

import (
	"math"
	"strconv"
	"strings"
)

// lowVolumeSentinel is what the keyword tool prints for volumes under ten.
const (
	lowVolumeSentinel = "< 10"
	lowVolumeValue    = 5
)

// CleanCount converts a count cell to a number. Thousands separators are
// stripped, "< 10" becomes 5, and anything unparsable becomes 0. Fractions
// are truncated toward zero.
func CleanCount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == lowVolumeSentinel {
		return lowVolumeValue
	}
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return math.Trunc(v)
}

// CleanPercent converts a click-through-rate cell such as "1.25%" to 1.25.
// Unparsable values become 0.
func CleanPercent(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return v
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
