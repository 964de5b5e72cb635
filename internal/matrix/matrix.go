// Package matrix builds the presentation model of the 2x2 strategy matrix
// and the per-bucket keyword tables shown on the dashboard.
package matrix

import (
	"fmt"
	"html/template"
	"strings"

	"keywordmatrix/internal/classifier"
	"keywordmatrix/internal/models"
)

// Axis captions
const (
	XAxisTitle = "타겟 관련성(아이덴티티) →"
	YAxisTitle = "↑ 확장성(트래픽)"
)

// Area is a rectangle of the unit square occupied by one bucket.
// The origin is bottom-left.
type Area struct {
	X0, Y0, X1, Y1 float64
	Bucket         models.Bucket
	Fill           string
}

// Areas is the fixed matrix layout. Unclassified records are not drawn.
var Areas = []Area{
	{0.5, 0.75, 1, 1, models.BucketTargetCompetitive, "#ffebee"},
	{0.5, 0.5, 1, 0.75, models.BucketStrategicSweetSpot, "#ede7f6"},
	{0.5, 0, 1, 0.5, models.BucketSpecializedNiche, "#e3f2fd"},
	{0.25, 0.5, 0.5, 1, models.BucketExpandableKeywords, "#fffde7"},
	{0, 0.5, 0.25, 1, models.BucketOffTargetCompetitive, "#ffe082"},
	{0, 0, 0.5, 0.5, models.BucketJunkKeywords, "#e0e0e0"},
}

// gridUnits is the number of grid tracks per axis; every area edge is a
// multiple of 1/gridUnits.
const gridUnits = 4

// Tile is one rendered area with its statistics.
type Tile struct {
	Area
	Label    string
	HasStats bool
	Stats    models.CategoryStats
	Details  []models.DetailCount
}

// Matrix is the full dashboard chart model.
type Matrix struct {
	Tiles  []Tile
	XTitle string
	YTitle string
	Total  int
}

// Build lays out the matrix for a classified record set. Buckets without
// records keep their area and show placeholders.
func Build(records []models.ClassifiedRecord, stats map[models.Bucket]models.CategoryStats) Matrix {
	m := Matrix{XTitle: XAxisTitle, YTitle: YAxisTitle, Total: len(records)}
	for _, a := range Areas {
		st, ok := stats[a.Bucket]
		m.Tiles = append(m.Tiles, Tile{
			Area:     a,
			Label:    a.Bucket.Label(),
			HasStats: ok,
			Stats:    st,
			Details:  classifier.DetailCounts(records, a.Bucket),
		})
	}
	return m
}

// GridStyle returns the CSS grid placement of the tile. Grid rows count
// from the top, so the y axis is flipped.
func (t Tile) GridStyle() template.CSS {
	colStart := int(t.X0*gridUnits) + 1
	colEnd := int(t.X1*gridUnits) + 1
	rowStart := int((1-t.Y1)*gridUnits) + 1
	rowEnd := int((1-t.Y0)*gridUnits) + 1
	return template.CSS(fmt.Sprintf("grid-column:%d/%d;grid-row:%d/%d;background:%s", colStart, colEnd, rowStart, rowEnd, t.Fill))
}

// CountText returns the keyword count or the placeholder.
func (t Tile) CountText() string {
	if !t.HasStats {
		return "-"
	}
	return FormatInt(float64(t.Stats.Count)) + "개"
}

// VolumeText returns the average search volume or the placeholder.
func (t Tile) VolumeText() string {
	if !t.HasStats {
		return "-"
	}
	return FormatFloat(t.Stats.AvgSearchVolume, 2)
}

// ClicksText returns the average clicks or the placeholder.
func (t Tile) ClicksText() string {
	if !t.HasStats {
		return "-"
	}
	return FormatFloat(t.Stats.AvgClicks, 2)
}

// CTRText returns the average PC click-through rate or the placeholder.
func (t Tile) CTRText() string {
	if !t.HasStats {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", t.Stats.AvgCTRPC)
}

// AdsText returns the average ad count or the placeholder.
func (t Tile) AdsText() string {
	if !t.HasStats {
		return "-"
	}
	return FormatFloat(t.Stats.AvgAdCount, 2)
}

// FormatInt formats v rounded to an integer with thousands separators.
func FormatInt(v float64) string {
	return FormatFloat(v, 0)
}

// FormatFloat formats v with prec decimals and thousands separators.
// Trailing zero decimals are dropped, so 1234.50 prints as "1,234.5".
func FormatFloat(v float64, prec int) string {
	s := fmt.Sprintf("%.*f", prec, v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac {
		frac = strings.TrimRight(frac, "0")
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
