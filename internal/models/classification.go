package models

// PrimaryClass is the coarse classification assigned by the rule pipeline.
type PrimaryClass string

// Primary classification constants
const (
	ClassSuitable     PrimaryClass = "suitable"
	ClassUnsuitable   PrimaryClass = "unsuitable"
	ClassExpandable   PrimaryClass = "expandable"
	ClassUnclassified PrimaryClass = "unclassified"
)

// DetailUnclassified is the detail label of a record no rule matched.
const DetailUnclassified = "미분류"

// ClassOrder is the fixed precedence used when grouping records for export.
var ClassOrder = []PrimaryClass{
	ClassSuitable,
	ClassExpandable,
	ClassUnsuitable,
	ClassUnclassified,
}

var classLabels = map[PrimaryClass]string{
	ClassSuitable:     "적합",
	ClassUnsuitable:   "부적합",
	ClassExpandable:   "확장 가능 키워드",
	ClassUnclassified: "미분류",
}

// Label returns the Korean display label of the class.
func (c PrimaryClass) Label() string {
	if l, ok := classLabels[c]; ok {
		return l
	}
	return classLabels[ClassUnclassified]
}

// Rank returns the position of the class in ClassOrder.
// Unknown values sort last.
func (c PrimaryClass) Rank() int {
	for i, v := range ClassOrder {
		if v == c {
			return i
		}
	}
	return len(ClassOrder)
}

// Bucket is the qualitative strategic grouping derived from a detail label.
type Bucket string

// Qualitative bucket constants
const (
	BucketStrategicSweetSpot   Bucket = "strategic_sweet_spot"
	BucketSpecializedNiche     Bucket = "specialized_niche"
	BucketTargetCompetitive    Bucket = "target_competitive"
	BucketExpandableKeywords   Bucket = "expandable_keywords"
	BucketJunkKeywords         Bucket = "junk_keywords"
	BucketOffTargetCompetitive Bucket = "off_target_competitive"
	BucketUnclassified         Bucket = "unclassified"
)

// BucketOrder lists every bucket in importance order. Dashboard sections
// and summary sheets follow this order.
var BucketOrder = []Bucket{
	BucketStrategicSweetSpot,
	BucketSpecializedNiche,
	BucketTargetCompetitive,
	BucketExpandableKeywords,
	BucketJunkKeywords,
	BucketOffTargetCompetitive,
	BucketUnclassified,
}

type bucketInfo struct {
	label   string
	display string
	color   string
}

var buckets = map[Bucket]bucketInfo{
	BucketStrategicSweetSpot:   {"전략적 Sweet Spot", "전략적 Sweet Spot\n(Purple Ocean)", "#b39ddb"},
	BucketSpecializedNiche:     {"특화 영역", "특화 키워드\n(Blue Ocean)", "#90caf9"},
	BucketTargetCompetitive:    {"타겟 경쟁 영역", "경쟁 키워드\n(Red Ocean)", "#ef9a9a"},
	BucketExpandableKeywords:   {"확장 가능 키워드", "확장 가능 키워드", "#fff59d"},
	BucketJunkKeywords:         {"정크 키워드", "정크 키워드", "#bdbdbd"},
	BucketOffTargetCompetitive: {"타겟 외 경쟁 영역", "타겟 외 경쟁 영역", "#ffe082"},
	BucketUnclassified:         {"미분류", "미분류", "#eeeeee"},
}

// Valid reports whether b is one of the seven known buckets.
func (b Bucket) Valid() bool {
	_, ok := buckets[b]
	return ok
}

// Label returns the Korean bucket name.
func (b Bucket) Label() string {
	return b.info().label
}

// DisplayLabel returns the caption used on the dashboard. It may contain a newline.
func (b Bucket) DisplayLabel() string {
	return b.info().display
}

// Color returns the hex colour used for the bucket in charts and tables.
func (b Bucket) Color() string {
	return b.info().color
}

func (b Bucket) info() bucketInfo {
	if i, ok := buckets[b]; ok {
		return i
	}
	return buckets[BucketUnclassified]
}

// ParseBucket resolves either the bucket identifier or its Korean label.
func ParseBucket(s string) (Bucket, bool) {
	if Bucket(s).Valid() {
		return Bucket(s), true
	}
	for b, i := range buckets {
		if i.label == s {
			return b, true
		}
	}
	return "", false
}

// ClassificationResult is attached to each record after the pipeline runs.
type ClassificationResult struct {
	Class  PrimaryClass `json:"primary_class"`
	Detail string       `json:"detail_label"`
	Bucket Bucket       `json:"qualitative_bucket"`
}

// Unclassified returns the initial state of every record before the first pass.
func Unclassified() ClassificationResult {
	return ClassificationResult{
		Class:  ClassUnclassified,
		Detail: DetailUnclassified,
		Bucket: BucketUnclassified,
	}
}
